//go:build !which

package builtin

import "github.com/sophiajt/nu-app/engine"

func featureCommands() []engine.Command { return nil }
