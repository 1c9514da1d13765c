//go:build !unix && !windows

package builtin

import "github.com/sophiajt/nu-app/engine"

func platformCommands() []engine.Command { return nil }
