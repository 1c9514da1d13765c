//go:build windows

package builtin

import (
	"os"

	"github.com/sophiajt/nu-app/engine"
)

func platformCommands() []engine.Command {
	return []engine.Command{Clear{}}
}

type Clear struct{}

func (Clear) Name() string  { return "clear" }
func (Clear) Usage() string { return "Clear the terminal." }
func (Clear) Signature() engine.Signature {
	return engine.Signature{Name: "clear", Category: "platform"}
}
func (Clear) Run(*engine.EngineState, *engine.Stack, *engine.Call, engine.PipelineData) (engine.PipelineData, error) {
	// Relies on VT processing being enabled at startup.
	os.Stdout.WriteString("\x1b[2J\x1b[H")
	return engine.EmptyData{}, nil
}
