//go:build which

package builtin

import (
	"os/exec"

	"github.com/sophiajt/nu-app/engine"
)

func featureCommands() []engine.Command {
	return []engine.Command{Which{}}
}

type Which struct{}

func (Which) Name() string  { return "which" }
func (Which) Usage() string { return "Find how a name would resolve." }
func (Which) Signature() engine.Signature {
	return engine.Signature{
		Name:     "which",
		Category: "platform",
		Positional: []engine.PositionalArg{
			{Name: "name", Desc: "the name to look up"},
		},
	}
}
func (Which) Run(state *engine.EngineState, _ *engine.Stack, call *engine.Call, _ engine.PipelineData) (engine.PipelineData, error) {
	v, ok := call.Arg(0)
	if !ok {
		return nil, argError(call, "‘which’ needs a name")
	}
	name := v.String()

	rec := &engine.Record{}
	rec.Set("name", engine.StringValue(name, call.Head))
	if _, ok := state.FindDecl(name); ok {
		rec.Set("type", engine.StringValue("command", call.Head))
		rec.Set("path", engine.StringValue("", call.Head))
	} else if path, err := exec.LookPath(name); err == nil {
		rec.Set("type", engine.StringValue("external", call.Head))
		rec.Set("path", engine.StringValue(path, call.Head))
	} else {
		return nil, argError(call, "‘%s’ was not found", name)
	}
	return engine.ValueData{Val: engine.RecordValue(rec, call.Head)}, nil
}
