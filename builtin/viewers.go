package builtin

import (
	"github.com/sophiajt/nu-app/engine"
)

type Table struct{}

func (Table) Name() string  { return "table" }
func (Table) Usage() string { return "Render the input as a table." }
func (Table) Signature() engine.Signature {
	return engine.Signature{Name: "table", Category: "viewers"}
}
func (Table) Run(state *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	v, err := engine.Collect(input)
	if err != nil {
		return nil, err
	}
	return engine.ValueData{Val: engine.StringValue(engine.FormatValue(state, v), call.Head)}, nil
}
