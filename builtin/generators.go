package builtin

import (
	"time"

	"github.com/sophiajt/nu-app/engine"
)

type Date struct{}

func (Date) Name() string  { return "date" }
func (Date) Usage() string { return "Work with dates and times." }
func (Date) Signature() engine.Signature {
	return engine.Signature{Name: "date", Category: "generators"}
}
func (Date) Run(state *engine.EngineState, _ *engine.Stack, call *engine.Call, _ engine.PipelineData) (engine.PipelineData, error) {
	return nil, subcommandError(state, call, "date")
}

type DateNow struct{}

func (DateNow) Name() string  { return "date now" }
func (DateNow) Usage() string { return "Get the current date and time." }
func (DateNow) Signature() engine.Signature {
	return engine.Signature{Name: "date now", Category: "generators"}
}
func (DateNow) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, _ engine.PipelineData) (engine.PipelineData, error) {
	now := time.Now().Format(time.RFC3339)
	return engine.ValueData{Val: engine.StringValue(now, call.Head)}, nil
}

type Seq struct{}

func (Seq) Name() string  { return "seq" }
func (Seq) Usage() string { return "Produce a sequence of integers." }
func (Seq) Signature() engine.Signature {
	return engine.Signature{
		Name:     "seq",
		Category: "generators",
		Positional: []engine.PositionalArg{
			{Name: "first", Desc: "the first number of the sequence"},
			{Name: "last", Desc: "the last number of the sequence"},
			{Name: "step", Desc: "the increment between numbers", Optional: true},
		},
	}
}
func (Seq) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, _ engine.PipelineData) (engine.PipelineData, error) {
	first, ok := call.Arg(0)
	if !ok {
		return nil, argError(call, "‘seq’ needs a first and last number")
	}
	last, ok := call.Arg(1)
	if !ok {
		return nil, argError(call, "‘seq’ needs a first and last number")
	}
	lo, ok1 := first.AsInt()
	hi, ok2 := last.AsInt()
	if !ok1 || !ok2 {
		return nil, argError(call, "the sequence bounds must be integers")
	}

	step := int64(1)
	if v, ok := call.Arg(2); ok {
		n, ok := v.AsInt()
		if !ok || n == 0 {
			return nil, argError(call, "the step must be a non-zero integer")
		}
		step = n
	}
	if lo > hi && step > 0 {
		step = -step
	}

	var out []engine.Value
	if step > 0 {
		for n := lo; n <= hi; n += step {
			out = append(out, engine.IntValue(n, call.Head))
		}
	} else {
		for n := lo; n >= hi; n += step {
			out = append(out, engine.IntValue(n, call.Head))
		}
	}
	return engine.ValueData{Val: engine.ListValue(out, call.Head)}, nil
}
