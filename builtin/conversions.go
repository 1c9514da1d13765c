package builtin

import (
	"strconv"
	"strings"

	"github.com/sophiajt/nu-app/engine"
)

type Into struct{}

func (Into) Name() string  { return "into" }
func (Into) Usage() string { return "Convert values between types." }
func (Into) Signature() engine.Signature {
	return engine.Signature{Name: "into", Category: "conversions"}
}
func (Into) Run(state *engine.EngineState, _ *engine.Stack, call *engine.Call, _ engine.PipelineData) (engine.PipelineData, error) {
	return nil, subcommandError(state, call, "into")
}

func intoInt(call *engine.Call, v engine.Value) (engine.Value, error) {
	switch v.Kind {
	case engine.KindInt:
		return v, nil
	case engine.KindFloat:
		return engine.IntValue(int64(v.Flt), call.Head), nil
	case engine.KindBool:
		if v.Bool {
			return engine.IntValue(1, call.Head), nil
		}
		return engine.IntValue(0, call.Head), nil
	case engine.KindString:
		n, err := strconv.ParseInt(strings.TrimSpace(v.Str), 10, 64)
		if err != nil {
			return engine.Value{}, argError(call, "cannot convert ‘%s’ to an int", v.Str)
		}
		return engine.IntValue(n, call.Head), nil
	}
	return engine.Value{}, argError(call, "cannot convert a %s to an int", v.Type())
}

type IntoInt struct{}

func (IntoInt) Name() string  { return "into int" }
func (IntoInt) Usage() string { return "Convert the input to integers." }
func (IntoInt) Signature() engine.Signature {
	return engine.Signature{Name: "into int", Category: "conversions"}
}
func (IntoInt) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	v, err := engine.Collect(input)
	if err != nil {
		return nil, err
	}
	if v.Kind == engine.KindList {
		out := make([]engine.Value, len(v.List))
		for i, x := range v.List {
			if out[i], err = intoInt(call, x); err != nil {
				return nil, err
			}
		}
		return engine.ValueData{Val: engine.ListValue(out, call.Head)}, nil
	}
	n, err := intoInt(call, v)
	if err != nil {
		return nil, err
	}
	return engine.ValueData{Val: n}, nil
}

type IntoString struct{}

func (IntoString) Name() string  { return "into string" }
func (IntoString) Usage() string { return "Convert the input to strings." }
func (IntoString) Signature() engine.Signature {
	return engine.Signature{Name: "into string", Category: "conversions"}
}
func (IntoString) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	v, err := engine.Collect(input)
	if err != nil {
		return nil, err
	}
	if v.Kind == engine.KindList {
		out := make([]engine.Value, len(v.List))
		for i, x := range v.List {
			out[i] = engine.StringValue(x.String(), call.Head)
		}
		return engine.ValueData{Val: engine.ListValue(out, call.Head)}, nil
	}
	return engine.ValueData{Val: engine.StringValue(v.String(), call.Head)}, nil
}
