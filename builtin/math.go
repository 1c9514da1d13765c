package builtin

import (
	"github.com/sophiajt/nu-app/engine"
)

type Math struct{}

func (Math) Name() string  { return "math" }
func (Math) Usage() string { return "Do math on lists of numbers." }
func (Math) Signature() engine.Signature {
	return engine.Signature{Name: "math", Category: "math"}
}
func (Math) Run(state *engine.EngineState, _ *engine.Stack, call *engine.Call, _ engine.PipelineData) (engine.PipelineData, error) {
	return nil, subcommandError(state, call, "math")
}

// collectNumbers pulls the input apart into numbers, rejecting anything else.
// The ints flag stays true only while every element is an integer, which lets
// sum and min/max keep integer results for integer input.
func collectNumbers(call *engine.Call, input engine.PipelineData) (xs []float64, ints bool, err error) {
	vs, err := collectList(input, call.Head)
	if err != nil {
		return nil, false, err
	}
	ints = true
	xs = make([]float64, len(vs))
	for i, v := range vs {
		switch v.Kind {
		case engine.KindInt:
			xs[i] = float64(v.Int)
		case engine.KindFloat:
			xs[i] = v.Flt
			ints = false
		default:
			return nil, false, argError(call, "expected a number but got a %s", v.Type())
		}
	}
	return xs, ints, nil
}

func numberValue(x float64, ints bool, span engine.Span) engine.Value {
	if ints {
		return engine.IntValue(int64(x), span)
	}
	return engine.FloatValue(x, span)
}

type MathSum struct{}

func (MathSum) Name() string  { return "math sum" }
func (MathSum) Usage() string { return "Sum the numbers in the input." }
func (MathSum) Signature() engine.Signature {
	return engine.Signature{Name: "math sum", Category: "math"}
}
func (MathSum) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	xs, ints, err := collectNumbers(call, input)
	if err != nil {
		return nil, err
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return engine.ValueData{Val: numberValue(sum, ints, call.Head)}, nil
}

type MathAvg struct{}

func (MathAvg) Name() string  { return "math avg" }
func (MathAvg) Usage() string { return "Average the numbers in the input." }
func (MathAvg) Signature() engine.Signature {
	return engine.Signature{Name: "math avg", Category: "math"}
}
func (MathAvg) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	xs, _, err := collectNumbers(call, input)
	if err != nil {
		return nil, err
	}
	if len(xs) == 0 {
		return nil, argError(call, "cannot average an empty list")
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return engine.ValueData{Val: engine.FloatValue(sum/float64(len(xs)), call.Head)}, nil
}

type MathMin struct{}

func (MathMin) Name() string  { return "math min" }
func (MathMin) Usage() string { return "Find the smallest number in the input." }
func (MathMin) Signature() engine.Signature {
	return engine.Signature{Name: "math min", Category: "math"}
}
func (MathMin) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	xs, ints, err := collectNumbers(call, input)
	if err != nil {
		return nil, err
	}
	if len(xs) == 0 {
		return nil, argError(call, "cannot take the minimum of an empty list")
	}
	min := xs[0]
	for _, x := range xs[1:] {
		if x < min {
			min = x
		}
	}
	return engine.ValueData{Val: numberValue(min, ints, call.Head)}, nil
}

type MathMax struct{}

func (MathMax) Name() string  { return "math max" }
func (MathMax) Usage() string { return "Find the largest number in the input." }
func (MathMax) Signature() engine.Signature {
	return engine.Signature{Name: "math max", Category: "math"}
}
func (MathMax) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	xs, ints, err := collectNumbers(call, input)
	if err != nil {
		return nil, err
	}
	if len(xs) == 0 {
		return nil, argError(call, "cannot take the maximum of an empty list")
	}
	max := xs[0]
	for _, x := range xs[1:] {
		if x > max {
			max = x
		}
	}
	return engine.ValueData{Val: numberValue(max, ints, call.Head)}, nil
}
