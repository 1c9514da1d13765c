package builtin

import (
	"strings"

	"github.com/sophiajt/nu-app/engine"
	"github.com/sophiajt/nu-app/pkg/stringsx"
)

type Str struct{}

func (Str) Name() string  { return "str" }
func (Str) Usage() string { return "Work with text." }
func (Str) Signature() engine.Signature {
	return engine.Signature{Name: "str", Category: "strings"}
}
func (Str) Run(state *engine.EngineState, _ *engine.Stack, call *engine.Call, _ engine.PipelineData) (engine.PipelineData, error) {
	return nil, subcommandError(state, call, "str")
}

// mapText applies f to string input, or to every string in list input.
func mapText(call *engine.Call, input engine.PipelineData, f func(string) engine.Value) (engine.PipelineData, error) {
	v, err := engine.Collect(input)
	if err != nil {
		return nil, err
	}
	switch v.Kind {
	case engine.KindString:
		return engine.ValueData{Val: f(v.Str)}, nil
	case engine.KindList:
		out := make([]engine.Value, len(v.List))
		for i, x := range v.List {
			if x.Kind != engine.KindString {
				return nil, argError(call, "expected a string but got a %s", x.Type())
			}
			out[i] = f(x.Str)
		}
		return engine.ValueData{Val: engine.ListValue(out, call.Head)}, nil
	}
	return nil, argError(call, "expected a string but got a %s", v.Type())
}

type StrUpcase struct{}

func (StrUpcase) Name() string  { return "str upcase" }
func (StrUpcase) Usage() string { return "Uppercase the input text." }
func (StrUpcase) Signature() engine.Signature {
	return engine.Signature{Name: "str upcase", Category: "strings"}
}
func (StrUpcase) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	return mapText(call, input, func(s string) engine.Value {
		return engine.StringValue(strings.ToUpper(s), call.Head)
	})
}

type StrDowncase struct{}

func (StrDowncase) Name() string  { return "str downcase" }
func (StrDowncase) Usage() string { return "Lowercase the input text." }
func (StrDowncase) Signature() engine.Signature {
	return engine.Signature{Name: "str downcase", Category: "strings"}
}
func (StrDowncase) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	return mapText(call, input, func(s string) engine.Value {
		return engine.StringValue(strings.ToLower(s), call.Head)
	})
}

type StrTrim struct{}

func (StrTrim) Name() string  { return "str trim" }
func (StrTrim) Usage() string { return "Trim whitespace around the input text." }
func (StrTrim) Signature() engine.Signature {
	return engine.Signature{Name: "str trim", Category: "strings"}
}
func (StrTrim) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	return mapText(call, input, func(s string) engine.Value {
		return engine.StringValue(strings.TrimSpace(s), call.Head)
	})
}

type StrLength struct{}

func (StrLength) Name() string  { return "str length" }
func (StrLength) Usage() string { return "Measure the input text in bytes." }
func (StrLength) Signature() engine.Signature {
	return engine.Signature{Name: "str length", Category: "strings"}
}
func (StrLength) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	return mapText(call, input, func(s string) engine.Value {
		return engine.IntValue(int64(len(s)), call.Head)
	})
}

type StrJoin struct{}

func (StrJoin) Name() string  { return "str join" }
func (StrJoin) Usage() string { return "Join the input list into one string." }
func (StrJoin) Signature() engine.Signature {
	return engine.Signature{
		Name:     "str join",
		Category: "strings",
		Positional: []engine.PositionalArg{
			{Name: "separator", Desc: "text between the joined items", Optional: true},
		},
	}
}
func (StrJoin) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	xs, err := collectList(input, call.Head)
	if err != nil {
		return nil, err
	}
	sep := ""
	if v, ok := call.Arg(0); ok {
		sep = v.String()
	}
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = x.String()
	}
	return engine.ValueData{Val: engine.StringValue(strings.Join(parts, sep), call.Head)}, nil
}

type Split struct{}

func (Split) Name() string  { return "split" }
func (Split) Usage() string { return "Split text apart." }
func (Split) Signature() engine.Signature {
	return engine.Signature{Name: "split", Category: "strings"}
}
func (Split) Run(state *engine.EngineState, _ *engine.Stack, call *engine.Call, _ engine.PipelineData) (engine.PipelineData, error) {
	return nil, subcommandError(state, call, "split")
}

type SplitRow struct{}

func (SplitRow) Name() string { return "split row" }
func (SplitRow) Usage() string {
	return "Split the input text into rows on any of the given separators."
}
func (SplitRow) Signature() engine.Signature {
	return engine.Signature{
		Name:     "split row",
		Category: "strings",
		Positional: []engine.PositionalArg{
			{Name: "separators", Desc: "one or more separators to split on"},
		},
	}
}
func (SplitRow) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	s, err := collectString(input, call.Head)
	if err != nil {
		return nil, err
	}
	if len(call.Args) == 0 {
		return nil, argError(call, "‘split row’ needs at least one separator")
	}
	seps := make([]string, len(call.Args))
	for i, a := range call.Args {
		if a.Kind != engine.KindString || a.Str == "" {
			return nil, argError(call, "separators must be non-empty strings")
		}
		seps[i] = a.Str
	}
	parts := stringsx.SplitMulti(s, seps)
	out := make([]engine.Value, len(parts))
	for i, p := range parts {
		out[i] = engine.StringValue(p, call.Head)
	}
	return engine.ValueData{Val: engine.ListValue(out, call.Head)}, nil
}
