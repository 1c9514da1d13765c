package builtin

import (
	"strings"

	"github.com/sophiajt/nu-app/engine"
)

type Length struct{}

func (Length) Name() string  { return "length" }
func (Length) Usage() string { return "Count the items in the input." }
func (Length) Signature() engine.Signature {
	return engine.Signature{Name: "length", Category: "filters"}
}
func (Length) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	v, err := engine.Collect(input)
	if err != nil {
		return nil, err
	}
	var n int
	switch v.Kind {
	case engine.KindList:
		n = len(v.List)
	case engine.KindRecord:
		n = len(v.Rec.Keys)
	case engine.KindNothing:
		n = 0
	default:
		n = 1
	}
	return engine.ValueData{Val: engine.IntValue(int64(n), call.Head)}, nil
}

type First struct{}

func (First) Name() string  { return "first" }
func (First) Usage() string { return "Keep the first item, or the first n items." }
func (First) Signature() engine.Signature {
	return engine.Signature{
		Name:     "first",
		Category: "filters",
		Positional: []engine.PositionalArg{
			{Name: "n", Desc: "how many items to keep", Optional: true},
		},
	}
}
func (First) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	xs, err := collectList(input, call.Head)
	if err != nil {
		return nil, err
	}
	if v, ok := call.Arg(0); ok {
		n, ok := v.AsInt()
		if !ok || n < 0 {
			return nil, argError(call, "‘first’ takes a non-negative integer")
		}
		if int(n) > len(xs) {
			n = int64(len(xs))
		}
		return engine.ValueData{Val: engine.ListValue(xs[:n], call.Head)}, nil
	}
	if len(xs) == 0 {
		return engine.ValueData{Val: engine.Nothing(call.Head)}, nil
	}
	return engine.ValueData{Val: xs[0]}, nil
}

type Last struct{}

func (Last) Name() string  { return "last" }
func (Last) Usage() string { return "Keep the last item, or the last n items." }
func (Last) Signature() engine.Signature {
	return engine.Signature{
		Name:     "last",
		Category: "filters",
		Positional: []engine.PositionalArg{
			{Name: "n", Desc: "how many items to keep", Optional: true},
		},
	}
}
func (Last) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	xs, err := collectList(input, call.Head)
	if err != nil {
		return nil, err
	}
	if v, ok := call.Arg(0); ok {
		n, ok := v.AsInt()
		if !ok || n < 0 {
			return nil, argError(call, "‘last’ takes a non-negative integer")
		}
		if int(n) > len(xs) {
			n = int64(len(xs))
		}
		return engine.ValueData{Val: engine.ListValue(xs[len(xs)-int(n):], call.Head)}, nil
	}
	if len(xs) == 0 {
		return engine.ValueData{Val: engine.Nothing(call.Head)}, nil
	}
	return engine.ValueData{Val: xs[len(xs)-1]}, nil
}

type Reverse struct{}

func (Reverse) Name() string  { return "reverse" }
func (Reverse) Usage() string { return "Reverse the input items." }
func (Reverse) Signature() engine.Signature {
	return engine.Signature{Name: "reverse", Category: "filters"}
}
func (Reverse) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	xs, err := collectList(input, call.Head)
	if err != nil {
		return nil, err
	}
	out := make([]engine.Value, len(xs))
	for i, x := range xs {
		out[len(xs)-1-i] = x
	}
	return engine.ValueData{Val: engine.ListValue(out, call.Head)}, nil
}

type Skip struct{}

func (Skip) Name() string  { return "skip" }
func (Skip) Usage() string { return "Drop the first n items." }
func (Skip) Signature() engine.Signature {
	return engine.Signature{
		Name:     "skip",
		Category: "filters",
		Positional: []engine.PositionalArg{
			{Name: "n", Desc: "how many items to drop"},
		},
	}
}
func (Skip) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	xs, err := collectList(input, call.Head)
	if err != nil {
		return nil, err
	}
	n := int64(1)
	if v, ok := call.Arg(0); ok {
		m, ok := v.AsInt()
		if !ok || m < 0 {
			return nil, argError(call, "‘skip’ takes a non-negative integer")
		}
		n = m
	}
	if int(n) > len(xs) {
		n = int64(len(xs))
	}
	return engine.ValueData{Val: engine.ListValue(xs[n:], call.Head)}, nil
}

type Take struct{}

func (Take) Name() string  { return "take" }
func (Take) Usage() string { return "Keep the first n items." }
func (Take) Signature() engine.Signature {
	return engine.Signature{
		Name:     "take",
		Category: "filters",
		Positional: []engine.PositionalArg{
			{Name: "n", Desc: "how many items to keep"},
		},
	}
}
func (Take) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	xs, err := collectList(input, call.Head)
	if err != nil {
		return nil, err
	}
	v, ok := call.Arg(0)
	if !ok {
		return nil, argError(call, "‘take’ needs to know how many items to keep")
	}
	n, okInt := v.AsInt()
	if !okInt || n < 0 {
		return nil, argError(call, "‘take’ takes a non-negative integer")
	}
	if int(n) > len(xs) {
		n = int64(len(xs))
	}
	return engine.ValueData{Val: engine.ListValue(xs[:n], call.Head)}, nil
}

type Get struct{}

func (Get) Name() string  { return "get" }
func (Get) Usage() string { return "Extract a column or a record field." }
func (Get) Signature() engine.Signature {
	return engine.Signature{
		Name:     "get",
		Category: "filters",
		Positional: []engine.PositionalArg{
			{Name: "field", Desc: "the field to extract"},
		},
	}
}
func (Get) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	v, err := engine.Collect(input)
	if err != nil {
		return nil, err
	}
	fv, ok := call.Arg(0)
	if !ok || fv.Kind != engine.KindString {
		return nil, argError(call, "‘get’ takes the name of a field")
	}
	field := fv.Str

	switch v.Kind {
	case engine.KindRecord:
		x, ok := v.Rec.Get(field)
		if !ok {
			return nil, argError(call, "the record has no field ‘%s’", field)
		}
		return engine.ValueData{Val: x}, nil
	case engine.KindList:
		out := make([]engine.Value, 0, len(v.List))
		for _, row := range v.List {
			if row.Kind != engine.KindRecord {
				return nil, argError(call, "‘get’ expects a table or a record")
			}
			if x, ok := row.Rec.Get(field); ok {
				out = append(out, x)
			}
		}
		return engine.ValueData{Val: engine.ListValue(out, call.Head)}, nil
	}
	return nil, argError(call, "‘get’ expects a table or a record")
}

type Lines struct{}

func (Lines) Name() string  { return "lines" }
func (Lines) Usage() string { return "Split text input into a list of lines." }
func (Lines) Signature() engine.Signature {
	return engine.Signature{Name: "lines", Category: "filters"}
}
func (Lines) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	s, err := collectString(input, call.Head)
	if err != nil {
		return nil, err
	}
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return engine.ValueData{Val: engine.ListValue(nil, call.Head)}, nil
	}
	parts := strings.Split(s, "\n")
	out := make([]engine.Value, len(parts))
	for i, p := range parts {
		out[i] = engine.StringValue(strings.TrimRight(p, "\r"), call.Head)
	}
	return engine.ValueData{Val: engine.ListValue(out, call.Head)}, nil
}

type Append struct{}

func (Append) Name() string  { return "append" }
func (Append) Usage() string { return "Add values to the end of the input list." }
func (Append) Signature() engine.Signature {
	return engine.Signature{
		Name:     "append",
		Category: "filters",
		Positional: []engine.PositionalArg{
			{Name: "values", Desc: "the values to add"},
		},
	}
}
func (Append) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	xs, err := collectList(input, call.Head)
	if err != nil {
		return nil, err
	}
	for _, a := range call.Args {
		if a.Kind == engine.KindList {
			xs = append(xs, a.List...)
		} else {
			xs = append(xs, a)
		}
	}
	return engine.ValueData{Val: engine.ListValue(xs, call.Head)}, nil
}

type Prepend struct{}

func (Prepend) Name() string  { return "prepend" }
func (Prepend) Usage() string { return "Add values to the front of the input list." }
func (Prepend) Signature() engine.Signature {
	return engine.Signature{
		Name:     "prepend",
		Category: "filters",
		Positional: []engine.PositionalArg{
			{Name: "values", Desc: "the values to add"},
		},
	}
}
func (Prepend) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	xs, err := collectList(input, call.Head)
	if err != nil {
		return nil, err
	}
	var front []engine.Value
	for _, a := range call.Args {
		if a.Kind == engine.KindList {
			front = append(front, a.List...)
		} else {
			front = append(front, a)
		}
	}
	return engine.ValueData{Val: engine.ListValue(append(front, xs...), call.Head)}, nil
}

type Sort struct{}

func (Sort) Name() string  { return "sort" }
func (Sort) Usage() string { return "Sort the input items." }
func (Sort) Signature() engine.Signature {
	return engine.Signature{
		Name:     "sort",
		Category: "filters",
		Named: []engine.NamedFlag{
			{Long: "reverse", Desc: "sort in descending order"},
		},
	}
}
func (Sort) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	xs, err := collectList(input, call.Head)
	if err != nil {
		return nil, err
	}
	out := append([]engine.Value{}, xs...)
	engine.SortValues(out)
	if call.HasFlag("reverse") {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return engine.ValueData{Val: engine.ListValue(out, call.Head)}, nil
}

type Uniq struct{}

func (Uniq) Name() string  { return "uniq" }
func (Uniq) Usage() string { return "Drop duplicate items, keeping first appearances." }
func (Uniq) Signature() engine.Signature {
	return engine.Signature{Name: "uniq", Category: "filters"}
}
func (Uniq) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	xs, err := collectList(input, call.Head)
	if err != nil {
		return nil, err
	}
	var out []engine.Value
	for _, x := range xs {
		dup := false
		for _, y := range out {
			if engine.Compare(x, y) == 0 && x.Kind == y.Kind {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, x)
		}
	}
	return engine.ValueData{Val: engine.ListValue(out, call.Head)}, nil
}

type Columns struct{}

func (Columns) Name() string  { return "columns" }
func (Columns) Usage() string { return "List the column names of a table or record." }
func (Columns) Signature() engine.Signature {
	return engine.Signature{Name: "columns", Category: "filters"}
}
func (Columns) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	v, err := engine.Collect(input)
	if err != nil {
		return nil, err
	}
	var keys []string
	switch v.Kind {
	case engine.KindRecord:
		keys = v.Rec.Keys
	case engine.KindList:
		seen := map[string]bool{}
		for _, row := range v.List {
			if row.Kind != engine.KindRecord {
				return nil, argError(call, "‘columns’ expects a table or a record")
			}
			for _, k := range row.Rec.Keys {
				if !seen[k] {
					seen[k] = true
					keys = append(keys, k)
				}
			}
		}
	default:
		return nil, argError(call, "‘columns’ expects a table or a record")
	}
	out := make([]engine.Value, len(keys))
	for i, k := range keys {
		out[i] = engine.StringValue(k, call.Head)
	}
	return engine.ValueData{Val: engine.ListValue(out, call.Head)}, nil
}
