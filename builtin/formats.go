package builtin

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/fxamacker/cbor/v2"

	"github.com/sophiajt/nu-app/engine"
)

type From struct{}

func (From) Name() string  { return "from" }
func (From) Usage() string { return "Parse serialized text into structured values." }
func (From) Signature() engine.Signature {
	return engine.Signature{Name: "from", Category: "formats"}
}
func (From) Run(state *engine.EngineState, _ *engine.Stack, call *engine.Call, _ engine.PipelineData) (engine.PipelineData, error) {
	return nil, subcommandError(state, call, "from")
}

type To struct{}

func (To) Name() string  { return "to" }
func (To) Usage() string { return "Serialize structured values." }
func (To) Signature() engine.Signature {
	return engine.Signature{Name: "to", Category: "formats"}
}
func (To) Run(state *engine.EngineState, _ *engine.Stack, call *engine.Call, _ engine.PipelineData) (engine.PipelineData, error) {
	return nil, subcommandError(state, call, "to")
}

// valueToAny lowers a value into the plain Go shapes the encoding packages
// expect.  Record order is preserved by handing codecs a key-sorted map only
// when they cannot do better; JSON and CBOR both take maps, so ordering is
// up to the codec.
func valueToAny(v engine.Value) any {
	switch v.Kind {
	case engine.KindNothing:
		return nil
	case engine.KindBool:
		return v.Bool
	case engine.KindInt:
		return v.Int
	case engine.KindFloat:
		return v.Flt
	case engine.KindString:
		return v.Str
	case engine.KindList:
		out := make([]any, len(v.List))
		for i, x := range v.List {
			out[i] = valueToAny(x)
		}
		return out
	case engine.KindRecord:
		out := make(map[string]any, len(v.Rec.Keys))
		for i, k := range v.Rec.Keys {
			out[k] = valueToAny(v.Rec.Vals[i])
		}
		return out
	}
	return nil
}

// anyToValue lifts decoded codec output back into values.  Map keys come
// back sorted so repeated decodes of the same document agree.
func anyToValue(call *engine.Call, x any) (engine.Value, error) {
	switch t := x.(type) {
	case nil:
		return engine.Nothing(call.Head), nil
	case bool:
		return engine.BoolValue(t, call.Head), nil
	case int64:
		return engine.IntValue(t, call.Head), nil
	case uint64:
		return engine.IntValue(int64(t), call.Head), nil
	case float64:
		return engine.FloatValue(t, call.Head), nil
	case string:
		return engine.StringValue(t, call.Head), nil
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return engine.IntValue(n, call.Head), nil
		}
		f, err := t.Float64()
		if err != nil {
			return engine.Value{}, argError(call, "cannot decode the number ‘%s’", t.String())
		}
		return engine.FloatValue(f, call.Head), nil
	case []byte:
		return engine.StringValue(string(t), call.Head), nil
	case []any:
		out := make([]engine.Value, len(t))
		for i, e := range t {
			v, err := anyToValue(call, e)
			if err != nil {
				return engine.Value{}, err
			}
			out[i] = v
		}
		return engine.ListValue(out, call.Head), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		rec := &engine.Record{}
		for _, k := range keys {
			v, err := anyToValue(call, t[k])
			if err != nil {
				return engine.Value{}, err
			}
			rec.Set(k, v)
		}
		return engine.RecordValue(rec, call.Head), nil
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, v := range t {
			m[fmt.Sprint(k)] = v
		}
		return anyToValue(call, m)
	}
	return engine.Value{}, argError(call, "cannot decode a value of type %T", x)
}

type FromJson struct{}

func (FromJson) Name() string  { return "from json" }
func (FromJson) Usage() string { return "Parse JSON text into structured values." }
func (FromJson) Signature() engine.Signature {
	return engine.Signature{Name: "from json", Category: "formats"}
}
func (FromJson) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	s, err := collectString(input, call.Head)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var x any
	if err := dec.Decode(&x); err != nil {
		return nil, &engine.EvalError{Msg: "invalid JSON input", Span: call.Head, Inner: err}
	}
	v, err := anyToValue(call, x)
	if err != nil {
		return nil, err
	}
	return engine.ValueData{Val: v}, nil
}

type ToJson struct{}

func (ToJson) Name() string  { return "to json" }
func (ToJson) Usage() string { return "Serialize the input as JSON text." }
func (ToJson) Signature() engine.Signature {
	return engine.Signature{Name: "to json", Category: "formats"}
}
func (ToJson) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	v, err := engine.Collect(input)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(valueToAny(v), "", "  ")
	if err != nil {
		return nil, &engine.EvalError{Msg: "failed to serialize as JSON", Span: call.Head, Inner: err}
	}
	return engine.ValueData{Val: engine.StringValue(string(data), call.Head)}, nil
}

type FromCbor struct{}

func (FromCbor) Name() string  { return "from cbor" }
func (FromCbor) Usage() string { return "Parse CBOR bytes into structured values." }
func (FromCbor) Signature() engine.Signature {
	return engine.Signature{Name: "from cbor", Category: "formats"}
}
func (FromCbor) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	s, err := collectString(input, call.Head)
	if err != nil {
		return nil, err
	}
	var x any
	if err := cbor.Unmarshal([]byte(s), &x); err != nil {
		return nil, &engine.EvalError{Msg: "invalid CBOR input", Span: call.Head, Inner: err}
	}
	v, err := anyToValue(call, x)
	if err != nil {
		return nil, err
	}
	return engine.ValueData{Val: v}, nil
}

type ToCbor struct{}

func (ToCbor) Name() string  { return "to cbor" }
func (ToCbor) Usage() string { return "Serialize the input as CBOR bytes." }
func (ToCbor) Signature() engine.Signature {
	return engine.Signature{Name: "to cbor", Category: "formats"}
}
func (ToCbor) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	v, err := engine.Collect(input)
	if err != nil {
		return nil, err
	}
	data, err := cbor.Marshal(valueToAny(v))
	if err != nil {
		return nil, &engine.EvalError{Msg: "failed to serialize as CBOR", Span: call.Head, Inner: err}
	}
	return engine.ValueData{Val: engine.StringValue(string(data), call.Head)}, nil
}

type FromCsv struct{}

func (FromCsv) Name() string  { return "from csv" }
func (FromCsv) Usage() string { return "Parse CSV text into a table." }
func (FromCsv) Signature() engine.Signature {
	return engine.Signature{Name: "from csv", Category: "formats"}
}
func (FromCsv) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	s, err := collectString(input, call.Head)
	if err != nil {
		return nil, err
	}
	records, err := csv.NewReader(strings.NewReader(s)).ReadAll()
	if err != nil {
		return nil, &engine.EvalError{Msg: "invalid CSV input", Span: call.Head, Inner: err}
	}
	if len(records) == 0 {
		return engine.ValueData{Val: engine.ListValue(nil, call.Head)}, nil
	}
	header := records[0]
	rows := make([]engine.Value, 0, len(records)-1)
	for _, row := range records[1:] {
		rec := &engine.Record{}
		for i, col := range header {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			rec.Set(col, engine.StringValue(cell, call.Head))
		}
		rows = append(rows, engine.RecordValue(rec, call.Head))
	}
	return engine.ValueData{Val: engine.ListValue(rows, call.Head)}, nil
}

type ToCsv struct{}

func (ToCsv) Name() string  { return "to csv" }
func (ToCsv) Usage() string { return "Serialize a table as CSV text." }
func (ToCsv) Signature() engine.Signature {
	return engine.Signature{Name: "to csv", Category: "formats"}
}
func (ToCsv) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	v, err := engine.Collect(input)
	if err != nil {
		return nil, err
	}
	var rows []engine.Value
	switch v.Kind {
	case engine.KindRecord:
		rows = []engine.Value{v}
	case engine.KindList:
		rows = v.List
	default:
		return nil, argError(call, "expected a table but got a %s", v.Type())
	}

	var header []string
	seen := map[string]bool{}
	for _, row := range rows {
		if row.Kind != engine.KindRecord {
			return nil, argError(call, "expected a table but got a list containing a %s", row.Type())
		}
		for _, k := range row.Rec.Keys {
			if !seen[k] {
				seen[k] = true
				header = append(header, k)
			}
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, &engine.EvalError{Msg: "failed to serialize as CSV", Span: call.Head, Inner: err}
	}
	for _, row := range rows {
		cells := make([]string, len(header))
		for i, k := range header {
			if cell, ok := row.Rec.Get(k); ok {
				cells[i] = cell.String()
			}
		}
		if err := w.Write(cells); err != nil {
			return nil, &engine.EvalError{Msg: "failed to serialize as CSV", Span: call.Head, Inner: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, &engine.EvalError{Msg: "failed to serialize as CSV", Span: call.Head, Inner: err}
	}
	return engine.ValueData{Val: engine.StringValue(buf.String(), call.Head)}, nil
}

type ToText struct{}

func (ToText) Name() string  { return "to text" }
func (ToText) Usage() string { return "Render the input as plain text." }
func (ToText) Signature() engine.Signature {
	return engine.Signature{Name: "to text", Category: "formats"}
}
func (ToText) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	v, err := engine.Collect(input)
	if err != nil {
		return nil, err
	}
	if v.Kind == engine.KindList {
		parts := make([]string, len(v.List))
		for i, x := range v.List {
			parts[i] = x.String()
		}
		return engine.ValueData{Val: engine.StringValue(strings.Join(parts, "\n"), call.Head)}, nil
	}
	return engine.ValueData{Val: engine.StringValue(v.String(), call.Head)}, nil
}
