package engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Value is the concrete data flowing through pipelines.  Exactly one of the
// payload fields is meaningful for a given Kind.
type Value struct {
	Kind ValueKind
	Bool bool
	Int  int64
	Flt  float64
	Str  string
	List []Value
	Rec  *Record
	Span Span
}

type ValueKind int

const (
	KindNothing ValueKind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindRecord
)

// Record is an insertion-ordered string-to-value map.
type Record struct {
	Keys []string
	Vals []Value
}

func (r *Record) Get(key string) (Value, bool) {
	for i, k := range r.Keys {
		if k == key {
			return r.Vals[i], true
		}
	}
	return Value{}, false
}

func (r *Record) Set(key string, v Value) {
	for i, k := range r.Keys {
		if k == key {
			r.Vals[i] = v
			return
		}
	}
	r.Keys = append(r.Keys, key)
	r.Vals = append(r.Vals, v)
}

func Nothing(span Span) Value           { return Value{Kind: KindNothing, Span: span} }
func BoolValue(b bool, span Span) Value { return Value{Kind: KindBool, Bool: b, Span: span} }
func IntValue(n int64, span Span) Value { return Value{Kind: KindInt, Int: n, Span: span} }
func FloatValue(f float64, span Span) Value {
	return Value{Kind: KindFloat, Flt: f, Span: span}
}
func StringValue(s string, span Span) Value {
	return Value{Kind: KindString, Str: s, Span: span}
}
func ListValue(xs []Value, span Span) Value {
	return Value{Kind: KindList, List: xs, Span: span}
}
func RecordValue(r *Record, span Span) Value {
	return Value{Kind: KindRecord, Rec: r, Span: span}
}

func (v Value) Type() string {
	switch v.Kind {
	case KindNothing:
		return "nothing"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindRecord:
		return "record"
	}
	panic("unreachable")
}

// String renders the display form of a value.  Composite values get a
// single-line NUON-ish rendering; table layout is the job of FormatValue.
func (v Value) String() string {
	switch v.Kind {
	case KindNothing:
		return ""
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Flt, 'g', -1, 64)
	case KindString:
		return v.Str
	case KindList:
		parts := make([]string, len(v.List))
		for i, x := range v.List {
			parts[i] = x.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindRecord:
		parts := make([]string, len(v.Rec.Keys))
		for i, k := range v.Rec.Keys {
			parts[i] = fmt.Sprintf("%s: %s", k, v.Rec.Vals[i].String())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	panic("unreachable")
}

// AsInt coerces a value to an integer where that is lossless.
func (v Value) AsInt() (int64, bool) {
	switch v.Kind {
	case KindInt:
		return v.Int, true
	case KindBool:
		if v.Bool {
			return 1, true
		}
		return 0, true
	case KindString:
		n, err := strconv.ParseInt(strings.TrimSpace(v.Str), 10, 64)
		return n, err == nil
	}
	return 0, false
}

// AsFloat widens ints; everything else must already be a float.
func (v Value) AsFloat() (float64, bool) {
	switch v.Kind {
	case KindFloat:
		return v.Flt, true
	case KindInt:
		return float64(v.Int), true
	}
	return 0, false
}

// Compare orders two values for sort and uniq.  Values of different kinds
// order by kind tag so sorting mixed lists is stable rather than an error.
func Compare(a, b Value) int {
	if a.Kind != b.Kind {
		if x, ok := a.AsFloat(); ok {
			if y, ok := b.AsFloat(); ok {
				return cmpFloat(x, y)
			}
		}
		return int(a.Kind) - int(b.Kind)
	}
	switch a.Kind {
	case KindNothing:
		return 0
	case KindBool:
		return btoi(a.Bool) - btoi(b.Bool)
	case KindInt:
		return cmpFloat(float64(a.Int), float64(b.Int))
	case KindFloat:
		return cmpFloat(a.Flt, b.Flt)
	case KindString:
		return strings.Compare(a.Str, b.Str)
	case KindList:
		for i := 0; i < len(a.List) && i < len(b.List); i++ {
			if c := Compare(a.List[i], b.List[i]); c != 0 {
				return c
			}
		}
		return len(a.List) - len(b.List)
	case KindRecord:
		return strings.Compare(a.String(), b.String())
	}
	panic("unreachable")
}

func SortValues(xs []Value) {
	sort.SliceStable(xs, func(i, j int) bool {
		return Compare(xs[i], xs[j]) < 0
	})
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}

func cmpFloat(x, y float64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}
