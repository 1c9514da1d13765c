package engine

// The three error kinds terminal to an evaluation.  All carry a span where
// one is known so diagnostics can show the offending source.

// ParseError means the source is invalid per the grammar.  The delta of the
// failed parse is discarded and nothing is executed.
type ParseError struct {
	Msg  string
	Span Span
}

func (e *ParseError) Error() string {
	return e.Msg
}

func (e *ParseError) ErrorSpan() Span {
	return e.Span
}

// MergeFault is an internal consistency violation raised while committing a
// delta whose base snapshot no longer matches the state.  It signals state
// corruption, not a bad script.
type MergeFault struct {
	Msg string
}

func (e *MergeFault) Error() string {
	return "merge fault: " + e.Msg
}

// EvalError is a runtime error raised during block execution or result
// rendering.
type EvalError struct {
	Msg   string
	Span  Span
	Inner error
}

func (e *EvalError) Error() string {
	if e.Inner != nil && e.Msg == "" {
		return e.Inner.Error()
	}
	return e.Msg
}

func (e *EvalError) Unwrap() error {
	return e.Inner
}

func (e *EvalError) ErrorSpan() Span {
	return e.Span
}

// Spanned is implemented by errors that can point at source.
type Spanned interface {
	ErrorSpan() Span
}

// ReturnSignal is the control value raised by ‘return’.  It is not a failure;
// evaluation modes that allow early return unwrap it at the block boundary.
type ReturnSignal struct {
	Val  Value
	Span Span
}

func (e *ReturnSignal) Error() string {
	return "return used outside of a custom command or early-return context"
}
