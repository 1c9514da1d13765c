package engine

import (
	"bytes"
	"io"

	"github.com/tevino/abool/v2"
)

// PipelineData is the value passing between pipeline stages: a concrete
// value, the empty signal, or the byte streams of an external process.
// Stream-carrying data must be consumed exactly once.
type PipelineData interface {
	isPipelineData()
}

// EmptyData is the absent signal produced by commands with nothing to say.
type EmptyData struct{}

// ValueData wraps a concrete value.
type ValueData struct {
	Val Value
}

// ExternalStreamData carries the output of an external process: the raw
// stdout and stderr streams and a deferred exit code that resolves once the
// process terminates.  Stderr and ExitCode may be nil when the source is not
// a process (for example the standard input wrapper).
type ExternalStreamData struct {
	Stdout   *RawStream
	Stderr   *RawStream
	ExitCode <-chan int
	Span     Span
}

func (EmptyData) isPipelineData()          {}
func (ValueData) isPipelineData()          {}
func (ExternalStreamData) isPipelineData() {}

// RawStream is a lazily-read byte stream with a shared interrupt flag.  The
// flag is a capability for consumers: nothing in the engine sets it, but any
// reader loop observing it set stops early.
type RawStream struct {
	Reader    io.Reader
	Interrupt *abool.AtomicBool
	Span      Span
	KnownSize int64 // -1 when unknown upfront
}

func NewRawStream(r io.Reader, interrupt *abool.AtomicBool, span Span) *RawStream {
	return &RawStream{
		Reader:    r,
		Interrupt: interrupt,
		Span:      span,
		KnownSize: -1,
	}
}

const streamChunk = 8192

// WriteTo drains the stream into w in chunks, stopping early if the
// interrupt flag is set.  It never buffers more than one chunk.
func (rs *RawStream) WriteTo(w io.Writer) (int64, error) {
	buf := make([]byte, streamChunk)
	var total int64
	for {
		if rs.Interrupt != nil && rs.Interrupt.IsSet() {
			return total, nil
		}
		n, err := rs.Reader.Read(buf)
		if n > 0 {
			m, werr := w.Write(buf[:n])
			total += int64(m)
			if werr != nil {
				return total, werr
			}
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// Bytes drains the whole stream into memory.
func (rs *RawStream) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	_, err := rs.WriteTo(&buf)
	return buf.Bytes(), err
}

// Collect reduces pipeline data to a single value.  External streams are
// drained: stdout becomes a string value and a nonzero exit code becomes an
// evaluation error carrying whatever stderr produced.
func Collect(data PipelineData) (Value, error) {
	switch d := data.(type) {
	case nil, EmptyData:
		return Nothing(UnknownSpan()), nil
	case ValueData:
		return d.Val, nil
	case ExternalStreamData:
		// Stderr is read concurrently with stdout so a child filling its
		// stderr pipe cannot stall the stdout read before it sees EOF.
		var errOut []byte
		errDone := make(chan struct{})
		if d.Stderr != nil {
			go func() {
				defer close(errDone)
				errOut, _ = d.Stderr.Bytes()
			}()
		} else {
			close(errDone)
		}

		var out []byte
		var err error
		if d.Stdout != nil {
			out, err = d.Stdout.Bytes()
		}
		<-errDone
		if err != nil {
			return Value{}, &EvalError{Msg: "failed reading external stream", Span: d.Span, Inner: err}
		}
		if d.ExitCode != nil {
			if code := <-d.ExitCode; code != 0 {
				msg := "external command failed"
				if len(errOut) > 0 {
					msg = string(bytes.TrimRight(errOut, "\n"))
				}
				return Value{}, &EvalError{Msg: msg, Span: d.Span}
			}
		}
		return StringValue(string(out), d.Span), nil
	}
	panic("unreachable")
}
