package vm

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sophiajt/nu-app/engine"
	"github.com/sophiajt/nu-app/parser"
)

// gatedReader refuses to end before the gate closes, like a process that
// only exits once its stderr has been consumed.
type gatedReader struct {
	gate <-chan struct{}
}

func (g gatedReader) Read([]byte) (int, error) {
	<-g.gate
	return 0, io.EOF
}

// upperCmd is a minimal pipeline stage for exercising input threading.
type upperCmd struct{}

func (upperCmd) Name() string  { return "upper" }
func (upperCmd) Usage() string { return "Uppercase the input." }
func (upperCmd) Signature() engine.Signature {
	return engine.Signature{Name: "upper", Category: "test"}
}
func (upperCmd) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	v, err := engine.Collect(input)
	if err != nil {
		return nil, err
	}
	return engine.ValueData{Val: engine.StringValue(strings.ToUpper(v.Str), call.Head)}, nil
}

func newState(t *testing.T) *engine.EngineState {
	t.Helper()
	state := engine.NewEngineState()
	ws := engine.NewWorkingSet(state)
	ws.AddDecl(upperCmd{})
	if err := state.MergeDelta(ws.Render()); err != nil {
		t.Fatalf("Expected the bootstrap merge to succeed but got ‘%s’", err)
	}
	return state
}

func run(t *testing.T, state *engine.EngineState, stack *engine.Stack, src string) (engine.PipelineData, error) {
	t.Helper()
	ws := engine.NewWorkingSet(state)
	block := parser.Parse(ws, "test", []byte(src), false)
	if len(ws.ParseErrors) != 0 {
		t.Fatalf("Expected ‘%s’ to parse but got ‘%s’", src, ws.ParseErrors[0])
	}
	if err := state.MergeDelta(ws.Render()); err != nil {
		t.Fatalf("Expected the merge to succeed but got ‘%s’", err)
	}
	return EvalBlock(state, stack, block, engine.EmptyData{})
}

func runValue(t *testing.T, state *engine.EngineState, stack *engine.Stack, src string) engine.Value {
	t.Helper()
	data, err := run(t, state, stack, src)
	if err != nil {
		t.Fatalf("Expected ‘%s’ to evaluate but got ‘%s’", src, err)
	}
	v, err := engine.Collect(data)
	if err != nil {
		t.Fatalf("Expected ‘%s’ to collect but got ‘%s’", src, err)
	}
	return v
}

func TestLetAndArithmetic(t *testing.T) {
	state := newState(t)
	stack := engine.NewStack()

	v := runValue(t, state, stack, "let x = 3\n$x + 4")
	if v.Kind != engine.KindInt || v.Int != 7 {
		t.Fatalf("Expected 7 but got ‘%s’", v)
	}

	v = runValue(t, state, stack, "$x * $x - 1")
	if v.Int != 8 {
		t.Fatalf("Expected 8 but got ‘%s’", v)
	}
}

func TestFloatWidening(t *testing.T) {
	state := newState(t)
	v := runValue(t, state, engine.NewStack(), "1 + 0.5")
	if v.Kind != engine.KindFloat || v.Flt != 1.5 {
		t.Fatalf("Expected 1.5 but got ‘%s’", v)
	}
}

func TestStringAndListConcat(t *testing.T) {
	state := newState(t)
	stack := engine.NewStack()

	v := runValue(t, state, stack, "'foo' + 'bar'")
	if v.Str != "foobar" {
		t.Fatalf("Expected ‘foobar’ but got ‘%s’", v.Str)
	}

	v = runValue(t, state, stack, "[1, 2] + [3]")
	if v.Kind != engine.KindList || len(v.List) != 3 {
		t.Fatalf("Expected a 3-element list but got ‘%s’", v)
	}
}

func TestDivisionByZero(t *testing.T) {
	state := newState(t)
	_, err := run(t, state, engine.NewStack(), "1 / 0")
	if err == nil {
		t.Fatalf("Expected a division by zero error")
	}
	if !strings.Contains(err.Error(), "division by zero") {
		t.Fatalf("Expected a division by zero error but got ‘%s’", err)
	}
}

func TestUnknownVariable(t *testing.T) {
	state := newState(t)
	_, err := run(t, state, engine.NewStack(), "$nope + 1")
	if err == nil || !strings.Contains(err.Error(), "‘nope’ not found") {
		t.Fatalf("Expected an unknown variable error but got ‘%v’", err)
	}
}

func TestPipelineThreadsInput(t *testing.T) {
	state := newState(t)
	v := runValue(t, state, engine.NewStack(), "'hello' | upper | upper")
	if v.Str != "HELLO" {
		t.Fatalf("Expected ‘HELLO’ but got ‘%s’", v.Str)
	}
}

func TestDefThenCallInOneChunk(t *testing.T) {
	state := newState(t)
	v := runValue(t, state, engine.NewStack(), "def twice [x] { $x + $x }\ntwice 21")
	if v.Int != 42 {
		t.Fatalf("Expected 42 but got ‘%s’", v)
	}
}

func TestCustomCommandScoping(t *testing.T) {
	state := newState(t)
	stack := engine.NewStack()
	stack.AddVar("x", engine.IntValue(1, engine.UnknownSpan()))

	v := runValue(t, state, stack, "def f [x] { $x + 10 }\nf 5")
	if v.Int != 15 {
		t.Fatalf("Expected 15 but got ‘%s’", v)
	}
	// The parameter binding must not leak into the caller's scope.
	if outer, _ := stack.GetVar("x"); outer.Int != 1 {
		t.Fatalf("Expected the caller's ‘x’ to stay 1 but got %d", outer.Int)
	}
}

func TestMissingParamsBindNothing(t *testing.T) {
	state := newState(t)
	v := runValue(t, state, engine.NewStack(), "def f [a, b] { $b }\nf 1")
	if v.Kind != engine.KindNothing {
		t.Fatalf("Expected nothing but got ‘%s’", v)
	}
}

func TestTooManyArguments(t *testing.T) {
	state := newState(t)
	_, err := run(t, state, engine.NewStack(), "def f [a] { $a }\nf 1 2")
	if err == nil || !strings.Contains(err.Error(), "takes 1 arguments but got 2") {
		t.Fatalf("Expected an arity error but got ‘%v’", err)
	}
}

func TestReturnStopsAtCommandBoundary(t *testing.T) {
	state := newState(t)
	v := runValue(t, state, engine.NewStack(), "def f [] { return 5\n9 }\nf")
	if v.Int != 5 {
		t.Fatalf("Expected 5 but got ‘%s’", v)
	}
}

func TestTopLevelReturn(t *testing.T) {
	state := newState(t)
	ws := engine.NewWorkingSet(state)
	block := parser.Parse(ws, "test", []byte("return 3"), false)
	if len(ws.ParseErrors) != 0 {
		t.Fatalf("Expected a clean parse but got ‘%s’", ws.ParseErrors[0])
	}
	if err := state.MergeDelta(ws.Render()); err != nil {
		t.Fatalf("Expected the merge to succeed but got ‘%s’", err)
	}

	if _, err := EvalBlock(state, engine.NewStack(), block, engine.EmptyData{}); err == nil {
		t.Fatalf("Expected a top-level return to error without early-return support")
	}

	data, err := EvalBlockWithEarlyReturn(state, engine.NewStack(), block, engine.EmptyData{})
	if err != nil {
		t.Fatalf("Expected the early return to succeed but got ‘%s’", err)
	}
	v, _ := engine.Collect(data)
	if v.Int != 3 {
		t.Fatalf("Expected 3 but got ‘%s’", v)
	}
}

func TestSubExpression(t *testing.T) {
	state := newState(t)
	v := runValue(t, state, engine.NewStack(), "(1 + 2) * (2 + 2)")
	if v.Int != 12 {
		t.Fatalf("Expected 12 but got ‘%s’", v)
	}
}

func TestDrainReadsStderrConcurrently(t *testing.T) {
	// The stderr pipe blocks its writer until somebody reads, and stdout
	// refuses to EOF until the writer is done.  Draining the two streams one
	// after the other can therefore never finish.
	gate := make(chan struct{})
	pr, pw := io.Pipe()
	go func() {
		pw.Write([]byte("boom\n"))
		pw.Close()
		close(gate)
	}()

	exit := make(chan int, 1)
	exit <- 0
	data := engine.ExternalStreamData{
		Stdout:   engine.NewRawStream(gatedReader{gate}, nil, engine.UnknownSpan()),
		Stderr:   engine.NewRawStream(pr, nil, engine.UnknownSpan()),
		ExitCode: exit,
		Span:     engine.UnknownSpan(),
	}

	done := make(chan error, 1)
	go func() { done <- drain(data) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Expected the drain to succeed but got ‘%s’", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Expected the drain to finish")
	}
}

func TestEmptyBlockPassesInputThrough(t *testing.T) {
	state := newState(t)
	in := engine.ValueData{Val: engine.IntValue(9, engine.UnknownSpan())}
	out, err := EvalBlock(state, engine.NewStack(), &engine.Block{}, in)
	if err != nil {
		t.Fatalf("Expected an empty block to succeed but got ‘%s’", err)
	}
	v, _ := engine.Collect(out)
	if v.Int != 9 {
		t.Fatalf("Expected the input to pass through, got ‘%s’", v)
	}
}
