package shell

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/sophiajt/nu-app/builtin"
	"github.com/sophiajt/nu-app/engine"
)

// captureStderr redirects the standard error for the duration of f, since
// diagnostics are rendered straight to it.
func captureStderr(t *testing.T, f func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Expected a pipe but got ‘%s’", err)
	}
	old := os.Stderr
	os.Stderr = w
	defer func() { os.Stderr = old }()

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		buf.ReadFrom(r)
		done <- buf.String()
	}()

	f()
	w.Close()
	return <-done
}

func lastExitCode(t *testing.T, stack *engine.Stack) string {
	t.Helper()
	code, ok := stack.GetEnv(engine.LastExitCode)
	if !ok {
		t.Fatalf("Expected LAST_EXIT_CODE to be set")
	}
	return code
}

func TestInvalidSourceLeavesStateUntouched(t *testing.T) {
	state := builtin.DefaultContext()
	stack := NewStack()
	decls, blocks := state.NumDecls(), state.NumBlocks()

	var ok bool
	out := captureStderr(t, func() {
		ok = EvalSource(state, stack, []byte("def broken [ { }"), "entry #1", engine.EmptyData{}, false)
	})

	if ok {
		t.Fatalf("Expected the evaluation to fail")
	}
	if state.NumDecls() != decls || state.NumBlocks() != blocks {
		t.Fatalf("Expected the failed parse to leave the state untouched")
	}
	if code := lastExitCode(t, stack); code != "1" {
		t.Fatalf("Expected LAST_EXIT_CODE to be ‘1’ but got ‘%s’", code)
	}
	if !strings.Contains(out, "Parse error:") {
		t.Fatalf("Expected a parse diagnostic but got ‘%s’", out)
	}
}

func TestDefPersistsAcrossEvaluations(t *testing.T) {
	state := builtin.DefaultContext()
	stack := NewStack()

	if !EvalSource(state, stack, []byte("def twice [x] { $x + $x }"), "entry #1", engine.EmptyData{}, false) {
		t.Fatalf("Expected the definition to evaluate")
	}
	if code := lastExitCode(t, stack); code != "0" {
		t.Fatalf("Expected LAST_EXIT_CODE to be ‘0’ but got ‘%s’", code)
	}
	if _, ok := state.FindDecl("twice"); !ok {
		t.Fatalf("Expected ‘twice’ to persist after the merge")
	}
	if !EvalSource(state, stack, []byte("twice 4 | ignore"), "entry #2", engine.EmptyData{}, false) {
		t.Fatalf("Expected the later chunk to call ‘twice’")
	}
}

// exitCmd reports a fixed nonzero exit code without producing any output.
type exitCmd struct{}

func (exitCmd) Name() string  { return "fail3" }
func (exitCmd) Usage() string { return "Exit with code 3." }
func (exitCmd) Signature() engine.Signature {
	return engine.Signature{Name: "fail3", Category: "test"}
}
func (exitCmd) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, _ engine.PipelineData) (engine.PipelineData, error) {
	exit := make(chan int, 1)
	exit <- 3
	return engine.ExternalStreamData{ExitCode: exit, Span: call.Head}, nil
}

func TestNonzeroExitCodeIsNotAFailure(t *testing.T) {
	state := builtin.DefaultContext()
	ws := engine.NewWorkingSet(state)
	ws.AddDecl(exitCmd{})
	if err := state.MergeDelta(ws.Render()); err != nil {
		t.Fatalf("Expected the merge to succeed but got ‘%s’", err)
	}
	stack := NewStack()

	if !EvalSource(state, stack, []byte("fail3"), "entry #1", engine.EmptyData{}, false) {
		t.Fatalf("Expected the chunk to succeed even though the command exited nonzero")
	}
	if code := lastExitCode(t, stack); code != "3" {
		t.Fatalf("Expected LAST_EXIT_CODE to be ‘3’ but got ‘%s’", code)
	}
}

func TestOnlyFirstParseErrorIsReported(t *testing.T) {
	state := builtin.DefaultContext()
	stack := NewStack()

	out := captureStderr(t, func() {
		EvalSource(state, stack, []byte("let = 1\nlet = 2"), "entry #1", engine.EmptyData{}, false)
	})
	if n := strings.Count(out, "Parse error:"); n != 1 {
		t.Fatalf("Expected exactly one reported parse error but got %d in ‘%s’", n, out)
	}
}

func TestEvalErrorSetsExitCode(t *testing.T) {
	state := builtin.DefaultContext()
	stack := NewStack()

	var ok bool
	out := captureStderr(t, func() {
		ok = EvalSource(state, stack, []byte("1 / 0"), "entry #1", engine.EmptyData{}, false)
	})
	if ok {
		t.Fatalf("Expected the evaluation to fail")
	}
	if code := lastExitCode(t, stack); code != "1" {
		t.Fatalf("Expected LAST_EXIT_CODE to be ‘1’ but got ‘%s’", code)
	}
	if !strings.Contains(out, "division by zero") {
		t.Fatalf("Expected a division diagnostic but got ‘%s’", out)
	}
}

func TestFailedChunkStillCommitsNothing(t *testing.T) {
	state := builtin.DefaultContext()
	stack := NewStack()

	captureStderr(t, func() {
		// The def parses but the same chunk fails later, after the merge:
		// the definition stays, matching commit-then-evaluate ordering.
		EvalSource(state, stack, []byte("def kept [] { 1 }\n1 / 0"), "entry #1", engine.EmptyData{}, false)
	})
	if _, ok := state.FindDecl("kept"); !ok {
		t.Fatalf("Expected ‘kept’ to be committed before evaluation failed")
	}
}

func TestReportErrorSnippet(t *testing.T) {
	state := builtin.DefaultContext()
	stack := NewStack()

	out := captureStderr(t, func() {
		EvalSource(state, stack, []byte("let x = $missing"), "entry #7", engine.EmptyData{}, false)
	})
	if !strings.Contains(out, "entry #7:1:9") {
		t.Fatalf("Expected the snippet to name entry #7:1:9, got ‘%s’", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("Expected a caret underline, got ‘%s’", out)
	}
	if !strings.Contains(out, "let x = $missing") {
		t.Fatalf("Expected the offending line, got ‘%s’", out)
	}
}

func TestPrintExternalStreamExitCode(t *testing.T) {
	state := builtin.DefaultContext()

	exit := make(chan int, 1)
	exit <- 3
	data := engine.ExternalStreamData{
		Stdout:   engine.NewRawStream(strings.NewReader(""), nil, engine.UnknownSpan()),
		Stderr:   engine.NewRawStream(strings.NewReader(""), nil, engine.UnknownSpan()),
		ExitCode: exit,
		Span:     engine.UnknownSpan(),
	}
	code, err := PrintPipelineData(state, data)
	if err != nil {
		t.Fatalf("Expected printing to succeed but got ‘%s’", err)
	}
	if code != 3 {
		t.Fatalf("Expected exit code 3 but got %d", code)
	}
}

func TestSetLastExitCode(t *testing.T) {
	stack := engine.NewStack()
	SetLastExitCode(stack, 42)
	if code, _ := stack.GetEnv(engine.LastExitCode); code != "42" {
		t.Fatalf("Expected ‘42’ but got ‘%s’", code)
	}
}

func TestNewStackSeedsEnvironment(t *testing.T) {
	stack := NewStack()
	if pwd, ok := stack.GetEnv("PWD"); !ok || pwd == "" {
		t.Fatalf("Expected PWD to be seeded")
	}
	if code := lastExitCode(t, stack); code != "0" {
		t.Fatalf("Expected a zero LAST_EXIT_CODE but got ‘%s’", code)
	}
}
