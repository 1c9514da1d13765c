// Package shell drives whole chunks of source through the engine: parse,
// commit, evaluate, print.  It owns the user-facing side of an evaluation,
// meaning diagnostics rendering and the LAST_EXIT_CODE bookkeeping, so that
// hosts embedding the runtime get the same behavior as the interactive
// binary.
package shell

import (
	"strconv"

	"github.com/sophiajt/nu-app/engine"
	"github.com/sophiajt/nu-app/parser"
	"github.com/sophiajt/nu-app/vm"
)

// EvalSource runs one chunk of source against the state.  The steps are
// strictly ordered: a parse with any error discards everything and nothing
// is committed or executed; a clean parse is merged into the state before
// evaluation so the chunk's own declarations are callable; evaluation output
// is printed, with external streams forwarded to this process's stdout and
// stderr.
//
// Every outcome is recorded in LAST_EXIT_CODE on the stack.  The return
// value reports whether the chunk made it through parse, merge, evaluation
// and printing; an external command exiting nonzero is recorded in
// LAST_EXIT_CODE but is not a pipeline failure.  All errors are already
// reported to the standard error by the time it returns, and terminal VT
// processing is restored either way in case the chunk ran something that
// reset the console.
func EvalSource(state *engine.EngineState, stack *engine.Stack, source []byte, fname string, input engine.PipelineData, allowReturn bool) bool {
	ws := engine.NewWorkingSet(state)
	block := parser.Parse(ws, fname, source, false)
	if len(ws.ParseErrors) > 0 {
		ReportError(ws, ws.ParseErrors[0])
		SetLastExitCode(stack, 1)
		return false
	}

	if err := state.MergeDelta(ws.Render()); err != nil {
		ReportError(state, err)
		SetLastExitCode(stack, 1)
		return false
	}

	eval := vm.EvalBlock
	if allowReturn {
		eval = vm.EvalBlockWithEarlyReturn
	}
	data, err := eval(state, stack, block, input)
	if err != nil {
		ReportError(state, err)
		SetLastExitCode(stack, 1)
		return false
	}

	code, err := PrintPipelineData(state, data)
	if err != nil {
		ReportError(state, err)
		SetLastExitCode(stack, 1)
		return false
	}
	SetLastExitCode(stack, code)
	EnableVTProcessing()
	return true
}

// SetLastExitCode records an evaluation outcome where scripts can read it.
func SetLastExitCode(stack *engine.Stack, code int) {
	stack.AddEnvVar(engine.LastExitCode, strconv.Itoa(code))
}
