package vm

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/tevino/abool/v2"

	"github.com/sophiajt/nu-app/engine"
)

// runExternal launches an operating-system command.  Its stdout and stderr
// come back as raw streams with a deferred exit code, so output can be
// consumed lazily while the process runs.
func runExternal(state *engine.EngineState, stack *engine.Stack, ext engine.ExternalCall, input engine.PipelineData) (engine.PipelineData, error) {
	argv := []string{}
	for _, a := range ext.Args {
		v, err := evalExprToValue(state, stack, a)
		if err != nil {
			return nil, err
		}
		// Lists flatten to one argument per element
		if v.Kind == engine.KindList {
			for _, x := range v.List {
				argv = append(argv, x.String())
			}
		} else {
			argv = append(argv, v.String())
		}
	}

	cmd := exec.Command(ext.Name, argv...)
	cmd.Env = commandEnv(stack)
	if pwd, ok := stack.GetEnv("PWD"); ok && pwd != "" {
		cmd.Dir = pwd
	}

	switch in := input.(type) {
	case nil, engine.EmptyData:
	case engine.ValueData:
		r, w, err := os.Pipe()
		if err != nil {
			return nil, &engine.EvalError{Msg: "failed to open a pipe", Span: ext.Span, Inner: err}
		}
		cmd.Stdin = r
		go func() {
			w.WriteString(in.Val.String())
			w.Close()
		}()
	case engine.ExternalStreamData:
		if in.Stdout != nil {
			cmd.Stdin = in.Stdout.Reader
		}
		if in.Stderr != nil {
			go in.Stderr.WriteTo(os.Stderr)
		}
		// The buffered exit channel of the upstream process needs no
		// receiver; its waiter never blocks.
	}

	outR, outW, err := os.Pipe()
	if err != nil {
		return nil, &engine.EvalError{Msg: "failed to open a pipe", Span: ext.Span, Inner: err}
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		outR.Close()
		outW.Close()
		return nil, &engine.EvalError{Msg: "failed to open a pipe", Span: ext.Span, Inner: err}
	}
	cmd.Stdout = outW
	cmd.Stderr = errW

	if err := cmd.Start(); err != nil {
		outR.Close()
		outW.Close()
		errR.Close()
		errW.Close()
		if errors.Is(err, exec.ErrNotFound) {
			return nil, &engine.EvalError{
				Msg:  fmt.Sprintf("command ‘%s’ not found", ext.Name),
				Span: ext.Span,
			}
		}
		return nil, &engine.EvalError{
			Msg:  fmt.Sprintf("failed to start ‘%s’", ext.Name),
			Span: ext.Span,
			Inner: err,
		}
	}

	// The child owns the write ends now; close our copies so the read ends
	// see EOF when it exits.
	outW.Close()
	errW.Close()

	exitCh := make(chan int, 1)
	go func() {
		switch err := cmd.Wait(); e := err.(type) {
		case nil:
			exitCh <- 0
		case *exec.ExitError:
			exitCh <- e.ExitCode()
		default:
			exitCh <- -1
		}
	}()

	interrupt := abool.New()
	return engine.ExternalStreamData{
		Stdout:   engine.NewRawStream(outR, interrupt, ext.Span),
		Stderr:   engine.NewRawStream(errR, interrupt, ext.Span),
		ExitCode: exitCh,
		Span:     ext.Span,
	}, nil
}

func commandEnv(stack *engine.Stack) []string {
	env := os.Environ()
	for k, v := range stack.EnvVars() {
		env = append(env, k+"="+v)
	}
	return env
}
