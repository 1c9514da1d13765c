//go:build unix

package builtin

import (
	"os"
	"os/exec"
	"syscall"

	"github.com/sophiajt/nu-app/engine"
)

func platformCommands() []engine.Command {
	return []engine.Command{Exec{}}
}

type Exec struct{}

func (Exec) Name() string  { return "exec" }
func (Exec) Usage() string { return "Replace the current process with an external command." }
func (Exec) Signature() engine.Signature {
	return engine.Signature{
		Name:     "exec",
		Category: "platform",
		Positional: []engine.PositionalArg{
			{Name: "command", Desc: "the command to become"},
			{Name: "args", Desc: "arguments for the command", Optional: true},
		},
	}
}
func (Exec) Run(_ *engine.EngineState, stk *engine.Stack, call *engine.Call, _ engine.PipelineData) (engine.PipelineData, error) {
	v, ok := call.Arg(0)
	if !ok {
		return nil, argError(call, "‘exec’ needs a command")
	}
	name := v.String()
	path, err := exec.LookPath(name)
	if err != nil {
		return nil, &engine.EvalError{Msg: "command ‘" + name + "’ not found", Span: call.Head, Inner: err}
	}

	argv := make([]string, len(call.Args))
	argv[0] = name
	for i, a := range call.Args[1:] {
		argv[i+1] = a.String()
	}

	env := os.Environ()
	for k, v := range stk.EnvVars() {
		env = append(env, k+"="+v)
	}
	if err := syscall.Exec(path, argv, env); err != nil {
		return nil, &engine.EvalError{Msg: "failed to exec ‘" + name + "’", Span: call.Head, Inner: err}
	}
	panic("unreachable")
}
