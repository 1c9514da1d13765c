package main

import (
	"os"
	"strconv"

	"github.com/sophiajt/nu-app/builtin"
	"github.com/sophiajt/nu-app/engine"
	"github.com/sophiajt/nu-app/shell"
)

func main() {
	shell.EnableVTProcessing()

	state := builtin.DefaultContext()
	stack := shell.NewStack()

	shell.EvalSource(state, stack, []byte("ls | length"), "application", shell.StdinInput(), true)

	code := 0
	if s, ok := stack.GetEnv(engine.LastExitCode); ok {
		if n, err := strconv.Atoi(s); err == nil {
			code = n
		}
	}
	os.Exit(code)
}
