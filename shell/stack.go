package shell

import (
	"os"

	"github.com/sophiajt/nu-app/engine"
)

// NewStack builds the top-level stack for a run, seeding PWD and a zero
// LAST_EXIT_CODE.  PWD falls back through the inherited environment and the
// home directory when the working directory cannot be determined.
func NewStack() *engine.Stack {
	st := engine.NewStack()

	pwd, err := os.Getwd()
	if err != nil || pwd == "" {
		pwd = os.Getenv("PWD")
	}
	if pwd == "" {
		pwd, _ = os.UserHomeDir()
	}
	st.AddEnvVar("PWD", pwd)
	st.AddEnvVar(engine.LastExitCode, "0")
	return st
}
