package engine

// LastExitCode is the environment entry recording the exit code of the most
// recent evaluation, readable by later commands and by the host.
const LastExitCode = "LAST_EXIT_CODE"

// Stack is the mutable binding environment of one evaluation: lexical
// variables plus a shell-style environment map.  Stacks nest; a child stack
// is pushed for each custom-command invocation and lookups walk outward.
type Stack struct {
	parent *Stack
	vars   map[string]Value
	env    map[string]string
}

func NewStack() *Stack {
	return &Stack{
		vars: make(map[string]Value),
		env:  make(map[string]string),
	}
}

// Child opens a nested scope.  Writes land in the child; reads fall through
// to the parent.
func (st *Stack) Child() *Stack {
	c := NewStack()
	c.parent = st
	return c
}

func (st *Stack) AddVar(name string, v Value) {
	st.vars[name] = v
}

func (st *Stack) GetVar(name string) (Value, bool) {
	for s := st; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v, true
		}
	}
	return Value{}, false
}

func (st *Stack) AddEnvVar(name, val string) {
	st.env[name] = val
}

func (st *Stack) GetEnv(name string) (string, bool) {
	for s := st; s != nil; s = s.parent {
		if v, ok := s.env[name]; ok {
			return v, true
		}
	}
	return "", false
}

// EnvVars flattens the visible environment, innermost scope winning.
func (st *Stack) EnvVars() map[string]string {
	scopes := []*Stack{}
	for s := st; s != nil; s = s.parent {
		scopes = append(scopes, s)
	}
	out := make(map[string]string)
	for i := len(scopes) - 1; i >= 0; i-- {
		for k, v := range scopes[i].env {
			out[k] = v
		}
	}
	return out
}
