package builtin

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sophiajt/nu-app/engine"
)

// ReleaseVersion is reported by the ‘version’ command.
const ReleaseVersion = "0.1.0"

// The declaration keywords are registered as commands so that name lookup
// and help cover them, but the parser consumes them before evaluation ever
// sees a call.  Running one means it appeared somewhere a keyword cannot.

type keyword struct{ name string }

func (k keyword) keywordError() error {
	return &engine.EvalError{
		Msg: fmt.Sprintf("‘%s’ is a parse-time keyword and cannot be called here", k.name),
	}
}

type Let struct{}

func (Let) Name() string  { return "let" }
func (Let) Usage() string { return "Bind a value to a variable." }
func (Let) Signature() engine.Signature {
	return engine.Signature{
		Name:     "let",
		Category: "core",
		Positional: []engine.PositionalArg{
			{Name: "name", Desc: "the variable name"},
			{Name: "value", Desc: "the value to bind"},
		},
	}
}
func (Let) Run(*engine.EngineState, *engine.Stack, *engine.Call, engine.PipelineData) (engine.PipelineData, error) {
	return nil, keyword{"let"}.keywordError()
}

type Def struct{}

func (Def) Name() string  { return "def" }
func (Def) Usage() string { return "Declare a custom command." }
func (Def) Signature() engine.Signature {
	return engine.Signature{
		Name:     "def",
		Category: "core",
		Positional: []engine.PositionalArg{
			{Name: "name", Desc: "the command name"},
			{Name: "params", Desc: "the parameter list"},
			{Name: "body", Desc: "the command body"},
		},
	}
}
func (Def) Run(*engine.EngineState, *engine.Stack, *engine.Call, engine.PipelineData) (engine.PipelineData, error) {
	return nil, keyword{"def"}.keywordError()
}

type Module struct{}

func (Module) Name() string  { return "module" }
func (Module) Usage() string { return "Declare a module of commands." }
func (Module) Signature() engine.Signature {
	return engine.Signature{Name: "module", Category: "core"}
}
func (Module) Run(*engine.EngineState, *engine.Stack, *engine.Call, engine.PipelineData) (engine.PipelineData, error) {
	return nil, keyword{"module"}.keywordError()
}

type Use struct{}

func (Use) Name() string  { return "use" }
func (Use) Usage() string { return "Bring a module's commands into scope." }
func (Use) Signature() engine.Signature {
	return engine.Signature{Name: "use", Category: "core"}
}
func (Use) Run(*engine.EngineState, *engine.Stack, *engine.Call, engine.PipelineData) (engine.PipelineData, error) {
	return nil, keyword{"use"}.keywordError()
}

type Return struct{}

func (Return) Name() string  { return "return" }
func (Return) Usage() string { return "Return early from a custom command." }
func (Return) Signature() engine.Signature {
	return engine.Signature{Name: "return", Category: "core"}
}
func (Return) Run(*engine.EngineState, *engine.Stack, *engine.Call, engine.PipelineData) (engine.PipelineData, error) {
	return nil, keyword{"return"}.keywordError()
}

type Echo struct{}

func (Echo) Name() string  { return "echo" }
func (Echo) Usage() string { return "Return its arguments, ignoring the piped-in value." }
func (Echo) Signature() engine.Signature {
	return engine.Signature{
		Name:     "echo",
		Category: "core",
		Positional: []engine.PositionalArg{
			{Name: "args", Desc: "the values to return", Optional: true},
		},
	}
}
func (Echo) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, _ engine.PipelineData) (engine.PipelineData, error) {
	switch len(call.Args) {
	case 0:
		return engine.ValueData{Val: engine.Nothing(call.Head)}, nil
	case 1:
		return engine.ValueData{Val: call.Args[0]}, nil
	default:
		return engine.ValueData{Val: engine.ListValue(call.Args, call.Head)}, nil
	}
}

type Ignore struct{}

func (Ignore) Name() string  { return "ignore" }
func (Ignore) Usage() string { return "Discard the pipeline's output." }
func (Ignore) Signature() engine.Signature {
	return engine.Signature{Name: "ignore", Category: "core"}
}
func (Ignore) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	if _, err := engine.Collect(input); err != nil {
		return nil, err
	}
	return engine.EmptyData{}, nil
}

type Version struct{}

func (Version) Name() string  { return "version" }
func (Version) Usage() string { return "Show the runtime version." }
func (Version) Signature() engine.Signature {
	return engine.Signature{Name: "version", Category: "core"}
}
func (Version) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, _ engine.PipelineData) (engine.PipelineData, error) {
	rec := &engine.Record{}
	rec.Set("version", engine.StringValue(ReleaseVersion, call.Head))
	return engine.ValueData{Val: engine.RecordValue(rec, call.Head)}, nil
}

type Exit struct{}

func (Exit) Name() string  { return "exit" }
func (Exit) Usage() string { return "Exit the process." }
func (Exit) Signature() engine.Signature {
	return engine.Signature{
		Name:     "exit",
		Category: "core",
		Positional: []engine.PositionalArg{
			{Name: "code", Desc: "the exit code to use", Optional: true},
		},
	}
}
func (Exit) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, _ engine.PipelineData) (engine.PipelineData, error) {
	code := int64(0)
	if v, ok := call.Arg(0); ok {
		n, ok := v.AsInt()
		if !ok {
			return nil, argError(call, "the exit code must be an integer")
		}
		code = n
	}
	os.Exit(int(code))
	panic("unreachable")
}

type Help struct{}

func (Help) Name() string  { return "help" }
func (Help) Usage() string { return "List the available commands." }
func (Help) Signature() engine.Signature {
	return engine.Signature{Name: "help", Category: "core"}
}
func (Help) Run(state *engine.EngineState, _ *engine.Stack, call *engine.Call, _ engine.PipelineData) (engine.PipelineData, error) {
	names := state.DeclNames()
	sort.Strings(names)

	rows := make([]engine.Value, 0, len(names))
	for _, name := range names {
		id, _ := state.FindDecl(name)
		cmd := state.GetDecl(id)
		rec := &engine.Record{}
		rec.Set("name", engine.StringValue(name, call.Head))
		rec.Set("category", engine.StringValue(cmd.Signature().Category, call.Head))
		rec.Set("usage", engine.StringValue(strings.TrimRight(cmd.Usage(), "."), call.Head))
		rows = append(rows, engine.RecordValue(rec, call.Head))
	}
	return engine.ValueData{Val: engine.ListValue(rows, call.Head)}, nil
}
