package builtin

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sophiajt/nu-app/engine"
	"github.com/sophiajt/nu-app/pkg/stack"
)

type Ls struct{}

func (Ls) Name() string  { return "ls" }
func (Ls) Usage() string { return "List directory entries as a table." }
func (Ls) Signature() engine.Signature {
	return engine.Signature{
		Name:     "ls",
		Category: "filesystem",
		Positional: []engine.PositionalArg{
			{Name: "path", Desc: "the directory to list", Optional: true},
		},
	}
}
func (Ls) Run(_ *engine.EngineState, stk *engine.Stack, call *engine.Call, _ engine.PipelineData) (engine.PipelineData, error) {
	dir := "."
	if v, ok := call.Arg(0); ok {
		dir = v.String()
	}
	dir = resolvePath(stk, dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &engine.EvalError{Msg: "failed to read directory", Span: call.Head, Inner: err}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	rows := make([]engine.Value, 0, len(entries))
	for _, e := range entries {
		kind := "file"
		if e.IsDir() {
			kind = "dir"
		} else if e.Type()&os.ModeSymlink != 0 {
			kind = "symlink"
		}
		var size int64
		if info, err := e.Info(); err == nil {
			size = info.Size()
		}
		rec := &engine.Record{}
		rec.Set("name", engine.StringValue(e.Name(), call.Head))
		rec.Set("type", engine.StringValue(kind, call.Head))
		rec.Set("size", engine.IntValue(size, call.Head))
		rows = append(rows, engine.RecordValue(rec, call.Head))
	}
	return engine.ValueData{Val: engine.ListValue(rows, call.Head)}, nil
}

// cdStack remembers previous working directories so ‘cd -’ can go back.
var cdStack = stack.New[string](64)

type Cd struct{}

func (Cd) Name() string  { return "cd" }
func (Cd) Usage() string { return "Change the working directory." }
func (Cd) Signature() engine.Signature {
	return engine.Signature{
		Name:     "cd",
		Category: "filesystem",
		Positional: []engine.PositionalArg{
			{Name: "path", Desc: "the directory to change to", Optional: true},
		},
	}
}
func (Cd) Run(_ *engine.EngineState, stk *engine.Stack, call *engine.Call, _ engine.PipelineData) (engine.PipelineData, error) {
	pwd, _ := stk.GetEnv("PWD")

	var dst string
	if v, ok := call.Arg(0); ok {
		dst = v.String()
	}
	switch dst {
	case "":
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, &engine.EvalError{Msg: "cannot locate the home directory", Span: call.Head, Inner: err}
		}
		dst = home
	case "-":
		prev := cdStack.Pop()
		if prev == nil {
			return nil, argError(call, "the directory stack is empty")
		}
		dst = *prev
	default:
		dst = resolvePath(stk, dst)
	}

	info, err := os.Stat(dst)
	if err != nil {
		return nil, &engine.EvalError{Msg: "cannot cd to ‘" + dst + "’", Span: call.Head, Inner: err}
	}
	if !info.IsDir() {
		return nil, argError(call, "‘%s’ is not a directory", dst)
	}

	if pwd != "" {
		cdStack.Push(pwd)
	}
	stk.AddEnvVar("PWD", filepath.Clean(dst))
	return engine.EmptyData{}, nil
}

type Mkdir struct{}

func (Mkdir) Name() string  { return "mkdir" }
func (Mkdir) Usage() string { return "Create directories, including missing parents." }
func (Mkdir) Signature() engine.Signature {
	return engine.Signature{
		Name:     "mkdir",
		Category: "filesystem",
		Positional: []engine.PositionalArg{
			{Name: "paths", Desc: "the directories to create"},
		},
	}
}
func (Mkdir) Run(_ *engine.EngineState, stk *engine.Stack, call *engine.Call, _ engine.PipelineData) (engine.PipelineData, error) {
	if len(call.Args) == 0 {
		return nil, argError(call, "‘mkdir’ needs at least one path")
	}
	for _, a := range call.Args {
		if err := os.MkdirAll(resolvePath(stk, a.String()), 0o755); err != nil {
			return nil, &engine.EvalError{Msg: "failed to create directory", Span: call.Head, Inner: err}
		}
	}
	return engine.EmptyData{}, nil
}

type Touch struct{}

func (Touch) Name() string  { return "touch" }
func (Touch) Usage() string { return "Create files, or update their timestamps." }
func (Touch) Signature() engine.Signature {
	return engine.Signature{
		Name:     "touch",
		Category: "filesystem",
		Positional: []engine.PositionalArg{
			{Name: "paths", Desc: "the files to touch"},
		},
	}
}
func (Touch) Run(_ *engine.EngineState, stk *engine.Stack, call *engine.Call, _ engine.PipelineData) (engine.PipelineData, error) {
	if len(call.Args) == 0 {
		return nil, argError(call, "‘touch’ needs at least one path")
	}
	for _, a := range call.Args {
		path := resolvePath(stk, a.String())
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, &engine.EvalError{Msg: "failed to touch ‘" + path + "’", Span: call.Head, Inner: err}
		}
		f.Close()
	}
	return engine.EmptyData{}, nil
}

type Open struct{}

func (Open) Name() string  { return "open" }
func (Open) Usage() string { return "Read a file into the pipeline." }
func (Open) Signature() engine.Signature {
	return engine.Signature{
		Name:     "open",
		Category: "filesystem",
		Positional: []engine.PositionalArg{
			{Name: "path", Desc: "the file to read"},
		},
	}
}
func (Open) Run(_ *engine.EngineState, stk *engine.Stack, call *engine.Call, _ engine.PipelineData) (engine.PipelineData, error) {
	v, ok := call.Arg(0)
	if !ok {
		return nil, argError(call, "‘open’ needs a path")
	}
	path := resolvePath(stk, v.String())
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &engine.EvalError{Msg: "failed to open ‘" + path + "’", Span: call.Head, Inner: err}
	}
	return engine.ValueData{Val: engine.StringValue(string(data), call.Head)}, nil
}

type Save struct{}

func (Save) Name() string  { return "save" }
func (Save) Usage() string { return "Write the pipeline input to a file." }
func (Save) Signature() engine.Signature {
	return engine.Signature{
		Name:     "save",
		Category: "filesystem",
		Positional: []engine.PositionalArg{
			{Name: "path", Desc: "the file to write"},
		},
		Named: []engine.NamedFlag{
			{Long: "append", Desc: "append instead of overwriting"},
		},
	}
}
func (Save) Run(state *engine.EngineState, stk *engine.Stack, call *engine.Call, input engine.PipelineData) (engine.PipelineData, error) {
	v, ok := call.Arg(0)
	if !ok {
		return nil, argError(call, "‘save’ needs a path")
	}
	path := resolvePath(stk, v.String())

	in, err := engine.Collect(input)
	if err != nil {
		return nil, err
	}
	var text string
	if in.Kind == engine.KindString {
		text = in.Str
	} else {
		text = engine.FormatValue(state, in)
	}
	if !strings.HasSuffix(text, "\n") && text != "" {
		text += "\n"
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if call.HasFlag("append") {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, &engine.EvalError{Msg: "failed to save ‘" + path + "’", Span: call.Head, Inner: err}
	}
	defer f.Close()
	if _, err := f.WriteString(text); err != nil {
		return nil, &engine.EvalError{Msg: "failed to save ‘" + path + "’", Span: call.Head, Inner: err}
	}
	return engine.EmptyData{}, nil
}
