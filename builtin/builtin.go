// Package builtin holds the command catalog compiled into this build and the
// registry bootstrap that loads it into a fresh engine state.
package builtin

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sophiajt/nu-app/engine"
)

// collectList reduces pipeline input to the list most commands operate on.
// Single values become one-element lists; records count as a list of one.
func collectList(input engine.PipelineData, span engine.Span) ([]engine.Value, error) {
	v, err := engine.Collect(input)
	if err != nil {
		return nil, err
	}
	switch v.Kind {
	case engine.KindList:
		return v.List, nil
	case engine.KindNothing:
		return nil, nil
	default:
		return []engine.Value{v}, nil
	}
}

// collectString reduces pipeline input to a string, erroring on input that
// has no sensible text form.
func collectString(input engine.PipelineData, span engine.Span) (string, error) {
	v, err := engine.Collect(input)
	if err != nil {
		return "", err
	}
	switch v.Kind {
	case engine.KindString:
		return v.Str, nil
	case engine.KindNothing:
		return "", nil
	case engine.KindInt, engine.KindFloat, engine.KindBool:
		return v.String(), nil
	default:
		return "", &engine.EvalError{
			Msg:  fmt.Sprintf("expected text input but got a %s", v.Type()),
			Span: span,
		}
	}
}

func argError(call *engine.Call, format string, args ...any) error {
	return &engine.EvalError{
		Msg:  fmt.Sprintf(format, args...),
		Span: call.Head,
	}
}

// resolvePath makes a path absolute against the scope's working directory.
func resolvePath(stack *engine.Stack, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if pwd, ok := stack.GetEnv("PWD"); ok && pwd != "" {
		return filepath.Join(pwd, path)
	}
	return path
}

// subcommandError is the result of running a bare parent command like ‘str’
// or ‘math’: it lists the registered subcommands instead of doing anything.
func subcommandError(state *engine.EngineState, call *engine.Call, parent string) error {
	var subs []string
	for _, name := range state.DeclNames() {
		if strings.HasPrefix(name, parent+" ") {
			subs = append(subs, name)
		}
	}
	sort.Strings(subs)
	return &engine.EvalError{
		Msg:  fmt.Sprintf("‘%s’ must be run with one of its subcommands: %s", parent, strings.Join(subs, ", ")),
		Span: call.Head,
	}
}
