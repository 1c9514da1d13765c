package vm

import (
	"fmt"
	"os"

	"github.com/sophiajt/nu-app/engine"
)

func evalStatement(state *engine.EngineState, stack *engine.Stack, stmt engine.Statement, input engine.PipelineData) (engine.PipelineData, error) {
	switch s := stmt.(type) {
	case engine.LetStmt:
		v, err := evalExprToValue(state, stack, s.Value)
		if err != nil {
			return nil, err
		}
		stack.AddVar(s.Name, v)
		return engine.EmptyData{}, nil

	case engine.ReturnStmt:
		val := engine.Nothing(s.Span)
		if s.Value != nil {
			v, err := evalExprToValue(state, stack, s.Value)
			if err != nil {
				return nil, err
			}
			val = v
		}
		return nil, &engine.ReturnSignal{Val: val, Span: s.Span}

	case engine.PipelineStmt:
		data := input
		for _, el := range s.Elements {
			var err error
			data, err = evalExpr(state, stack, el, data)
			if err != nil {
				return nil, err
			}
		}
		return data, nil
	}
	panic("unreachable")
}

func evalExpr(state *engine.EngineState, stack *engine.Stack, expr engine.Expr, input engine.PipelineData) (engine.PipelineData, error) {
	switch e := expr.(type) {
	case engine.IntLit:
		return engine.ValueData{Val: engine.IntValue(e.Val, e.Span)}, nil
	case engine.FloatLit:
		return engine.ValueData{Val: engine.FloatValue(e.Val, e.Span)}, nil
	case engine.BoolLit:
		return engine.ValueData{Val: engine.BoolValue(e.Val, e.Span)}, nil
	case engine.StringLit:
		return engine.ValueData{Val: engine.StringValue(e.Val, e.Span)}, nil

	case engine.ListLit:
		items := make([]engine.Value, 0, len(e.Items))
		for _, it := range e.Items {
			v, err := evalExprToValue(state, stack, it)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return engine.ValueData{Val: engine.ListValue(items, e.Span)}, nil

	case engine.VarRef:
		v, ok := stack.GetVar(e.Name)
		if !ok {
			return nil, &engine.EvalError{
				Msg:  fmt.Sprintf("variable ‘%s’ not found", e.Name),
				Span: e.Span,
			}
		}
		return engine.ValueData{Val: v}, nil

	case engine.BinaryOp:
		v, err := evalBinary(state, stack, e)
		if err != nil {
			return nil, err
		}
		return engine.ValueData{Val: v}, nil

	case engine.SubExpr:
		block := state.GetBlock(e.Block)
		data, err := EvalBlock(state, stack, block, engine.EmptyData{})
		if err != nil {
			return nil, err
		}
		v, err := engine.Collect(data)
		if err != nil {
			return nil, err
		}
		return engine.ValueData{Val: v}, nil

	case engine.CallExpr:
		return evalCall(state, stack, e, input)

	case engine.ExternalCall:
		return runExternal(state, stack, e, input)
	}
	panic("unreachable")
}

func evalExprToValue(state *engine.EngineState, stack *engine.Stack, expr engine.Expr) (engine.Value, error) {
	data, err := evalExpr(state, stack, expr, engine.EmptyData{})
	if err != nil {
		return engine.Value{}, err
	}
	return engine.Collect(data)
}

func evalCall(state *engine.EngineState, stack *engine.Stack, call engine.CallExpr, input engine.PipelineData) (engine.PipelineData, error) {
	decl := state.GetDecl(call.Decl)

	args := make([]engine.Value, 0, len(call.Args))
	for _, a := range call.Args {
		v, err := evalExprToValue(state, stack, a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	var named map[string]engine.Value
	if len(call.Named) > 0 {
		named = make(map[string]engine.Value, len(call.Named))
		for name, a := range call.Named {
			v, err := evalExprToValue(state, stack, a)
			if err != nil {
				return nil, err
			}
			named[name] = v
		}
	}

	if custom, ok := decl.(*engine.CustomCommand); ok {
		return evalCustom(state, stack, custom, args, call.Head, input)
	}

	return decl.Run(state, stack, &engine.Call{
		Head:  call.Head,
		Args:  args,
		Named: named,
	}, input)
}

// evalCustom runs a ‘def’ed command: parameters bind on a child scope and a
// ‘return’ inside the body stops at this boundary.
func evalCustom(state *engine.EngineState, stack *engine.Stack, cmd *engine.CustomCommand, args []engine.Value, head engine.Span, input engine.PipelineData) (engine.PipelineData, error) {
	if len(args) > len(cmd.Params) {
		return nil, &engine.EvalError{
			Msg:  fmt.Sprintf("‘%s’ takes %d arguments but got %d", cmd.Cmd, len(cmd.Params), len(args)),
			Span: head,
		}
	}

	child := stack.Child()
	for i, p := range cmd.Params {
		if i < len(args) {
			child.AddVar(p, args[i])
		} else {
			child.AddVar(p, engine.Nothing(head))
		}
	}

	block := state.GetBlock(cmd.Block)
	out, err := evalBlock(state, child, block, input)
	if rs, ok := err.(*engine.ReturnSignal); ok {
		return engine.ValueData{Val: rs.Val}, nil
	}
	return out, err
}

func evalBinary(state *engine.EngineState, stack *engine.Stack, e engine.BinaryOp) (engine.Value, error) {
	lhs, err := evalExprToValue(state, stack, e.Lhs)
	if err != nil {
		return engine.Value{}, err
	}
	rhs, err := evalExprToValue(state, stack, e.Rhs)
	if err != nil {
		return engine.Value{}, err
	}

	if lhs.Kind == engine.KindInt && rhs.Kind == engine.KindInt {
		switch e.Op {
		case engine.OpAdd:
			return engine.IntValue(lhs.Int+rhs.Int, e.Span), nil
		case engine.OpSub:
			return engine.IntValue(lhs.Int-rhs.Int, e.Span), nil
		case engine.OpMul:
			return engine.IntValue(lhs.Int*rhs.Int, e.Span), nil
		case engine.OpDiv:
			if rhs.Int == 0 {
				return engine.Value{}, &engine.EvalError{Msg: "division by zero", Span: e.Span}
			}
			return engine.IntValue(lhs.Int/rhs.Int, e.Span), nil
		}
	}

	if lf, ok := lhs.AsFloat(); ok {
		if rf, ok := rhs.AsFloat(); ok {
			switch e.Op {
			case engine.OpAdd:
				return engine.FloatValue(lf+rf, e.Span), nil
			case engine.OpSub:
				return engine.FloatValue(lf-rf, e.Span), nil
			case engine.OpMul:
				return engine.FloatValue(lf*rf, e.Span), nil
			case engine.OpDiv:
				if rf == 0 {
					return engine.Value{}, &engine.EvalError{Msg: "division by zero", Span: e.Span}
				}
				return engine.FloatValue(lf/rf, e.Span), nil
			}
		}
	}

	if e.Op == engine.OpAdd {
		if lhs.Kind == engine.KindString && rhs.Kind == engine.KindString {
			return engine.StringValue(lhs.Str+rhs.Str, e.Span), nil
		}
		if lhs.Kind == engine.KindList && rhs.Kind == engine.KindList {
			xs := append(append([]engine.Value{}, lhs.List...), rhs.List...)
			return engine.ListValue(xs, e.Span), nil
		}
	}

	return engine.Value{}, &engine.EvalError{
		Msg:  fmt.Sprintf("unsupported operands: %s and %s", lhs.Type(), rhs.Type()),
		Span: e.Span,
	}
}

// drain disposes of an intermediate statement's result.  External output
// still reaches the terminal; plain values are discarded.  Stderr is read
// concurrently with stdout: a child filling its stderr pipe must not block
// the stdout read from ever seeing EOF.
func drain(data engine.PipelineData) error {
	ext, ok := data.(engine.ExternalStreamData)
	if !ok {
		return nil
	}

	errDone := make(chan struct{})
	if ext.Stderr != nil {
		go func() {
			defer close(errDone)
			ext.Stderr.WriteTo(os.Stderr)
		}()
	} else {
		close(errDone)
	}

	var outErr error
	if ext.Stdout != nil {
		_, outErr = ext.Stdout.WriteTo(os.Stdout)
	}
	<-errDone

	if ext.ExitCode != nil {
		<-ext.ExitCode
	}
	if outErr != nil {
		return &engine.EvalError{Msg: "failed draining external stream", Span: ext.Span, Inner: outErr}
	}
	return nil
}
