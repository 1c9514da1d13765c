// Package vm executes compiled blocks against an engine state and a stack.
// The two entry points differ only in how they treat ‘return’ at the top
// level: EvalBlockWithEarlyReturn lets it escape the block with a value, as
// top-level scripts expect, while EvalBlock treats it as an error, for
// isolated sub-evaluations.
package vm

import (
	"github.com/sophiajt/nu-app/engine"
)

func EvalBlock(state *engine.EngineState, stack *engine.Stack, block *engine.Block, input engine.PipelineData) (engine.PipelineData, error) {
	out, err := evalBlock(state, stack, block, input)
	if rs, ok := err.(*engine.ReturnSignal); ok {
		return nil, &engine.EvalError{
			Msg:  rs.Error(),
			Span: rs.Span,
		}
	}
	return out, err
}

func EvalBlockWithEarlyReturn(state *engine.EngineState, stack *engine.Stack, block *engine.Block, input engine.PipelineData) (engine.PipelineData, error) {
	out, err := evalBlock(state, stack, block, input)
	if rs, ok := err.(*engine.ReturnSignal); ok {
		return engine.ValueData{Val: rs.Val}, nil
	}
	return out, err
}

// evalBlock runs the statements in order.  The block input feeds the first
// statement; every statement's result except the last is drained away.  An
// empty block passes its input through untouched.
func evalBlock(state *engine.EngineState, stack *engine.Stack, block *engine.Block, input engine.PipelineData) (engine.PipelineData, error) {
	if len(block.Stmts) == 0 {
		return input, nil
	}

	var out engine.PipelineData = engine.EmptyData{}
	for i, stmt := range block.Stmts {
		in := engine.PipelineData(engine.EmptyData{})
		if i == 0 {
			in = input
		}
		data, err := evalStatement(state, stack, stmt, in)
		if err != nil {
			return nil, err
		}
		if i < len(block.Stmts)-1 {
			if err := drain(data); err != nil {
				return nil, err
			}
		} else {
			out = data
		}
	}
	return out, nil
}
