package shell

import (
	"fmt"
	"os"

	"github.com/sophiajt/nu-app/engine"
)

// PrintPipelineData renders the final output of an evaluation.  Values are
// formatted per the engine config; the nothing value prints as, well,
// nothing.  External streams are forwarded raw, stderr concurrently with
// stdout so interleaved process output keeps flowing, and the returned code
// is the process's exit code.
func PrintPipelineData(state *engine.EngineState, data engine.PipelineData) (int, error) {
	switch d := data.(type) {
	case nil, engine.EmptyData:
		return 0, nil

	case engine.ValueData:
		if d.Val.Kind == engine.KindNothing {
			return 0, nil
		}
		fmt.Println(engine.FormatValue(state, d.Val))
		return 0, nil

	case engine.ExternalStreamData:
		errDone := make(chan struct{})
		if d.Stderr != nil {
			go func() {
				defer close(errDone)
				d.Stderr.WriteTo(os.Stderr)
			}()
		} else {
			close(errDone)
		}

		var outErr error
		if d.Stdout != nil {
			_, outErr = d.Stdout.WriteTo(os.Stdout)
		}
		<-errDone

		code := 0
		if d.ExitCode != nil {
			code = <-d.ExitCode
		}
		if outErr != nil {
			return code, &engine.EvalError{Msg: "failed writing external output", Span: d.Span, Inner: outErr}
		}
		return code, nil
	}
	return 0, nil
}
