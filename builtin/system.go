package builtin

import (
	"time"

	"github.com/sophiajt/nu-app/engine"
)

type Sleep struct{}

func (Sleep) Name() string  { return "sleep" }
func (Sleep) Usage() string { return "Pause for the given duration." }
func (Sleep) Signature() engine.Signature {
	return engine.Signature{
		Name:     "sleep",
		Category: "platform",
		Positional: []engine.PositionalArg{
			{Name: "duration", Desc: "how long to sleep, e.g. ‘500ms’ or ‘2s’"},
		},
	}
}
func (Sleep) Run(_ *engine.EngineState, _ *engine.Stack, call *engine.Call, _ engine.PipelineData) (engine.PipelineData, error) {
	v, ok := call.Arg(0)
	if !ok {
		return nil, argError(call, "‘sleep’ needs a duration")
	}
	var d time.Duration
	if n, isInt := v.AsInt(); isInt && v.Kind != engine.KindString {
		d = time.Duration(n) * time.Second
	} else {
		var err error
		d, err = time.ParseDuration(v.String())
		if err != nil {
			return nil, argError(call, "cannot parse ‘%s’ as a duration", v.String())
		}
	}
	if d < 0 {
		return nil, argError(call, "the duration must not be negative")
	}
	time.Sleep(d)
	return engine.EmptyData{}, nil
}
