package shell

import (
	"bufio"
	"os"

	"github.com/tevino/abool/v2"

	"github.com/sophiajt/nu-app/engine"
)

// StdinInput wraps the process standard input as pipeline data: a lazily-read
// byte stream with a fresh, unset interrupt flag.  Nothing is read until the
// first pipeline stage pulls on it.
func StdinInput() engine.PipelineData {
	return engine.ExternalStreamData{
		Stdout: engine.NewRawStream(bufio.NewReader(os.Stdin), abool.New(), engine.UnknownSpan()),
		Span:   engine.UnknownSpan(),
	}
}
