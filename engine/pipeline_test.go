package engine

import (
	"io"
	"strings"
	"testing"
	"time"
)

// gatedReader refuses to end before the gate closes, like a process that
// only exits once its stderr has been consumed.
type gatedReader struct {
	gate <-chan struct{}
}

func (g gatedReader) Read([]byte) (int, error) {
	<-g.gate
	return 0, io.EOF
}

func TestCollectReadsStderrConcurrently(t *testing.T) {
	// The stderr pipe blocks its writer until somebody reads, and stdout
	// refuses to EOF until the writer is done.  Reading the two streams one
	// after the other can therefore never finish.
	gate := make(chan struct{})
	pr, pw := io.Pipe()
	go func() {
		pw.Write([]byte("oops"))
		pw.Close()
		close(gate)
	}()

	exit := make(chan int, 1)
	exit <- 1
	data := ExternalStreamData{
		Stdout:   NewRawStream(gatedReader{gate}, nil, UnknownSpan()),
		Stderr:   NewRawStream(pr, nil, UnknownSpan()),
		ExitCode: exit,
		Span:     UnknownSpan(),
	}

	type result struct {
		val Value
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := Collect(data)
		done <- result{v, err}
	}()

	select {
	case r := <-done:
		if r.err == nil || !strings.Contains(r.err.Error(), "oops") {
			t.Fatalf("Expected the stderr text in the error but got ‘%v’", r.err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Expected the collection to finish")
	}
}

func TestCollectZeroExitYieldsStdout(t *testing.T) {
	exit := make(chan int, 1)
	exit <- 0
	data := ExternalStreamData{
		Stdout:   NewRawStream(strings.NewReader("hi\n"), nil, UnknownSpan()),
		ExitCode: exit,
		Span:     UnknownSpan(),
	}
	v, err := Collect(data)
	if err != nil {
		t.Fatalf("Expected the collection to succeed but got ‘%s’", err)
	}
	if v.Str != "hi\n" {
		t.Fatalf("Expected ‘hi\\n’ but got ‘%s’", v.Str)
	}
}
