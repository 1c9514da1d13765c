package engine

import (
	"strings"
	"testing"
)

type fakeCmd struct{ name string }

func (c fakeCmd) Name() string         { return c.name }
func (c fakeCmd) Usage() string        { return "A test command." }
func (c fakeCmd) Signature() Signature { return Signature{Name: c.name, Category: "test"} }
func (c fakeCmd) Run(*EngineState, *Stack, *Call, PipelineData) (PipelineData, error) {
	return EmptyData{}, nil
}

func mustMerge(t *testing.T, state *EngineState, ws *StateWorkingSet) {
	t.Helper()
	if err := state.MergeDelta(ws.Render()); err != nil {
		t.Fatalf("Expected merge to succeed but got ‘%s’", err)
	}
}

func TestIdsOffsetByBaseCounts(t *testing.T) {
	state := NewEngineState()

	ws := NewWorkingSet(state)
	ws.AddDecl(fakeCmd{"one"})
	ws.AddDecl(fakeCmd{"two"})
	mustMerge(t, state, ws)

	ws = NewWorkingSet(state)
	id := ws.AddDecl(fakeCmd{"three"})
	if id != 2 {
		t.Fatalf("Expected decl id ‘2’ but got ‘%d’", id)
	}
	if got := ws.GetDecl(id).Name(); got != "three" {
		t.Fatalf("Expected decl ‘three’ but got ‘%s’", got)
	}
	if got := ws.GetDecl(0).Name(); got != "one" {
		t.Fatalf("Expected decl ‘one’ but got ‘%s’", got)
	}
	mustMerge(t, state, ws)

	if got := state.GetDecl(id).Name(); got != "three" {
		t.Fatalf("Expected decl ‘three’ after the merge but got ‘%s’", got)
	}
}

func TestLastWriteWinsOnNames(t *testing.T) {
	state := NewEngineState()

	ws := NewWorkingSet(state)
	first := ws.AddDecl(fakeCmd{"dup"})
	second := ws.AddDecl(fakeCmd{"dup"})
	mustMerge(t, state, ws)

	id, ok := state.FindDecl("dup")
	if !ok {
		t.Fatalf("Expected ‘dup’ to resolve")
	}
	if id != second {
		t.Fatalf("Expected ‘dup’ to resolve to %d but got %d", second, id)
	}
	// The shadowed registration stays addressable by id.
	if got := state.GetDecl(first).Name(); got != "dup" {
		t.Fatalf("Expected the shadowed decl to remain, got ‘%s’", got)
	}
	if state.NumDecls() != 2 {
		t.Fatalf("Expected 2 decls but got %d", state.NumDecls())
	}
}

func TestStaleDeltaMergeFault(t *testing.T) {
	state := NewEngineState()

	a := NewWorkingSet(state)
	a.AddDecl(fakeCmd{"a"})
	b := NewWorkingSet(state)
	b.AddDecl(fakeCmd{"b"})

	mustMerge(t, state, a)
	err := state.MergeDelta(b.Render())
	if err == nil {
		t.Fatalf("Expected a merge fault for the stale delta")
	}
	if _, ok := err.(*MergeFault); !ok {
		t.Fatalf("Expected a *MergeFault but got %T", err)
	}
	if state.NumDecls() != 1 {
		t.Fatalf("Expected the failed merge to change nothing, have %d decls", state.NumDecls())
	}
}

func TestRemoveDeclNameKeepsDecl(t *testing.T) {
	state := NewEngineState()

	ws := NewWorkingSet(state)
	id := ws.AddDecl(fakeCmd{"hidden"})
	ws.RemoveDeclName("hidden")

	if _, ok := ws.FindDecl("hidden"); ok {
		t.Fatalf("Expected ‘hidden’ to be unresolvable after removal")
	}
	if got := ws.GetDecl(id).Name(); got != "hidden" {
		t.Fatalf("Expected the decl to stay addressable, got ‘%s’", got)
	}

	mustMerge(t, state, ws)
	if _, ok := state.FindDecl("hidden"); ok {
		t.Fatalf("Expected ‘hidden’ to stay unresolvable after the merge")
	}
}

func TestFileOffsetsAccumulate(t *testing.T) {
	state := NewEngineState()

	ws := NewWorkingSet(state)
	if off := ws.AddFile("one", []byte("abcd")); off != 0 {
		t.Fatalf("Expected the first file to start at 0, got %d", off)
	}
	if off := ws.AddFile("two", []byte("efgh")); off != 4 {
		t.Fatalf("Expected the second file to start at 4, got %d", off)
	}
	mustMerge(t, state, ws)

	ws = NewWorkingSet(state)
	if off := ws.AddFile("three", []byte("x")); off != 8 {
		t.Fatalf("Expected the third file to start at 8, got %d", off)
	}

	f, ok := state.FileFor(Span{Start: 5, End: 6})
	if !ok {
		t.Fatalf("Expected a merged span to resolve to its file")
	}
	if f.Name != "two" {
		t.Fatalf("Expected file ‘two’ but got ‘%s’", f.Name)
	}
	if !strings.Contains(string(f.Contents), "efgh") {
		t.Fatalf("Expected the file contents to survive the merge")
	}
}

func TestParseErrorsAccumulate(t *testing.T) {
	ws := NewWorkingSet(NewEngineState())
	ws.Error(&ParseError{Msg: "first"})
	ws.Error(&ParseError{Msg: "second"})
	if len(ws.ParseErrors) != 2 {
		t.Fatalf("Expected 2 parse errors but got %d", len(ws.ParseErrors))
	}
}
