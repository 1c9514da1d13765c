package engine

// StateWorkingSet is the speculative view opened over an EngineState for the
// duration of one parse.  Lookups see the base state plus everything the
// parse has declared so far; additions land only in the local delta.  The
// base state is never touched, so a failed parse has no observable effect.
//
// Ids handed out by a working set are offset by the base state's counts.
// After a merge they address the same entries in the merged state, which is
// what lets a chunk of source call a command it declared itself.
type StateWorkingSet struct {
	Permanent   *EngineState
	ParseErrors []*ParseError

	delta Delta
}

// Delta is the immutable bundle of declarations produced by rendering a
// working set.  It is a value: ownership transfers to the state on merge.
type Delta struct {
	decls     []Command
	declNames map[string]DeclId
	blocks    []*Block
	modules   []*Module
	modNames  map[string]ModuleId
	files     []SourceFile

	baseDecls   int
	baseBlocks  int
	baseModules int
	baseSpan    int
}

func NewWorkingSet(state *EngineState) *StateWorkingSet {
	return &StateWorkingSet{
		Permanent: state,
		delta: Delta{
			declNames:   make(map[string]DeclId),
			modNames:    make(map[string]ModuleId),
			baseDecls:   len(state.decls),
			baseBlocks:  len(state.blocks),
			baseModules: len(state.modules),
			baseSpan:    state.spanEnd,
		},
	}
}

// AddDecl boxes a command into the working set and makes its name resolvable
// for the rest of the parse.  Registering a name twice is tolerated; the
// later registration wins.
func (ws *StateWorkingSet) AddDecl(cmd Command) DeclId {
	ws.delta.decls = append(ws.delta.decls, cmd)
	id := DeclId(ws.delta.baseDecls + len(ws.delta.decls) - 1)
	ws.delta.declNames[cmd.Name()] = id
	return id
}

// AddDeclAlias makes an already-registered decl resolvable under another
// name, as ‘use’ does for a module's exports.
func (ws *StateWorkingSet) AddDeclAlias(name string, id DeclId) {
	ws.delta.declNames[name] = id
}

// RemoveDeclName drops a name registered by this working set.  The decl
// itself stays in the table so ids already resolved against it remain valid;
// only the visibility is withdrawn.  Scoped parses use this to keep their
// declarations local.
func (ws *StateWorkingSet) RemoveDeclName(name string) {
	delete(ws.delta.declNames, name)
}

func (ws *StateWorkingSet) FindDecl(name string) (DeclId, bool) {
	if id, ok := ws.delta.declNames[name]; ok {
		return id, true
	}
	return ws.Permanent.FindDecl(name)
}

func (ws *StateWorkingSet) GetDecl(id DeclId) Command {
	if int(id) < ws.delta.baseDecls {
		return ws.Permanent.GetDecl(id)
	}
	return ws.delta.decls[int(id)-ws.delta.baseDecls]
}

func (ws *StateWorkingSet) NumDecls() int {
	return ws.delta.baseDecls + len(ws.delta.decls)
}

func (ws *StateWorkingSet) AddBlock(b *Block) BlockId {
	ws.delta.blocks = append(ws.delta.blocks, b)
	return BlockId(ws.delta.baseBlocks + len(ws.delta.blocks) - 1)
}

func (ws *StateWorkingSet) GetBlock(id BlockId) *Block {
	if int(id) < ws.delta.baseBlocks {
		return ws.Permanent.GetBlock(id)
	}
	return ws.delta.blocks[int(id)-ws.delta.baseBlocks]
}

func (ws *StateWorkingSet) AddModule(m *Module) ModuleId {
	ws.delta.modules = append(ws.delta.modules, m)
	id := ModuleId(ws.delta.baseModules + len(ws.delta.modules) - 1)
	ws.delta.modNames[m.Name] = id
	return id
}

func (ws *StateWorkingSet) FindModule(name string) (ModuleId, bool) {
	if id, ok := ws.delta.modNames[name]; ok {
		return id, true
	}
	return ws.Permanent.FindModule(name)
}

func (ws *StateWorkingSet) GetModule(id ModuleId) *Module {
	if int(id) < ws.delta.baseModules {
		return ws.Permanent.GetModule(id)
	}
	return ws.delta.modules[int(id)-ws.delta.baseModules]
}

// AddFile registers a chunk of source for diagnostics and returns the global
// byte offset its spans start at.
func (ws *StateWorkingSet) AddFile(name string, contents []byte) int {
	start := ws.delta.baseSpan
	for _, f := range ws.delta.files {
		start = f.Start + len(f.Contents)
	}
	ws.delta.files = append(ws.delta.files, SourceFile{
		Name:     name,
		Contents: contents,
		Start:    start,
	})
	return start
}

// FileFor maps a span to its source chunk, checking the in-progress files
// before the merged ones.
func (ws *StateWorkingSet) FileFor(sp Span) (SourceFile, bool) {
	if sp.IsUnknown() {
		return SourceFile{}, false
	}
	for _, f := range ws.delta.files {
		if f.contains(sp) {
			return f, true
		}
	}
	return ws.Permanent.FileFor(sp)
}

// Error records a parse error.  Parsing carries on so that one bad statement
// does not hide the rest, but a non-empty error list always discards the
// delta.
func (ws *StateWorkingSet) Error(e *ParseError) {
	ws.ParseErrors = append(ws.ParseErrors, e)
}

// Render finalizes the working set into a Delta.  Nothing the parse declared
// is visible to other evaluations until the delta is merged.
func (ws *StateWorkingSet) Render() Delta {
	return ws.delta
}
