package engine

import "fmt"

type (
	DeclId   int
	BlockId  int
	ModuleId int
	FileId   int
)

// Module is a named group of declarations.  Its commands are addressed as
// ‘module decl’ in the decl name table; the module itself only records which
// decls it exports so ‘use’ can re-expose them under their short names.
type Module struct {
	Name  string
	Decls map[string]DeclId
}

// EngineState is the persistent knowledge base of a run: every command,
// block, module, and evaluated source chunk accumulated since startup.  It
// grows monotonically; entries are only ever appended by MergeDelta and are
// never removed.  The state assumes a single evaluator — concurrent merges
// must be serialized by the caller.
type EngineState struct {
	decls     []Command
	declNames map[string]DeclId
	blocks    []*Block
	modules   []*Module
	modNames  map[string]ModuleId
	files     []SourceFile
	spanEnd   int
	Config    Config
}

func NewEngineState() *EngineState {
	return &EngineState{
		declNames: make(map[string]DeclId, 512),
		modNames:  make(map[string]ModuleId),
		Config:    DefaultConfig(),
	}
}

// FindDecl resolves a command name.  Later registrations shadow earlier ones
// with the same name: the name table is overwrite-by-name while the decl
// table keeps every registration.
func (s *EngineState) FindDecl(name string) (DeclId, bool) {
	id, ok := s.declNames[name]
	return id, ok
}

func (s *EngineState) GetDecl(id DeclId) Command {
	return s.decls[id]
}

func (s *EngineState) NumDecls() int {
	return len(s.decls)
}

// DeclNames returns the set of currently resolvable command names.
func (s *EngineState) DeclNames() []string {
	names := make([]string, 0, len(s.declNames))
	for name := range s.declNames {
		names = append(names, name)
	}
	return names
}

func (s *EngineState) GetBlock(id BlockId) *Block {
	return s.blocks[id]
}

func (s *EngineState) NumBlocks() int {
	return len(s.blocks)
}

func (s *EngineState) FindModule(name string) (ModuleId, bool) {
	id, ok := s.modNames[name]
	return id, ok
}

func (s *EngineState) GetModule(id ModuleId) *Module {
	return s.modules[id]
}

// FileFor maps a span back to the source chunk containing it.
func (s *EngineState) FileFor(sp Span) (SourceFile, bool) {
	if sp.IsUnknown() {
		return SourceFile{}, false
	}
	for _, f := range s.files {
		if f.contains(sp) {
			return f, true
		}
	}
	return SourceFile{}, false
}

// MergeDelta commits everything a finished parse discovered.  The delta takes
// effect atomically: either every entry is appended or, on a base mismatch,
// none are.  A mismatch means the delta was rendered against a different
// snapshot of this state, which is an internal fault rather than a user
// error.
func (s *EngineState) MergeDelta(d Delta) error {
	if d.baseDecls != len(s.decls) || d.baseBlocks != len(s.blocks) ||
		d.baseModules != len(s.modules) || d.baseSpan != s.spanEnd {
		return &MergeFault{Msg: fmt.Sprintf(
			"delta rendered against a stale snapshot (base %d/%d/%d, state %d/%d/%d)",
			d.baseDecls, d.baseBlocks, d.baseModules,
			len(s.decls), len(s.blocks), len(s.modules))}
	}

	s.decls = append(s.decls, d.decls...)
	for name, id := range d.declNames {
		s.declNames[name] = id
	}
	s.blocks = append(s.blocks, d.blocks...)
	s.modules = append(s.modules, d.modules...)
	for name, id := range d.modNames {
		s.modNames[name] = id
	}
	for _, f := range d.files {
		s.files = append(s.files, f)
		s.spanEnd = f.Start + len(f.Contents)
	}
	return nil
}
