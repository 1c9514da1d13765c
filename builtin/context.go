package builtin

import (
	"github.com/sophiajt/nu-app/engine"
	"github.com/sophiajt/nu-app/log"
)

// DefaultContext builds the engine state every run starts from: one working
// set over an empty state, the whole catalog added, rendered, and merged.  A
// merge failure here is reported but not fatal; the caller gets whatever was
// registered before the failing point and the process carries on.
func DefaultContext() *engine.EngineState {
	state := engine.NewEngineState()

	ws := engine.NewWorkingSet(state)
	for _, cmd := range catalog() {
		ws.AddDecl(cmd)
	}
	delta := ws.Render()

	if err := state.MergeDelta(delta); err != nil {
		log.Err("failed to create the default context: %s", err)
	}
	return state
}

// catalog enumerates every command compiled into this build.  Order matters
// only under name collision: the underlying store is overwrite-by-name, so a
// later entry shadows an earlier one with the same name.
func catalog() []engine.Command {
	cmds := []engine.Command{
		// Core
		Def{},
		Echo{},
		Exit{},
		Help{},
		Ignore{},
		Let{},
		Module{},
		Return{},
		Use{},
		Version{},

		// Filters
		Append{},
		Columns{},
		First{},
		Get{},
		Last{},
		Length{},
		Lines{},
		Prepend{},
		Reverse{},
		Skip{},
		Sort{},
		Take{},
		Uniq{},

		// Strings
		Split{},
		SplitRow{},
		Str{},
		StrDowncase{},
		StrJoin{},
		StrLength{},
		StrTrim{},
		StrUpcase{},

		// Filesystem
		Cd{},
		Ls{},
		Mkdir{},
		Open{},
		Save{},
		Touch{},

		// Math
		Math{},
		MathAvg{},
		MathMax{},
		MathMin{},
		MathSum{},

		// Conversions
		Into{},
		IntoInt{},
		IntoString{},

		// Formats
		From{},
		FromCbor{},
		FromCsv{},
		FromJson{},
		To{},
		ToCbor{},
		ToCsv{},
		ToJson{},
		ToText{},

		// Generators
		Date{},
		DateNow{},
		Seq{},

		// Hash
		Hash{},
		HashMd5{},
		HashSha256{},
		HashBlake3{},

		// Platform
		Sleep{},

		// Viewers
		Table{},
	}

	cmds = append(cmds, platformCommands()...)
	cmds = append(cmds, featureCommands()...)
	return cmds
}
