package engine

// Span is a byte range into the engine's virtual file table.  Offsets are
// global: every chunk of source ever parsed is appended to the file table, so
// a span uniquely identifies its source text for as long as the state lives.
type Span struct {
	Start int
	End   int
}

// UnknownSpan marks values and streams with no source location, such as data
// read from the standard input.
func UnknownSpan() Span {
	return Span{-1, -1}
}

func (s Span) IsUnknown() bool {
	return s.Start < 0
}

// SourceFile is one chunk of evaluated source retained for diagnostics.  The
// chunk owns the global offsets [Start, Start+len(Contents)).
type SourceFile struct {
	Name     string
	Contents []byte
	Start    int
}

func (f SourceFile) contains(s Span) bool {
	return s.Start >= f.Start && s.Start < f.Start+len(f.Contents)
}
