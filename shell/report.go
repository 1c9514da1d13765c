package shell

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/sophiajt/nu-app/engine"
)

// SourceLookup resolves spans back to the chunks of source they came from.
// Both *engine.EngineState and *engine.StateWorkingSet satisfy it; parse
// errors must be resolved against the working set because their source is
// never merged.
type SourceLookup interface {
	FileFor(engine.Span) (engine.SourceFile, bool)
}

var errHeader = color.New(color.FgRed, color.Bold)

// ReportError renders err to the standard error.  Errors carrying a known
// span get a snippet of the offending source with the span underlined.
// Terminal VT processing is restored afterwards; whatever failed may have
// left the console without it.
func ReportError(src SourceLookup, err error) {
	defer EnableVTProcessing()

	head := "Error:"
	if _, ok := err.(*engine.ParseError); ok {
		head = "Parse error:"
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", errHeader.Sprint(head), err)

	spanned, ok := err.(engine.Spanned)
	if !ok {
		return
	}
	sp := spanned.ErrorSpan()
	if sp.IsUnknown() {
		return
	}
	if f, ok := src.FileFor(sp); ok {
		printSnippet(f, sp)
	}
}

// printSnippet shows the line containing the span's start, pointing carets
// at the span itself (clipped to that one line).
func printSnippet(f engine.SourceFile, sp engine.Span) {
	local := sp.Start - f.Start
	if local < 0 {
		local = 0
	}
	if local > len(f.Contents) {
		local = len(f.Contents)
	}

	lineStart := bytes.LastIndexByte(f.Contents[:local], '\n') + 1
	lineEnd := bytes.IndexByte(f.Contents[local:], '\n')
	if lineEnd < 0 {
		lineEnd = len(f.Contents)
	} else {
		lineEnd += local
	}
	lineNo := bytes.Count(f.Contents[:lineStart], []byte{'\n'}) + 1
	col := local - lineStart + 1

	width := sp.End - sp.Start
	if width < 1 {
		width = 1
	}
	if local+width > lineEnd {
		width = lineEnd - local
		if width < 1 {
			width = 1
		}
	}

	gutter := fmt.Sprintf("%d", lineNo)
	pad := strings.Repeat(" ", len(gutter))
	fmt.Fprintf(os.Stderr, "%s--> %s:%d:%d\n", pad, f.Name, lineNo, col)
	fmt.Fprintf(os.Stderr, "%s |\n", pad)
	fmt.Fprintf(os.Stderr, "%s | %s\n", gutter, f.Contents[lineStart:lineEnd])
	fmt.Fprintf(os.Stderr, "%s | %s%s\n", pad,
		strings.Repeat(" ", col-1), strings.Repeat("^", width))
}
