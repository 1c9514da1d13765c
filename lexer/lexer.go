package lexer

import (
	"fmt"
	"unicode/utf8"

	"github.com/sophiajt/nu-app/engine"
)

const eof rune = -1

type lexer struct {
	input  string     // The input string to lex
	start  int        // The start of the current token in input
	pos    int        // The pos of the cursor in input
	width  int        // Width of the last rune lexed
	offset int        // Global span offset of input[0]
	Out    chan Token // Token output channel
}

// New builds a lexer over one chunk of source.  offset is the chunk's global
// span offset, normally obtained from StateWorkingSet.AddFile.
func New(input string, offset int) *lexer {
	return &lexer{
		input:  input,
		offset: offset,
		Out:    make(chan Token),
	}
}

func (l *lexer) Run() {
	for state := lexDefault; state != nil; {
		state = state(l)
	}
	close(l.Out)
}

func (l *lexer) span() engine.Span {
	return engine.Span{Start: l.offset + l.start, End: l.offset + l.pos}
}

func (l *lexer) emit(t TokenKind) {
	l.Out <- Token{t, l.input[l.start:l.pos], l.span()}
	l.start = l.pos
}

// emitVal emits a token whose value differs from the raw source slice, such
// as a quoted string with escapes resolved.
func (l *lexer) emitVal(t TokenKind, val string) {
	l.Out <- Token{t, val, l.span()}
	l.start = l.pos
}

func (l *lexer) next() rune {
	var r rune

	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, l.width = utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += l.width
	return r
}

func (l *lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

func (l *lexer) backup() {
	l.pos -= l.width
}

func (l *lexer) errorf(format string, args ...any) lexFn {
	l.Out <- Token{
		Kind: TokError,
		Val:  fmt.Sprintf(format, args...),
		Span: l.span(),
	}
	return nil
}
