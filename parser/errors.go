package parser

import (
	"fmt"

	"github.com/sophiajt/nu-app/engine"
	"github.com/sophiajt/nu-app/lexer"
)

func sprintf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

// expect consumes the next token and reports an error when it is not of the
// wanted kind.  The token is returned either way so spans stay usable.
func (p *parser) expect(kind lexer.TokenKind, what string) (lexer.Token, bool) {
	t := p.next()
	if t.Kind != kind {
		p.errorf(t.Span, "expected %s but got ‘%s’", what, t)
		return t, false
	}
	return t, true
}

func spanOver(a, b engine.Span) engine.Span {
	if a.IsUnknown() {
		return b
	}
	if b.IsUnknown() {
		return a
	}
	return engine.Span{Start: a.Start, End: b.End}
}
