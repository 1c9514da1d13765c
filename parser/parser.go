// Package parser turns one chunk of source into an executable block.  It is
// coupled to registration on purpose: ‘def’, ‘module’, and ‘use’ take effect
// while parsing, into the working set, so a chunk can declare a command and
// call it a few tokens later.
package parser

import (
	"github.com/sophiajt/nu-app/engine"
	"github.com/sophiajt/nu-app/lexer"
)

type parser struct {
	toks   <-chan lexer.Token
	cache  *lexer.Token
	ws     *engine.StateWorkingSet
	prefix string   // module name prefix for decls registered inside a module
	names  []string // names registered by this parse, for scoped parses
}

// Parse lexes and parses source, tagged with fname for diagnostics,
// registering any declarations it discovers into ws.  Errors accumulate on
// ws.ParseErrors; callers must treat a non-empty error list as fatal to the
// chunk and discard the working set.  With scoped set, declarations are
// visible during the parse but withdrawn from the rendered delta.
func Parse(ws *engine.StateWorkingSet, fname string, source []byte, scoped bool) *engine.Block {
	offset := ws.AddFile(fname, source)

	l := lexer.New(string(source), offset)
	go l.Run()

	p := parser{toks: l.Out, ws: ws}
	block := p.parseBlockBody(lexer.TokEof)

	if scoped {
		for _, name := range p.names {
			ws.RemoveDeclName(name)
		}
	}
	return block
}

func (p *parser) next() lexer.Token {
	var t lexer.Token
	if p.cache != nil {
		t, p.cache = *p.cache, nil
	} else {
		var ok bool
		t, ok = <-p.toks
		if !ok {
			t = lexer.Token{Kind: lexer.TokEof}
		}
	}
	return t
}

func (p *parser) peek() lexer.Token {
	if p.cache == nil {
		t := p.next()
		p.cache = &t
	}
	return *p.cache
}

func (p *parser) errorf(span engine.Span, format string, args ...any) {
	p.ws.Error(&engine.ParseError{
		Msg:  sprintf(format, args...),
		Span: span,
	})
}

// sync skips tokens until the next statement boundary so that parsing can
// resume after an error.
func (p *parser) sync() {
	for {
		switch p.peek().Kind {
		case lexer.TokEndStmt:
			p.next()
			return
		case lexer.TokEof, lexer.TokError:
			return
		}
		p.next()
	}
}
