package parser

import (
	"strconv"
	"strings"

	"github.com/sophiajt/nu-app/engine"
	"github.com/sophiajt/nu-app/lexer"
)

func (p *parser) parseBlockBody(end lexer.TokenKind) *engine.Block {
	block := &engine.Block{Span: engine.UnknownSpan()}

	for {
		switch t := p.peek(); t.Kind {
		case lexer.TokEndStmt:
			p.next()
		case end, lexer.TokEof:
			return block
		case lexer.TokError:
			p.next()
			p.errorf(t.Span, "%s", t.Val)
			return block
		default:
			if stmt := p.parseStatement(); stmt != nil {
				block.Stmts = append(block.Stmts, stmt)
				block.Span = spanOver(block.Span, stmt.StmtSpan())
			}
		}
	}
}

// parseStatement returns nil for declarations, which register into the
// working set and leave nothing to execute.
func (p *parser) parseStatement() engine.Statement {
	switch t := p.peek(); {
	case t.Kind == lexer.TokWord && t.Val == "let":
		return p.parseLet()
	case t.Kind == lexer.TokWord && t.Val == "def":
		p.parseDef()
		return nil
	case t.Kind == lexer.TokWord && t.Val == "module":
		p.parseModule()
		return nil
	case t.Kind == lexer.TokWord && t.Val == "use":
		p.parseUse()
		return nil
	case t.Kind == lexer.TokWord && t.Val == "return":
		return p.parseReturn()
	default:
		return p.parsePipeline()
	}
}

func (p *parser) endOfStatement() {
	switch t := p.peek(); t.Kind {
	case lexer.TokEndStmt, lexer.TokEof, lexer.TokRBrace, lexer.TokRParen:
	default:
		p.errorf(t.Span, "expected end of statement but got ‘%s’", t)
		p.sync()
	}
}

func (p *parser) parseLet() engine.Statement {
	kw := p.next() // ‘let’

	name, ok := p.expect(lexer.TokWord, "a variable name")
	if !ok {
		p.sync()
		return nil
	}
	if _, ok := p.expect(lexer.TokEquals, "‘=’"); !ok {
		p.sync()
		return nil
	}
	val := p.parseExpr()
	if val == nil {
		return nil
	}
	p.endOfStatement()

	return engine.LetStmt{
		Name:  name.Val,
		Value: val,
		Span:  spanOver(kw.Span, val.ExprSpan()),
	}
}

func (p *parser) parseReturn() engine.Statement {
	kw := p.next() // ‘return’

	switch p.peek().Kind {
	case lexer.TokEndStmt, lexer.TokEof, lexer.TokRBrace:
		return engine.ReturnStmt{Span: kw.Span}
	}
	val := p.parseExpr()
	if val == nil {
		return nil
	}
	p.endOfStatement()
	return engine.ReturnStmt{Value: val, Span: spanOver(kw.Span, val.ExprSpan())}
}

// parseDef registers a custom command into the working set.  The command is
// resolvable for the rest of this parse, which is what lets a chunk declare
// and call in one go.
func (p *parser) parseDef() {
	p.next() // ‘def’

	var name string
	switch t := p.next(); t.Kind {
	case lexer.TokWord, lexer.TokString:
		name = t.Val
	default:
		p.errorf(t.Span, "expected a command name but got ‘%s’", t)
		p.sync()
		return
	}

	if _, ok := p.expect(lexer.TokLBracket, "a parameter list"); !ok {
		p.sync()
		return
	}
	var params []string
	for {
		t := p.next()
		if t.Kind == lexer.TokRBracket {
			break
		}
		if t.Kind == lexer.TokComma {
			continue
		}
		if t.Kind != lexer.TokWord {
			p.errorf(t.Span, "expected a parameter name but got ‘%s’", t)
			p.sync()
			return
		}
		params = append(params, t.Val)
	}

	if _, ok := p.expect(lexer.TokLBrace, "a block"); !ok {
		p.sync()
		return
	}
	body := p.parseBlockBody(lexer.TokRBrace)
	p.expect(lexer.TokRBrace, "‘}’")

	if p.prefix != "" {
		name = p.prefix + " " + name
	}
	id := p.ws.AddBlock(body)
	p.ws.AddDecl(&engine.CustomCommand{Cmd: name, Params: params, Block: id})
	p.names = append(p.names, name)
}

// parseModule parses ‘module name { def … }’.  Exported commands register as
// ‘name def’ and the module records them so ‘use’ can alias the short names.
func (p *parser) parseModule() {
	p.next() // ‘module’

	name, ok := p.expect(lexer.TokWord, "a module name")
	if !ok {
		p.sync()
		return
	}
	if _, ok := p.expect(lexer.TokLBrace, "a module body"); !ok {
		p.sync()
		return
	}

	outer := p.prefix
	p.prefix = name.Val
	mod := &engine.Module{Name: name.Val, Decls: make(map[string]engine.DeclId)}

	for {
		t := p.peek()
		if t.Kind == lexer.TokRBrace || t.Kind == lexer.TokEof {
			break
		}
		if t.Kind == lexer.TokEndStmt {
			p.next()
			continue
		}
		if t.Kind == lexer.TokWord && t.Val == "def" {
			before := len(p.names)
			p.parseDef()
			for _, full := range p.names[before:] {
				short := strings.TrimPrefix(full, name.Val+" ")
				if id, ok := p.ws.FindDecl(full); ok {
					mod.Decls[short] = id
				}
			}
			continue
		}
		p.errorf(t.Span, "only definitions are allowed inside a module, got ‘%s’", t)
		p.sync()
	}
	p.expect(lexer.TokRBrace, "‘}’")
	p.prefix = outer

	p.ws.AddModule(mod)
}

// parseUse re-exposes a module's commands under their short names.
func (p *parser) parseUse() {
	p.next() // ‘use’

	name, ok := p.expect(lexer.TokWord, "a module name")
	if !ok {
		p.sync()
		return
	}
	id, ok := p.ws.FindModule(name.Val)
	if !ok {
		p.errorf(name.Span, "module ‘%s’ not found", name.Val)
		p.sync()
		return
	}
	mod := p.ws.GetModule(id)
	for short, decl := range mod.Decls {
		p.ws.AddDeclAlias(short, decl)
		p.names = append(p.names, short)
	}
	p.endOfStatement()
}

func (p *parser) parsePipeline() engine.Statement {
	first := p.parseExpr()
	if first == nil {
		return nil
	}

	elements := []engine.Expr{first}
	for p.peek().Kind == lexer.TokPipe {
		p.next()
		for p.peek().Kind == lexer.TokEndStmt {
			p.next() // A pipe may continue on the next line
		}
		next := p.parseCallExpr()
		if next == nil {
			return nil
		}
		elements = append(elements, next)
	}
	p.endOfStatement()

	return engine.PipelineStmt{
		Elements: elements,
		Span:     spanOver(first.ExprSpan(), elements[len(elements)-1].ExprSpan()),
	}
}

// parseCallExpr parses a pipeline element after a ‘|’, which must be a call.
func (p *parser) parseCallExpr() engine.Expr {
	switch t := p.peek(); t.Kind {
	case lexer.TokWord:
		return p.parseCall()
	case lexer.TokCaret:
		return p.parseExternal()
	default:
		p.errorf(t.Span, "expected a command after ‘|’ but got ‘%s’", t)
		p.sync()
		return nil
	}
}

func (p *parser) parseExpr() engine.Expr {
	lhs := p.parseMulDiv()
	if lhs == nil {
		return nil
	}
	for {
		var op engine.OpKind
		switch p.peek().Kind {
		case lexer.TokPlus:
			op = engine.OpAdd
		case lexer.TokMinus:
			op = engine.OpSub
		default:
			return lhs
		}
		p.next()
		rhs := p.parseMulDiv()
		if rhs == nil {
			return nil
		}
		lhs = engine.BinaryOp{
			Op: op, Lhs: lhs, Rhs: rhs,
			Span: spanOver(lhs.ExprSpan(), rhs.ExprSpan()),
		}
	}
}

func (p *parser) parseMulDiv() engine.Expr {
	lhs := p.parseAtom()
	if lhs == nil {
		return nil
	}
	for {
		var op engine.OpKind
		switch p.peek().Kind {
		case lexer.TokStar:
			op = engine.OpMul
		case lexer.TokSlash:
			op = engine.OpDiv
		default:
			return lhs
		}
		p.next()
		rhs := p.parseAtom()
		if rhs == nil {
			return nil
		}
		lhs = engine.BinaryOp{
			Op: op, Lhs: lhs, Rhs: rhs,
			Span: spanOver(lhs.ExprSpan(), rhs.ExprSpan()),
		}
	}
}

func (p *parser) parseAtom() engine.Expr {
	switch t := p.peek(); t.Kind {
	case lexer.TokInt:
		p.next()
		n, _ := strconv.ParseInt(t.Val, 10, 64)
		return engine.IntLit{Val: n, Span: t.Span}
	case lexer.TokFloat:
		p.next()
		f, _ := strconv.ParseFloat(t.Val, 64)
		return engine.FloatLit{Val: f, Span: t.Span}
	case lexer.TokString:
		p.next()
		return engine.StringLit{Val: t.Val, Span: t.Span}
	case lexer.TokVarRef:
		p.next()
		return engine.VarRef{Name: t.Val, Span: t.Span}
	case lexer.TokLBracket:
		return p.parseList()
	case lexer.TokLParen:
		return p.parseSubExpr()
	case lexer.TokCaret:
		return p.parseExternal()
	case lexer.TokWord:
		if t.Val == "true" || t.Val == "false" {
			p.next()
			return engine.BoolLit{Val: t.Val == "true", Span: t.Span}
		}
		return p.parseCall()
	default:
		p.next()
		p.errorf(t.Span, "expected an expression but got ‘%s’", t)
		p.sync()
		return nil
	}
}

func (p *parser) parseList() engine.Expr {
	open := p.next() // ‘[’
	var items []engine.Expr
	for {
		switch t := p.peek(); t.Kind {
		case lexer.TokRBracket:
			close := p.next()
			return engine.ListLit{Items: items, Span: spanOver(open.Span, close.Span)}
		case lexer.TokComma, lexer.TokEndStmt:
			p.next()
		case lexer.TokEof, lexer.TokError:
			p.errorf(t.Span, "unclosed list literal")
			return nil
		case lexer.TokWord:
			// Bare words in lists are strings, not calls
			p.next()
			items = append(items, engine.StringLit{Val: t.Val, Span: t.Span})
		default:
			item := p.parseAtom()
			if item == nil {
				return nil
			}
			items = append(items, item)
		}
	}
}

func (p *parser) parseSubExpr() engine.Expr {
	open := p.next() // ‘(’
	body := p.parseBlockBody(lexer.TokRParen)
	close, ok := p.expect(lexer.TokRParen, "‘)’")
	if !ok {
		p.sync()
		return nil
	}
	id := p.ws.AddBlock(body)
	return engine.SubExpr{Block: id, Span: spanOver(open.Span, close.Span)}
}

// parseCall parses a command invocation.  Multi-word command names resolve
// greedily against the working set, so ‘str upcase’ finds the subcommand
// even though ‘str’ is also registered.  An unresolvable head becomes an
// external call, unless it looks like the start of an arithmetic expression,
// in which case it is read as a variable reference.
func (p *parser) parseCall() engine.Expr {
	head := p.next()
	name := head.Val
	span := head.Span

	for p.peek().Kind == lexer.TokWord {
		longer := name + " " + p.peek().Val
		if _, ok := p.ws.FindDecl(longer); !ok {
			break
		}
		t := p.next()
		name, span = longer, spanOver(span, t.Span)
	}

	id, ok := p.ws.FindDecl(name)
	if !ok {
		switch p.peek().Kind {
		case lexer.TokPlus, lexer.TokMinus, lexer.TokStar, lexer.TokSlash:
			return engine.VarRef{Name: name, Span: span}
		}
		return p.parseExternalArgs(name, span)
	}

	call := engine.CallExpr{Decl: id, Head: span, Span: span}
	for {
		switch t := p.peek(); t.Kind {
		case lexer.TokFlag:
			p.next()
			if call.Named == nil {
				call.Named = make(map[string]engine.Expr)
			}
			call.Named[t.Val] = engine.BoolLit{Val: true, Span: t.Span}
			call.Span = spanOver(call.Span, t.Span)
		case lexer.TokWord:
			p.next()
			var arg engine.Expr
			if t.Val == "true" || t.Val == "false" {
				arg = engine.BoolLit{Val: t.Val == "true", Span: t.Span}
			} else {
				arg = engine.StringLit{Val: t.Val, Span: t.Span}
			}
			call.Args = append(call.Args, arg)
			call.Span = spanOver(call.Span, t.Span)
		case lexer.TokInt, lexer.TokFloat, lexer.TokString, lexer.TokVarRef,
			lexer.TokLBracket, lexer.TokLParen, lexer.TokCaret:
			arg := p.parseAtom()
			if arg == nil {
				return nil
			}
			call.Args = append(call.Args, arg)
			call.Span = spanOver(call.Span, arg.ExprSpan())
		default:
			return call
		}
	}
}

func (p *parser) parseExternal() engine.Expr {
	caret := p.next() // ‘^’
	name, ok := p.expect(lexer.TokWord, "an external command name")
	if !ok {
		p.sync()
		return nil
	}
	ext := p.parseExternalArgs(name.Val, spanOver(caret.Span, name.Span))
	return ext
}

func (p *parser) parseExternalArgs(name string, span engine.Span) engine.Expr {
	ext := engine.ExternalCall{Name: name, Span: span}
	for {
		switch t := p.peek(); t.Kind {
		case lexer.TokWord, lexer.TokInt, lexer.TokFloat:
			p.next()
			ext.Args = append(ext.Args, engine.StringLit{Val: t.Val, Span: t.Span})
		case lexer.TokString:
			p.next()
			ext.Args = append(ext.Args, engine.StringLit{Val: t.Val, Span: t.Span})
		case lexer.TokFlag:
			p.next()
			ext.Args = append(ext.Args, engine.StringLit{Val: "--" + t.Val, Span: t.Span})
		case lexer.TokVarRef:
			p.next()
			ext.Args = append(ext.Args, engine.VarRef{Name: t.Val, Span: t.Span})
		case lexer.TokLParen:
			arg := p.parseSubExpr()
			if arg == nil {
				return nil
			}
			ext.Args = append(ext.Args, arg)
		case lexer.TokMinus, lexer.TokPlus, lexer.TokStar, lexer.TokSlash, lexer.TokEquals:
			p.next()
			ext.Args = append(ext.Args, engine.StringLit{Val: t.String(), Span: t.Span})
		default:
			return ext
		}
	}
}
