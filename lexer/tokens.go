package lexer

import (
	"fmt"

	"github.com/sophiajt/nu-app/engine"
)

type TokenKind int

const (
	// TokError is emitted on a lexing error and ends lexical analysis.
	TokError TokenKind = iota

	TokEndStmt // End of statement, either a newline or semicolon
	TokEof     // End of file

	TokWord   // A bare word: command name, path, glob, identifier
	TokString // A quoted string, quotes and escapes resolved
	TokInt    // An integer literal
	TokFloat  // A float literal
	TokVarRef // A ‘$name’ variable reference; Val holds the name
	TokFlag   // A ‘--name’ flag; Val holds the name

	TokPipe   // The ‘|’ operator
	TokEquals // A lone ‘=’
	TokPlus   // A lone ‘+’
	TokMinus  // A lone ‘-’
	TokStar   // A lone ‘*’
	TokSlash  // A lone ‘/’
	TokCaret  // The ‘^’ external-command marker

	TokLParen
	TokRParen
	TokLBracket
	TokRBracket
	TokLBrace
	TokRBrace
	TokComma
)

type Token struct {
	Kind TokenKind
	Val  string
	Span engine.Span
}

// Maximum length of a token value before truncation in diagnostics
const maxValLen = 20

func (t Token) String() string {
	switch t.Kind {
	case TokError:
		return "error: " + t.Val
	case TokEndStmt:
		return "end of statement"
	case TokEof:
		return "end of input"
	case TokWord, TokInt, TokFloat:
		return truncated(t.Val)
	case TokString:
		return fmt.Sprintf("\"%s\"", truncated(t.Val))
	case TokVarRef:
		return "$" + t.Val
	case TokFlag:
		return "--" + t.Val
	case TokPipe:
		return "|"
	case TokEquals:
		return "="
	case TokPlus:
		return "+"
	case TokMinus:
		return "-"
	case TokStar:
		return "*"
	case TokSlash:
		return "/"
	case TokCaret:
		return "^"
	case TokLParen:
		return "("
	case TokRParen:
		return ")"
	case TokLBracket:
		return "["
	case TokRBracket:
		return "]"
	case TokLBrace:
		return "{"
	case TokRBrace:
		return "}"
	case TokComma:
		return ","
	}
	panic("unreachable")
}

func truncated(s string) string {
	if len(s) > maxValLen {
		return fmt.Sprintf("%.*s…", maxValLen, s)
	}
	return s
}
