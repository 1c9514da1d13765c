package lexer

import (
	"strconv"
	"strings"
	"unicode"
)

var escapes = map[rune]rune{
	'\\': '\\',
	'"':  '"',
	'0':  '\000',
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
}

type lexFn func(*lexer) lexFn

// isMeta reports whether r always terminates a bare word.
func isMeta(r rune) bool {
	return strings.ContainsRune("|;()[]{},\"'#", r)
}

func lexDefault(l *lexer) lexFn {
	for {
		switch r := l.next(); {
		case r == eof:
			l.emit(TokEof)
			return nil
		case r == '\n' || r == ';':
			l.emit(TokEndStmt)
		case r == '#':
			return skipComment
		case r == '|':
			l.emit(TokPipe)
		case r == '(':
			l.emit(TokLParen)
		case r == ')':
			l.emit(TokRParen)
		case r == '[':
			l.emit(TokLBracket)
		case r == ']':
			l.emit(TokRBracket)
		case r == '{':
			l.emit(TokLBrace)
		case r == '}':
			l.emit(TokRBrace)
		case r == ',':
			l.emit(TokComma)
		case r == '^':
			l.emit(TokCaret)
		case r == '\'':
			return lexStringSingle
		case r == '"':
			return lexStringDouble
		case r == '$':
			return lexVarRef
		case unicode.IsSpace(r):
			l.start = l.pos
		default:
			l.backup()
			return lexWord
		}
	}
}

func skipComment(l *lexer) lexFn {
	if i := strings.IndexByte(l.input[l.pos:], '\n'); i != -1 {
		l.pos += i
	} else {
		l.pos = len(l.input)
	}
	l.start = l.pos
	return lexDefault
}

// lexWord scans a run of non-meta characters and classifies it on emit.
// Operators are only recognized as whole words, so ‘+’ is an operator while
// ‘a+b’ and ‘src/main.go’ stay single words.
func lexWord(l *lexer) lexFn {
	for {
		r := l.next()
		if r == eof || unicode.IsSpace(r) || isMeta(r) {
			l.backup()
			break
		}
	}
	word := l.input[l.start:l.pos]

	switch word {
	case "=":
		l.emit(TokEquals)
		return lexDefault
	case "+":
		l.emit(TokPlus)
		return lexDefault
	case "-":
		l.emit(TokMinus)
		return lexDefault
	case "*":
		l.emit(TokStar)
		return lexDefault
	case "/":
		l.emit(TokSlash)
		return lexDefault
	}

	if flag, ok := strings.CutPrefix(word, "--"); ok && flag != "" {
		l.emitVal(TokFlag, flag)
		return lexDefault
	}
	if _, err := strconv.ParseInt(word, 10, 64); err == nil {
		l.emit(TokInt)
		return lexDefault
	}
	if _, err := strconv.ParseFloat(word, 64); err == nil && strings.ContainsAny(word, ".eE") {
		l.emit(TokFloat)
		return lexDefault
	}

	l.emit(TokWord)
	return lexDefault
}

func lexVarRef(l *lexer) lexFn {
	rest := l.input[l.pos:]
	n := strings.IndexFunc(rest, func(r rune) bool {
		return !isRefChar(r)
	})
	if n == -1 {
		n = len(rest)
	}
	if n == 0 {
		return l.errorf("expected a variable name after ‘$’")
	}
	l.pos += n
	l.emitVal(TokVarRef, rest[:n])
	return lexDefault
}

func isRefChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func lexStringSingle(l *lexer) lexFn {
	i := strings.IndexByte(l.input[l.pos:], '\'')
	if i == -1 {
		l.pos = len(l.input)
		return l.errorf("unterminated string")
	}
	val := l.input[l.pos : l.pos+i]
	l.pos += i + 1
	l.emitVal(TokString, val)
	return lexDefault
}

func lexStringDouble(l *lexer) lexFn {
	sb := strings.Builder{}
	for {
		switch r := l.next(); r {
		case eof, '\n':
			return l.errorf("unterminated string")
		case '\\':
			esc, ok := escapes[l.next()]
			if !ok {
				return l.errorf("invalid escape sequence ‘\\%s’",
					l.input[l.pos-l.width:l.pos])
			}
			sb.WriteRune(esc)
		case '"':
			l.emitVal(TokString, sb.String())
			return lexDefault
		default:
			sb.WriteRune(r)
		}
	}
}
