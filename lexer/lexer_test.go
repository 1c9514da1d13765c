package lexer

import "testing"

func collect(s string) []Token {
	l := New(s, 0)
	go l.Run()

	toks := []Token{}
	for t := range l.Out {
		toks = append(toks, t)
	}
	return toks
}

func kinds(s string) []TokenKind {
	toks := collect(s)
	ks := make([]TokenKind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func assertKinds(t *testing.T, s string, want []TokenKind) {
	t.Helper()
	got := kinds(s)
	if len(got) != len(want) {
		t.Fatalf("Expected %d tokens but got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected token %d of ‘%s’ to be %d but got %d", i, s, want[i], got[i])
		}
	}
}

func TestKinds(t *testing.T) {
	assertKinds(t, "ls | length",
		[]TokenKind{TokWord, TokPipe, TokWord, TokEof})
	assertKinds(t, "let x = 3 + 4",
		[]TokenKind{TokWord, TokWord, TokEquals, TokInt, TokPlus, TokInt, TokEof})
	assertKinds(t, "def f [a, b] { $a }",
		[]TokenKind{TokWord, TokWord, TokLBracket, TokWord, TokComma, TokWord,
			TokRBracket, TokLBrace, TokVarRef, TokRBrace, TokEof})
	assertKinds(t, "sort --reverse",
		[]TokenKind{TokWord, TokFlag, TokEof})
	assertKinds(t, "^grep foo; echo done",
		[]TokenKind{TokCaret, TokWord, TokWord, TokEndStmt, TokWord, TokWord, TokEof})
	assertKinds(t, "(3 * 2) / 1.5",
		[]TokenKind{TokLParen, TokInt, TokStar, TokInt, TokRParen, TokSlash, TokFloat, TokEof})
	assertKinds(t, "echo hi # a comment\nnext",
		[]TokenKind{TokWord, TokWord, TokEndStmt, TokWord, TokEof})
}

func TestWordsKeepPunctuation(t *testing.T) {
	// Operators are only operators as whole words.
	assertKinds(t, "a+b src/main.go -v",
		[]TokenKind{TokWord, TokWord, TokWord, TokEof})

	toks := collect("src/main.go")
	if toks[0].Val != "src/main.go" {
		t.Fatalf("Expected ‘src/main.go’ but got ‘%s’", toks[0].Val)
	}
}

func TestNumbers(t *testing.T) {
	cases := []struct {
		in   string
		kind TokenKind
	}{
		{"42", TokInt},
		{"-13", TokInt},
		{"3.14", TokFloat},
		{"1e3", TokFloat},
		{"4x", TokWord},
	}
	for _, c := range cases {
		toks := collect(c.in)
		if toks[0].Kind != c.kind {
			t.Fatalf("Expected ‘%s’ to lex as %d but got %d", c.in, c.kind, toks[0].Kind)
		}
	}
}

func TestStrings(t *testing.T) {
	toks := collect(`"a\tb" 'no\escapes'`)
	if toks[0].Kind != TokString || toks[0].Val != "a\tb" {
		t.Fatalf("Expected escaped string ‘a\\tb’ but got ‘%s’", toks[0].Val)
	}
	if toks[1].Kind != TokString || toks[1].Val != `no\escapes` {
		t.Fatalf("Expected raw string ‘no\\escapes’ but got ‘%s’", toks[1].Val)
	}
}

func TestVarRef(t *testing.T) {
	toks := collect("$foo_1 + $bar")
	if toks[0].Kind != TokVarRef || toks[0].Val != "foo_1" {
		t.Fatalf("Expected var ref ‘foo_1’ but got ‘%s’", toks[0].Val)
	}
	if toks[2].Kind != TokVarRef || toks[2].Val != "bar" {
		t.Fatalf("Expected var ref ‘bar’ but got ‘%s’", toks[2].Val)
	}
}

func TestLexErrors(t *testing.T) {
	for _, s := range []string{`"unterminated`, `"bad \q escape"`, "'unterminated", "$ alone"} {
		toks := collect(s)
		last := toks[len(toks)-1]
		if last.Kind != TokError {
			t.Fatalf("Expected ‘%s’ to end in a lex error but got %v", s, last)
		}
	}
}

func TestSpans(t *testing.T) {
	toks := collect("ab cd")
	if toks[0].Span.Start != 0 || toks[0].Span.End != 2 {
		t.Fatalf("Expected span 0..2 but got %+v", toks[0].Span)
	}
	if toks[1].Span.Start != 3 || toks[1].Span.End != 5 {
		t.Fatalf("Expected span 3..5 but got %+v", toks[1].Span)
	}

	l := New("ab", 100)
	go l.Run()
	first := <-l.Out
	if first.Span.Start != 100 || first.Span.End != 102 {
		t.Fatalf("Expected the offset to shift spans to 100..102, got %+v", first.Span)
	}
	for range l.Out {
	}
}
