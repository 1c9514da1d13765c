package stringsx

import (
	"fmt"
	"testing"
)

func TestSplitMulti(t *testing.T) {
	tests := []struct {
		in   string
		seps []string
		want []string
	}{
		{"foo::bar::baz", []string{"::"}, []string{"foo", "bar", "baz"}},
		{"foo::bar--::baz", []string{"::", "--"}, []string{"foo", "bar", "", "baz"}},
		{"a,b;c", []string{",", ";"}, []string{"a", "b", "c"}},
		{"::foo::", []string{"::"}, []string{"", "foo"}},
		{"plain", []string{"::"}, []string{"plain"}},
	}

	for _, tt := range tests {
		got := SplitMulti(tt.in, tt.seps)
		if fmt.Sprint(got) != fmt.Sprint(tt.want) {
			t.Fatalf("Expected ‘%v’ splitting ‘%s’ but got ‘%v’", tt.want, tt.in, got)
		}
	}
}

func TestSplitMultiSeparatorOrder(t *testing.T) {
	// When several separators match at the same position the first one
	// listed wins.
	xs := SplitMulti("foo:::bar", []string{"::", ":::"})
	if len(xs) != 2 || xs[1] != ":bar" {
		t.Fatalf("Expected [foo :bar] but got ‘%v’", xs)
	}
	ys := SplitMulti("foo:::bar", []string{":::", "::"})
	if len(ys) != 2 || ys[1] != "bar" {
		t.Fatalf("Expected [foo bar] but got ‘%v’", ys)
	}
}
