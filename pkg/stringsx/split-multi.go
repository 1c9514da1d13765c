// Package stringsx holds string helpers the standard library lacks.
package stringsx

import "strings"

// SplitMulti splits s on every occurrence of any separator in seps.  When
// several separators could match at the same position the one listed first
// wins.  A trailing separator does not produce a trailing empty field.
func SplitMulti(s string, seps []string) []string {
	fields := make([]string, 0, 8)

	start := 0
	for pos := 0; pos < len(s); pos++ {
		n := sepAt(s, pos, seps)
		if n == 0 {
			continue
		}
		fields = append(fields, s[start:pos])
		pos += n - 1
		start = pos + 1
	}
	if start < len(s) {
		fields = append(fields, s[start:])
	}

	return fields
}

// sepAt reports the length of the first separator matching at s[pos:], or 0.
func sepAt(s string, pos int, seps []string) int {
	for _, sep := range seps {
		if strings.HasPrefix(s[pos:], sep) {
			return len(sep)
		}
	}
	return 0
}
