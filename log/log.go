// Package log prints program-level diagnostics that carry no source span.
// Parse and evaluation errors go through the richer snippet reporting
// instead.
package log

import (
	"fmt"
	"os"
)

// Err writes a formatted diagnostic to the standard error, prefixed with the
// program name, in the manner of warnx(3).
func Err(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "nu-app: "+format+"\n", args...)
}
