//go:build windows

package shell

import (
	"os"

	"golang.org/x/sys/windows"
)

// EnableVTProcessing switches the console into VT escape handling so colored
// diagnostics render.  Failure is tolerated; output degrades to plain text.
func EnableVTProcessing() {
	for _, f := range []*os.File{os.Stdout, os.Stderr} {
		h := windows.Handle(f.Fd())
		var mode uint32
		if windows.GetConsoleMode(h, &mode) == nil {
			windows.SetConsoleMode(h, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING)
		}
	}
}
