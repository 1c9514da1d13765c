//go:build !windows

package shell

// EnableVTProcessing is a no-op where terminals speak VT natively.
func EnableVTProcessing() {}
