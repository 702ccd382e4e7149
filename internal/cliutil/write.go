// Package cliutil holds small helpers for command-line output.
package cliutil

import (
	"fmt"
	"io"
	"os"
)

// Writef writes formatted output to w. CLI reporting must not abort the
// command on a failed write, so errors are noted on stderr and dropped.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}
