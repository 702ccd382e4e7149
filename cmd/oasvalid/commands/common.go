// Package commands provides CLI command handlers for oasvalid.
package commands

import (
	"os"

	"github.com/calquist/oasvalid/internal/cliutil"
	"github.com/calquist/oasvalid/internal/issues"
	"github.com/calquist/oasvalid/internal/severity"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// printIssues writes issues to stderr. When quiet is set, warning and info
// messages are suppressed and only errors remain.
func printIssues(list []issues.Issue, quiet bool) {
	for _, iss := range list {
		if quiet && (iss.Severity == severity.SeverityInfo || iss.Severity == severity.SeverityWarning) {
			continue
		}
		cliutil.Writef(os.Stderr, "%s\n", iss.String())
	}
}
