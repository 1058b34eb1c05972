package pdtgen

import (
	"fmt"
	"strings"
)

// Result summarises a finished run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string
	// Output is the written file.
	Output string
	// Backup is the archive copy taken before Output was overwritten, if any.
	Backup string
	// Rows is the number of rows written or filled.
	Rows int
	// Removed is the number of Output rows deleted by a merge.
	Removed int
	// Unmatched is the number of Output rows the matcher left blank.
	Unmatched int
	// Unhandled lists titles whose threshold markers have no rewrite rule.
	Unhandled []string
}

// Summary returns a human-readable report of the run.
func (r *Result) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d rows written", r.Output, r.Rows)
	if r.Removed > 0 {
		fmt.Fprintf(&b, ", %d previous Output rows replaced", r.Removed)
	}
	if r.Unmatched > 0 {
		fmt.Fprintf(&b, ", %d rows without a program match", r.Unmatched)
	}
	if r.Backup != "" {
		fmt.Fprintf(&b, "\nprevious file archived to %s", r.Backup)
	}
	for _, u := range r.Unhandled {
		fmt.Fprintf(&b, "\nunhandled: %s", u)
	}
	return b.String()
}
