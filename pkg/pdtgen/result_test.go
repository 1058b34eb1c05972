package pdtgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultSummary(t *testing.T) {
	tests := []struct {
		name     string
		res      Result
		expected string
	}{
		{
			name:     "plain",
			res:      Result{Output: "TOC.xlsx", Rows: 3},
			expected: "TOC.xlsx: 3 rows written",
		},
		{
			name: "merge with backup",
			res: Result{
				Output: "PDT.xlsx", Rows: 2, Removed: 5, Unmatched: 1,
				Backup:    "99_archive/PDT_20260314092653.xlsx",
				Unhandled: []string{"AE 发生率>=20%: incidence threshold"},
			},
			expected: "PDT.xlsx: 2 rows written, 5 previous Output rows replaced, 1 rows without a program match\n" +
				"previous file archived to 99_archive/PDT_20260314092653.xlsx\n" +
				"unhandled: AE 发生率>=20%: incidence threshold",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.res.Summary())
		})
	}
}
