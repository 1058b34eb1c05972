package parser

import "golang.org/x/text/width"

// Column width bounds, in character units, for generated sheets.
const (
	MinColumnWidth = 8
	MaxColumnWidth = 55
	// columnPadding is added to the widest cell.
	columnPadding = 2
)

// DisplayWidth estimates the rendered width of s. East-Asian wide and fullwidth runes
// count as 2, everything else as 1.
func DisplayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

// ColumnWidth returns the width fitting the widest value, clamped to
// [MinColumnWidth, MaxColumnWidth].
func ColumnWidth(values []string) float64 {
	w := 0
	for _, v := range values {
		if dw := DisplayWidth(v); dw > w {
			w = dw
		}
	}
	w += columnPadding
	if w < MinColumnWidth {
		w = MinColumnWidth
	}
	if w > MaxColumnWidth {
		w = MaxColumnWidth
	}
	return float64(w)
}
