// Package parser reads and writes the PDT workbooks with excelize.
package parser

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrSheetNotFound indicates a required sheet is missing from a workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrHeaderNotFound indicates the required header columns were not found.
var ErrHeaderNotFound = errors.New("header not found")

// HeaderScanLimit is the number of leading rows searched for a header row.
const HeaderScanLimit = 100

// HeaderMap maps canonical column names to 0-based column indexes.
type HeaderMap map[string]int

// Has reports whether the canonical column was found.
func (h HeaderMap) Has(name string) bool {
	_, ok := h[name]
	return ok
}

// Column returns the 1-based column number of a canonical column, or 0.
func (h HeaderMap) Column(name string) int {
	idx, ok := h[name]
	if !ok {
		return 0
	}
	return idx + 1
}

// Schema resolves literal header spellings to canonical column names.
type Schema struct {
	lookup map[string]string
}

// NewSchema builds a schema from canonical names and an alias table (alias -> canonical).
// Matching ignores case and surrounding or repeated whitespace.
func NewSchema(canonical []string, aliases map[string]string) Schema {
	s := Schema{lookup: make(map[string]string, len(canonical)+len(aliases))}
	for _, name := range canonical {
		s.lookup[strings.ToLower(NormalizeHeader(name))] = name
	}
	for alias, name := range aliases {
		s.lookup[strings.ToLower(NormalizeHeader(alias))] = name
	}
	return s
}

// Resolve returns the canonical name of a literal header cell.
func (s Schema) Resolve(header string) (string, bool) {
	name, ok := s.lookup[strings.ToLower(NormalizeHeader(header))]
	return name, ok
}

// Map resolves one row of header cells. The first occurrence of a canonical name wins.
func (s Schema) Map(cells []string) HeaderMap {
	hm := make(HeaderMap)
	for i, c := range cells {
		name, ok := s.Resolve(c)
		if !ok || hm.Has(name) {
			continue
		}
		hm[name] = i
	}
	return hm
}

// FindHeader scans the first HeaderScanLimit rows for a header accepted by ok.
// It returns the 0-based row index.
func (s Schema) FindHeader(rows [][]string, ok func(HeaderMap) bool) (int, HeaderMap, error) {
	for i, row := range rows {
		if i >= HeaderScanLimit {
			break
		}
		hm := s.Map(row)
		if len(hm) > 0 && ok(hm) {
			return i, hm, nil
		}
	}
	return -1, nil, ErrHeaderNotFound
}

// NormalizeHeader strips zero-width characters and collapses whitespace.
func NormalizeHeader(h string) string {
	h = strings.NewReplacer("\u200b", "", "\ufeff", "").Replace(h)
	return strings.Join(strings.Fields(h), " ")
}

// requireAll returns an acceptance func needing every listed column.
func requireAll(names ...string) func(HeaderMap) bool {
	return func(hm HeaderMap) bool {
		for _, n := range names {
			if !hm.Has(n) {
				return false
			}
		}
		return true
	}
}
