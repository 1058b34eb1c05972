package toc

import (
	"strings"

	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/models"
)

// Unit is one (template row, design type) combination that survived filtering.
type Unit struct {
	Row    models.TemplateRow
	Design models.DesignType
	// DesignOrdinal is the 1-based position of Design in the user's selection.
	DesignOrdinal int
}

// Filter decides which template rows and design types take part in a generation.
type Filter struct {
	categories    map[string]bool
	excludedTerms []string
	ordinals      map[models.DesignType]int
}

// NewFilter builds a filter for a normalized selection.
func NewFilter(sel Selection) *Filter {
	f := &Filter{
		categories: make(map[string]bool),
		ordinals:   make(map[models.DesignType]int, len(sel.DesignTypes)),
	}
	subTypes := make(map[SubType]bool)
	for _, ep := range sel.Endpoints {
		if cat, ok := endpointCategory[ep]; ok {
			f.categories[cat] = true
		}
		if st, ok := endpointSubType[ep]; ok {
			subTypes[st] = true
		}
	}
	// With no sub-type selected there is nothing to exclude against.
	if len(subTypes) > 0 {
		for _, st := range subTypeTerms {
			if !subTypes[st.subType] {
				f.excludedTerms = append(f.excludedTerms, st.terms...)
			}
		}
	}
	for i, dt := range sel.DesignTypes {
		f.ordinals[dt] = i + 1
	}
	return f
}

// Accept applies the category and sub-type rules to a row.
func (f *Filter) Accept(row models.TemplateRow) bool {
	cat := strings.TrimSpace(row.Category)
	if cat == "" {
		return false
	}
	if optInCategories[cat] && !f.categories[cat] {
		return false
	}
	if (cat == CategoryPKConc || cat == CategoryPKParam) && f.mentionsExcludedSubType(row) {
		return false
	}
	return true
}

func (f *Filter) mentionsExcludedSubType(row models.TemplateRow) bool {
	if len(f.excludedTerms) == 0 {
		return false
	}
	text := strings.ToLower(row.TitleIn(models.LangCN) + " " + row.TitleIn(models.LangEN))
	for _, term := range f.excludedTerms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// Units returns the accepted rows crossed with their eligible design types. Design types
// are visited in template column order; ordinals follow the selection order.
func (f *Filter) Units(rows []models.TemplateRow) []Unit {
	var units []Unit
	for _, row := range rows {
		if !f.Accept(row) {
			continue
		}
		for _, dt := range models.DesignTypes {
			ord, ok := f.ordinals[dt]
			if !ok || !row.AppliesTo(dt) {
				continue
			}
			units = append(units, Unit{Row: row, Design: dt, DesignOrdinal: ord})
		}
	}
	return units
}

// WithoutTemplates drops rows whose template number is listed.
func WithoutTemplates(rows []models.TemplateRow, numbers ...string) []models.TemplateRow {
	if len(numbers) == 0 {
		return rows
	}
	drop := make(map[string]bool, len(numbers))
	for _, n := range numbers {
		drop[strings.TrimSpace(n)] = true
	}
	out := make([]models.TemplateRow, 0, len(rows))
	for _, r := range rows {
		if drop[strings.TrimSpace(r.TemplateNumber)] {
			continue
		}
		out = append(out, r)
	}
	return out
}
