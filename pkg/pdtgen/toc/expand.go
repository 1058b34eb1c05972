package toc

import "github.com/ukaji3/pdtgen-go/pkg/pdtgen/models"

// Expand runs filter, placeholder expansion and reference numbering over template rows.
// sel must already be normalized. The result is deterministic for a given row order.
func Expand(rows []models.TemplateRow, sel Selection) []models.ExpandedRow {
	return ExpandUnits(NewFilter(sel).Units(rows), sel)
}

// ExpandUnits expands filtered units into concrete deliverables with their references.
func ExpandUnits(units []Unit, sel Selection) []models.ExpandedRow {
	single := sel.SingleDesign()
	families := []Family{
		{Token: TokenAEACN, Values: sel.AECategories},
		{Token: TokenAnalyte, Values: sel.Analytes},
	}

	var out []models.ExpandedRow
	for _, u := range units {
		title := NormalizeTokens(u.Row.TitleIn(sel.Language))
		title = DisplayTitle(title, u.Design, single)
		for _, exp := range ExpandPlaceholder(title, families...) {
			out = append(out, models.ExpandedRow{
				OutputType:      u.Row.OutputType,
				Title:           exp.Title,
				Population:      u.Row.Population,
				Footnote:        u.Row.FootnoteIn(sel.Language),
				OutputReference: BuildReference(u.Row.TemplateNumber, exp.Ordinal, u.DesignOrdinal, single),
			})
		}
	}
	return out
}
