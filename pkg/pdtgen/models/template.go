package models

import "strings"

// TemplateRow is one row of the TOC template sheet describing a possible deliverable.
type TemplateRow struct {
	// TemplateNumber is the dotted template number, possibly empty.
	TemplateNumber string `json:"template_number"`
	// OutputType is Table, Listing or Figure.
	OutputType OutputType `json:"output_type"`
	// Title holds the localized title, which may contain one placeholder token.
	Title map[Language]string `json:"title"`
	// Population is the analysis population.
	Population string `json:"population"`
	// Footnote holds the localized footnote.
	Footnote map[Language]string `json:"footnote"`
	// Category drives inclusion and exclusion (Category_CN).
	Category string `json:"category"`
	// DesignFlags holds the non-empty design-type cells of the row. A key is present
	// only when the cell had content.
	DesignFlags map[DesignType]string `json:"design_flags,omitempty"`
}

// HasDesignColumns reports whether any design-type cell of the row has content.
func (t TemplateRow) HasDesignColumns() bool {
	return len(t.DesignFlags) > 0
}

// AppliesTo reports whether the row is eligible for the given design type.
func (t TemplateRow) AppliesTo(dt DesignType) bool {
	if !t.HasDesignColumns() {
		return true
	}
	return strings.TrimSpace(t.DesignFlags[dt]) != ""
}

// TitleIn returns the title in lang.
func (t TemplateRow) TitleIn(lang Language) string {
	return t.Title[lang]
}

// FootnoteIn returns the footnote in lang.
func (t TemplateRow) FootnoteIn(lang Language) string {
	return t.Footnote[lang]
}
