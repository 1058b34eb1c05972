package models

// CategoryOutput marks the auto-managed rows of the deliverables sheet.
const CategoryOutput = "Output"

// ExpandedRow is one concrete deliverable produced by expanding a template row.
type ExpandedRow struct {
	OutputType      OutputType `json:"output_type"`
	Title           string     `json:"title"`
	Population      string     `json:"population"`
	Footnote        string     `json:"footnote"`
	OutputReference string     `json:"output_reference"`
}
