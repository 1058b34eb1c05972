package parser

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/models"
	"github.com/xuri/excelize/v2"
)

// Canonical template columns.
const (
	ColTemplateNumber = "Template#"
	ColOutputType     = "Output Type"
	ColTitleCN        = "Title_CN"
	ColTitleEN        = "Title_EN"
	ColPopulation     = "Population"
	ColFootnotesCN    = "Footnotes_CN"
	ColFootnotesEN    = "Footnotes_EN"
	ColCategoryCN     = "Category_CN"
)

// DefaultTemplateSheet is the template sheet name.
const DefaultTemplateSheet = "PH1"

// TemplateSchema resolves TOC template headers.
var TemplateSchema = NewSchema(
	append([]string{
		ColTemplateNumber, ColOutputType, ColTitleCN, ColTitleEN, ColPopulation,
		ColFootnotesCN, ColFootnotesEN, ColCategoryCN,
	}, designColumns()...),
	map[string]string{
		"Footnote_CN": ColFootnotesCN,
		"Footnote_EN": ColFootnotesEN,
	},
)

func designColumns() []string {
	cols := make([]string, len(models.DesignTypes))
	for i, dt := range models.DesignTypes {
		cols[i] = string(dt)
	}
	return cols
}

// ReadTemplate reads the template rows of a sheet in sheet order.
func ReadTemplate(f *excelize.File, sheet string) ([]models.TemplateRow, error) {
	rows, err := readSheet(f, sheet)
	if err != nil {
		return nil, err
	}
	headerIdx, hm, err := TemplateSchema.FindHeader(rows, func(hm HeaderMap) bool {
		return hm.Has(ColCategoryCN) && (hm.Has(ColTitleCN) || hm.Has(ColTitleEN))
	})
	if err != nil {
		return nil, errors.Wrapf(&SheetError{Sheet: sheet, Err: err}, "need %s and a title column", ColCategoryCN)
	}

	var out []models.TemplateRow
	for _, r := range ExtractRows(rows, headerIdx, hm) {
		out = append(out, toTemplateRow(r))
	}
	return out, nil
}

func toTemplateRow(r models.Row) models.TemplateRow {
	t := models.TemplateRow{
		TemplateNumber: strings.TrimSpace(r.Get(ColTemplateNumber)),
		OutputType:     models.ParseOutputType(r.Get(ColOutputType)),
		Title: map[models.Language]string{
			models.LangCN: r.Get(ColTitleCN),
			models.LangEN: r.Get(ColTitleEN),
		},
		Population: r.Get(ColPopulation),
		Footnote: map[models.Language]string{
			models.LangCN: r.Get(ColFootnotesCN),
			models.LangEN: r.Get(ColFootnotesEN),
		},
		Category: strings.TrimSpace(r.Get(ColCategoryCN)),
	}
	for _, dt := range models.DesignTypes {
		if v := r.Get(string(dt)); v != "" {
			if t.DesignFlags == nil {
				t.DesignFlags = make(map[models.DesignType]string)
			}
			t.DesignFlags[dt] = v
		}
	}
	return t
}
