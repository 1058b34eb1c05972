package parser

import (
	"github.com/pkg/errors"
	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/models"
	"github.com/xuri/excelize/v2"
)

// DefaultTOCSheet is the sheet of a generated TOC artifact.
const DefaultTOCSheet = "TOC"

// TOC artifact columns, in file order.
const (
	ColOutType  = "OUTTYPE"
	ColOutRef   = "OUTREF"
	ColOutTitle = "OUTTITLE"
	ColOutPop   = "OUTPOP"
	ColOutNote  = "OUTNOTE"
)

// TOCColumns is the fixed column order of a TOC artifact.
var TOCColumns = []string{ColOutType, ColOutRef, ColOutTitle, ColOutPop, ColOutNote}

var tocSchema = NewSchema(TOCColumns, nil)

// WriteTOC writes rows to a new TOC sheet named sheet, replacing the default sheet of f,
// and sizes each column to its content.
func WriteTOC(f *excelize.File, sheet string, rows []models.ExpandedRow) error {
	first := f.GetSheetName(0)
	if first != sheet {
		if err := f.SetSheetName(first, sheet); err != nil {
			return errors.Wrapf(err, "rename sheet %q", first)
		}
	}

	columns := make([][]string, len(TOCColumns))
	for i, name := range TOCColumns {
		columns[i] = []string{name}
	}
	header := make([]interface{}, len(TOCColumns))
	for i, name := range TOCColumns {
		header[i] = name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return errors.Wrap(err, "write TOC header")
	}

	for i, r := range rows {
		values := []string{string(r.OutputType), r.OutputReference, r.Title, r.Population, r.Footnote}
		cells := make([]interface{}, len(values))
		for j, v := range values {
			cells[j] = v
			columns[j] = append(columns[j], v)
		}
		if err := f.SetSheetRow(sheet, cellName(1, i+2), &cells); err != nil {
			return errors.Wrapf(err, "write TOC row %d", i+2)
		}
	}

	for i, values := range columns {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, ColumnWidth(values)); err != nil {
			return errors.Wrapf(err, "size column %s", col)
		}
	}
	return nil
}

// ReadTOC reads a TOC artifact sheet back into expanded rows.
func ReadTOC(f *excelize.File, sheet string) ([]models.ExpandedRow, error) {
	rows, err := readSheet(f, sheet)
	if err != nil {
		return nil, err
	}
	headerIdx, hm, err := tocSchema.FindHeader(rows, requireAll(ColOutRef, ColOutTitle))
	if err != nil {
		return nil, &SheetError{Sheet: sheet, Err: err}
	}

	var out []models.ExpandedRow
	for _, r := range ExtractRows(rows, headerIdx, hm) {
		out = append(out, models.ExpandedRow{
			OutputType:      models.ParseOutputType(r.Get(ColOutType)),
			OutputReference: r.Get(ColOutRef),
			Title:           r.Get(ColOutTitle),
			Population:      r.Get(ColOutPop),
			Footnote:        r.Get(ColOutNote),
		})
	}
	return out, nil
}
