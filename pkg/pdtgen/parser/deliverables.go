package parser

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/models"
	"github.com/xuri/excelize/v2"
)

// DefaultDeliverablesSheet is the PDT sheet holding the deliverables table.
const DefaultDeliverablesSheet = "Deliverables"

// Canonical deliverables columns.
const (
	ColCategory        = "Category"
	ColTitle           = "Title"
	ColFootnotes       = "Footnotes"
	ColOutputReference = "Output Reference"
	ColValidationLevel = "Validation Level"
	ColDevelopers      = "Developers"
	ColValidators      = "Validators"
	ColOutputStatus    = "Output Status"
	ColValidatedBy     = "Validated by Programmer/Statistician"
	ColProgramName     = "Program Name"
	ColSysparmValue    = "SYSPARM Value"
)

// DeliverablesSchema resolves deliverables headers and their legacy aliases.
var DeliverablesSchema = NewSchema(
	[]string{
		ColCategory, ColOutputType, ColTitle, ColPopulation, ColFootnotes, ColOutputReference,
		ColValidationLevel, ColDevelopers, ColValidators, ColOutputStatus, ColValidatedBy,
		ColProgramName, ColSysparmValue,
	},
	map[string]string{
		"OUTCAT":   ColCategory,
		"OUTTYPE":  ColOutputType,
		"OUTREF":   ColOutputReference,
		"OUTTITLE": ColTitle,
		"OUTPOP":   ColPopulation,
		"OUTFNOTE": ColFootnotes,
		"PGMLEVEL": ColValidationLevel,
		"USERDEV":  ColDevelopers,
		"USERQC":   ColValidators,
		"OUTSTS":   ColOutputStatus,
		"STASCHK":  ColValidatedBy,
		"PGMNAMDV": ColProgramName,
		"OUTSYSP":  ColSysparmValue,
	},
)

// DefaultRowFill is the fill of appended rows when no Output row carries one.
const DefaultRowFill = "DDEBF7"

// Record is one row to write, keyed by canonical column name.
type Record map[string]string

// ListValidation is a drop-down constraint on a column sourced from a list sheet range.
type ListValidation struct {
	Column string `yaml:"column"`
	Source string `yaml:"source"`
}

// RowStyle holds the style id to apply per 1-based column.
type RowStyle struct {
	Columns map[int]int
}

// Deliverables is an opened deliverables sheet with its resolved header.
type Deliverables struct {
	f     *excelize.File
	sheet string
	// HeaderRow is the 1-based header row number.
	HeaderRow int
	// Header maps canonical names to 0-based column indexes.
	Header HeaderMap
	// Width is the number of columns of the header row.
	Width int
}

// OpenDeliverables locates the header row of a deliverables sheet. The header must carry
// the Category column plus at least one other recognised column.
func OpenDeliverables(f *excelize.File, sheet string) (*Deliverables, error) {
	rows, err := readSheet(f, sheet)
	if err != nil {
		return nil, err
	}
	idx, hm, err := DeliverablesSchema.FindHeader(rows, func(hm HeaderMap) bool {
		return hm.Has(ColCategory) && len(hm) >= 2
	})
	if err != nil {
		return nil, errors.Wrapf(&SheetError{Sheet: sheet, Err: err}, "need %s plus one other column in the first %d rows", ColCategory, HeaderScanLimit)
	}
	return &Deliverables{
		f:         f,
		sheet:     sheet,
		HeaderRow: idx + 1,
		Header:    hm,
		Width:     len(rows[idx]),
	}, nil
}

func (d *Deliverables) rows() ([][]string, error) {
	rows, err := d.f.GetRows(d.sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %q", d.sheet)
	}
	return rows, nil
}

// OutputRows returns the Category=Output rows.
func (d *Deliverables) OutputRows() ([]models.Row, error) {
	rows, err := d.rows()
	if err != nil {
		return nil, err
	}
	var out []models.Row
	for _, r := range ExtractRows(rows, d.HeaderRow-1, d.Header) {
		if NormalizeHeader(r.Get(ColCategory)) == models.CategoryOutput {
			out = append(out, r)
		}
	}
	return out, nil
}

// CaptureRowStyle derives the style of appended rows from the first Output row: each
// column keeps its own style while the fill of the first filled cell is applied across the
// row. Without an Output row, or when it has no fill, a solid DefaultRowFill is used.
func (d *Deliverables) CaptureRowStyle() (RowStyle, error) {
	rows, err := d.rows()
	if err != nil {
		return RowStyle{}, err
	}
	base := make(map[int]*excelize.Style)
	var fill *excelize.Fill
	if matches := matchingRows(rows, d.HeaderRow-1, d.Header[ColCategory], models.CategoryOutput); len(matches) > 0 {
		r := matches[0]
		for col := 1; col <= d.Width; col++ {
			sid, err := d.f.GetCellStyle(d.sheet, cellName(col, r))
			if err != nil || sid == 0 {
				continue
			}
			st, err := d.f.GetStyle(sid)
			if err != nil || st == nil {
				continue
			}
			base[col] = st
			if fill == nil && hasFill(st.Fill) {
				f := st.Fill
				fill = &f
			}
		}
	}
	if fill == nil {
		fill = &excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{DefaultRowFill}}
	}

	style := RowStyle{Columns: make(map[int]int, d.Width)}
	for col := 1; col <= d.Width; col++ {
		st := &excelize.Style{}
		if b, ok := base[col]; ok {
			copied := *b
			st = &copied
		}
		st.Fill = *fill
		sid, err := d.f.NewStyle(st)
		if err != nil {
			return RowStyle{}, errors.Wrapf(err, "create style for column %d", col)
		}
		style.Columns[col] = sid
	}
	return style, nil
}

func hasFill(f excelize.Fill) bool {
	for _, c := range f.Color {
		if strings.TrimSpace(c) != "" {
			return true
		}
	}
	return false
}

// DeleteOutputRows removes every Category=Output row, bottom to top so that pending row
// numbers stay valid. It returns the number of rows removed.
func (d *Deliverables) DeleteOutputRows() (int, error) {
	rows, err := d.rows()
	if err != nil {
		return 0, err
	}
	matches := matchingRows(rows, d.HeaderRow-1, d.Header[ColCategory], models.CategoryOutput)
	for i := len(matches) - 1; i >= 0; i-- {
		if err := d.f.RemoveRow(d.sheet, matches[i]); err != nil {
			return len(matches) - 1 - i, errors.Wrapf(err, "remove row %d", matches[i])
		}
	}
	return len(matches), nil
}

// Append writes records after the last non-blank Category cell and styles every header
// column of the new rows. It returns the 1-based first and last row written; last < first
// when records is empty.
func (d *Deliverables) Append(records []Record, style RowStyle) (first, last int, err error) {
	rows, err := d.rows()
	if err != nil {
		return 0, 0, err
	}
	first = lastNonBlankRow(rows, d.HeaderRow-1, d.Header[ColCategory]) + 1
	last = first + len(records) - 1

	for i, rec := range records {
		r := first + i
		for name, value := range rec {
			col := d.Header.Column(name)
			if col == 0 {
				continue
			}
			if err := d.f.SetCellValue(d.sheet, cellName(col, r), value); err != nil {
				return first, last, errors.Wrapf(err, "write %s row %d", name, r)
			}
		}
		for col := 1; col <= d.Width; col++ {
			sid, ok := style.Columns[col]
			if !ok {
				continue
			}
			cell := cellName(col, r)
			if err := d.f.SetCellStyle(d.sheet, cell, cell, sid); err != nil {
				return first, last, errors.Wrapf(err, "style %s", cell)
			}
		}
	}
	return first, last, nil
}

// AddListValidations attaches drop-down lists to rows first..last of each rule's column.
// Rules for columns missing from the header are skipped.
func (d *Deliverables) AddListValidations(listSheet string, rules []ListValidation, first, last int) error {
	if last < first {
		return nil
	}
	for _, rule := range rules {
		col := d.Header.Column(rule.Column)
		if col == 0 {
			continue
		}
		sqref, err := columnRange(col, first, last)
		if err != nil {
			return err
		}
		dv := excelize.NewDataValidation(true)
		dv.Sqref = sqref
		dv.SetSqrefDropList(sheetRef(listSheet, rule.Source))
		if err := d.f.AddDataValidation(d.sheet, dv); err != nil {
			return errors.Wrapf(err, "add validation on %s", rule.Column)
		}
	}
	return nil
}

// SetValue writes one cell by canonical column name. Unknown columns are ignored.
func (d *Deliverables) SetValue(row int, column, value string) error {
	col := d.Header.Column(column)
	if col == 0 {
		return nil
	}
	return d.f.SetCellValue(d.sheet, cellName(col, row), value)
}

// ForceRecalculation makes spreadsheet applications recompute every formula on open.
func ForceRecalculation(f *excelize.File) error {
	props, err := f.GetCalcProps()
	if err != nil {
		return errors.Wrap(err, "read calc properties")
	}
	id := uint(1)
	if props.CalcID != nil {
		id = *props.CalcID + 1
	}
	fullCalc := true
	mode := "auto"
	return f.SetCalcProps(&excelize.CalcPropsOptions{
		CalcID:         &id,
		CalcMode:       &mode,
		FullCalcOnLoad: &fullCalc,
	})
}
