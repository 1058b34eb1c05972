package parser

import (
	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/models"
	"github.com/xuri/excelize/v2"
)

// ExtractRows reads the data rows below a header row into canonical row mappings.
// Rows without any value in a mapped column are skipped.
func ExtractRows(rows [][]string, headerIdx int, hm HeaderMap) []models.Row {
	var result []models.Row
	for rowIdx := headerIdx + 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		values := make(map[string]string, len(hm))
		hasData := false
		for name, colIdx := range hm {
			v := ""
			if colIdx < len(row) {
				v = row[colIdx]
			}
			if v != "" {
				hasData = true
			}
			values[name] = v
		}
		if hasData {
			result = append(result, models.Row{R: rowIdx + 1, Values: values})
		}
	}
	return result
}

// readSheet returns all rows of a sheet, failing with ErrSheetNotFound when it is absent.
func readSheet(f *excelize.File, sheet string) ([][]string, error) {
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, &SheetError{Sheet: sheet, Err: ErrSheetNotFound}
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &SheetError{Sheet: sheet, Err: err}
	}
	return rows, nil
}

// SheetError ties a failure to the sheet it happened on.
type SheetError struct {
	Sheet string
	Err   error
}

func (e *SheetError) Error() string {
	return "sheet " + quoteSheet(e.Sheet) + ": " + e.Err.Error()
}

func (e *SheetError) Unwrap() error {
	return e.Err
}
