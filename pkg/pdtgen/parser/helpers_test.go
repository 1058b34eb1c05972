package parser

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// sheetData is the content of one fixture sheet, row by row starting at A1.
type sheetData [][]interface{}

// newWorkbook builds a workbook with the given sheets, saves it into a temp dir and
// reopens it so that reads go through a real file round trip.
func newWorkbook(t *testing.T, sheets map[string]sheetData, order ...string) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			cells := row
			require.NoError(t, f.SetSheetRow(name, cellName(1, r+1), &cells))
		}
	}

	path := filepath.Join(t.TempDir(), "fixture.xlsx")
	require.NoError(t, f.SaveAs(path))
	f2, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { f2.Close() })
	return f2
}

func oneSheet(t *testing.T, name string, data sheetData) *excelize.File {
	t.Helper()
	return newWorkbook(t, map[string]sheetData{name: data}, name)
}
