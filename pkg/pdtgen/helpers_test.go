package pdtgen

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/models"
	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/parser"
	"github.com/xuri/excelize/v2"
)

var fixedNow = func() time.Time { return time.Date(2026, 3, 14, 9, 26, 53, 0, time.Local) }

const archiveName = "20260314092653"

type sheet struct {
	name string
	rows [][]interface{}
}

func writeWorkbook(t *testing.T, path string, sheets ...sheet) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, s := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", s.name))
		} else {
			_, err := f.NewSheet(s.name)
			require.NoError(t, err)
		}
		for r, row := range s.rows {
			cells := row
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(s.name, cell, &cells))
		}
	}
	require.NoError(t, f.SaveAs(path))
	return path
}

var templateHeader = []interface{}{
	"Template#", "Output Type", "Title_CN", "Title_EN", "Population",
	"Footnotes_CN", "Footnotes_EN", "Category_CN", "SAD", "FE", "MAD", "BE", "MB",
}

func writeTemplate(t *testing.T, dir string, rows ...[]interface{}) string {
	t.Helper()
	return writeWorkbook(t, filepath.Join(dir, "TOC_template.xlsx"),
		sheet{name: parser.DefaultTemplateSheet, rows: append([][]interface{}{templateHeader}, rows...)})
}

func readTOC(t *testing.T, path string) []models.ExpandedRow {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := parser.ReadTOC(f, parser.DefaultTOCSheet)
	require.NoError(t, err)
	return rows
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return b
}

func archiveEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(dir, "99_archive"))
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names
}
