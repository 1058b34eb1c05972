package pdtgen

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/models"
	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/parser"
	"github.com/xuri/excelize/v2"
)

var pdtHeader = []interface{}{
	"Category", "Output Type", "Title", "Population", "Footnotes", "Output Reference",
	"Validation Level", "Developers", "Validators", "Output Status",
	"Validated by Programmer/Statistician", "Program Name", "SYSPARM Value",
}

func writePDT(t *testing.T, dir string, rows ...[]interface{}) string {
	t.Helper()
	return writeWorkbook(t, filepath.Join(dir, "PDT.xlsx"),
		sheet{name: parser.DefaultDeliverablesSheet, rows: append([][]interface{}{{"Study ABC-101"}, pdtHeader}, rows...)},
		sheet{name: DefaultListSheet, rows: [][]interface{}{
			{"Programmers", "", "", "", "Levels", "Status", "Review"},
			{"dev1", "", "", "", "Critical", "Draft", "Not Started"},
		}},
	)
}

func openDeliverables(t *testing.T, path string) (*excelize.File, *parser.Deliverables) {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	d, err := parser.OpenDeliverables(f, parser.DefaultDeliverablesSheet)
	require.NoError(t, err)
	return f, d
}

func categoryColumn(t *testing.T, f *excelize.File) []string {
	t.Helper()
	rows, err := f.GetRows(parser.DefaultDeliverablesSheet)
	require.NoError(t, err)
	var out []string
	for _, r := range rows[2:] {
		if len(r) > 0 {
			out = append(out, r[0])
		}
	}
	return out
}

func TestMergeDeliverables(t *testing.T) {
	dir := t.TempDir()
	tmpl := writeTemplate(t, dir,
		[]interface{}{"14.1.1", "Table", "受试者分布", "Subject Disposition", "Enrolled Set", "脚注", "", "demography"},
		[]interface{}{"16.2.1", "Listing", "受试者入选", "Enrollment", "Enrolled Set", "", "", "demography"},
	)
	pdt := writePDT(t, dir,
		[]interface{}{"Section", "", "Tables"},
		[]interface{}{"Output", "Table", "Old 1", "", "", "14.9.1"},
		[]interface{}{"Output", "Table", "Old 2", "", "", "14.9.2"},
		[]interface{}{"Note", "", "Kept"},
	)
	before := readFile(t, pdt)

	opts := DefaultMergeOptions()
	opts.Selection = sadOnly()
	opts.Defaults.Developer = "dev1"
	opts.Now = fixedNow

	res, err := MergeDeliverables(tmpl, pdt, opts)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Rows)
	assert.Equal(t, 2, res.Removed)
	assert.Equal(t, before, readFile(t, res.Backup))
	assert.Equal(t, []string{"PDT_" + archiveName + ".xlsx"}, archiveEntries(t, dir))

	f, d := openDeliverables(t, pdt)
	assert.Equal(t, []string{"Section", "Note", "Output", "Output"}, categoryColumn(t, f))

	rows, err := d.OutputRows()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	first := rows[0]
	assert.Equal(t, 5, first.R)
	assert.Equal(t, "14.1.1", first.Get(parser.ColOutputReference))
	assert.Equal(t, "受试者分布", first.Get(parser.ColTitle))
	assert.Equal(t, "脚注", first.Get(parser.ColFootnotes))
	assert.Equal(t, "Non-critical", first.Get(parser.ColValidationLevel))
	assert.Equal(t, "dev1", first.Get(parser.ColDevelopers))
	assert.Equal(t, "", first.Get(parser.ColValidators))
	assert.Equal(t, "Not Started", first.Get(parser.ColValidatedBy))
	assert.Equal(t, "Listing", rows[1].Get(parser.ColOutputType))

	dvs, err := f.GetDataValidations(parser.DefaultDeliverablesSheet)
	require.NoError(t, err)
	sqrefs := make([]string, len(dvs))
	for i, dv := range dvs {
		sqrefs[i] = dv.Sqref
	}
	assert.ElementsMatch(t, []string{"H5:H6", "I5:I6", "G5:G6", "J5:J6", "K5:K6"}, sqrefs)

	props, err := f.GetCalcProps()
	require.NoError(t, err)
	require.NotNil(t, props.FullCalcOnLoad)
	assert.True(t, *props.FullCalcOnLoad)
}

func TestMergeFromTOC(t *testing.T) {
	dir := t.TempDir()
	tmpl := writeTemplate(t, dir,
		[]interface{}{"14.1.1", "Table", "受试者分布", "Subject Disposition", "Enrolled Set", "", "", "demography"},
	)
	tocPath := filepath.Join(dir, "TOC.xlsx")
	gen := DefaultGenerateOptions()
	gen.Selection = sadOnly()
	_, err := GenerateTOC(tmpl, tocPath, gen)
	require.NoError(t, err)

	pdt := writePDT(t, dir)
	before := readFile(t, pdt)
	opts := DefaultMergeOptions()
	opts.Now = fixedNow

	res, err := MergeFromTOC(tocPath, pdt, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rows)
	assert.Equal(t, []string{"PDT_" + archiveName + ".xlsx"}, archiveEntries(t, dir))
	assert.Equal(t, before, readFile(t, res.Backup))

	_, d := openDeliverables(t, pdt)
	rows, err := d.OutputRows()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].R)
	assert.Equal(t, "14.1.1", rows[0].Get(parser.ColOutputReference))
	assert.Equal(t, "Enrolled Set", rows[0].Get(parser.ColPopulation))
	assert.Equal(t, models.CategoryOutput, rows[0].Get(parser.ColCategory))
}

func TestMergeFailureLeavesPDTUntouched(t *testing.T) {
	dir := t.TempDir()
	tmpl := writeTemplate(t, dir,
		[]interface{}{"14.1.1", "Table", "受试者分布", "", "", "", "", "demography"},
	)
	pdt := writeWorkbook(t, filepath.Join(dir, "PDT.xlsx"),
		sheet{name: "Summary", rows: [][]interface{}{{"Category", "Title"}}})
	before := readFile(t, pdt)

	opts := DefaultMergeOptions()
	opts.Selection = sadOnly()

	_, err := MergeDeliverables(tmpl, pdt, opts)
	require.ErrorIs(t, err, ErrSheetNotFound)
	var se *StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StageReadingDeliverables, se.Stage)
	assert.Equal(t, parser.DefaultDeliverablesSheet, se.Sheet)

	assert.Equal(t, before, readFile(t, pdt))
	assert.Empty(t, archiveEntries(t, dir))
}
