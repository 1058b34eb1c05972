package parser

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// Code-list and eCRF metadata columns.
const (
	ColCodeName    = "CODE_NAME"
	ColCodeLabel   = "CODE_LABEL"
	ColCodeOrder   = "CODE_ORDER"
	ColEDCData     = "EDC_DATA"
	ColEDCVariable = "EDC_VARIABLE"
)

var codeListSchema = NewSchema(
	[]string{ColCodeName, ColCodeLabel, ColCodeOrder},
	map[string]string{
		"CODE_NAME_CHN": ColCodeName,
		"CODE_ORDER_R":  ColCodeOrder,
	},
)

var ecrfSchema = NewSchema([]string{ColEDCData, ColEDCVariable}, nil)

// CodeListQuery selects the labels of one code list.
type CodeListQuery struct {
	// Name is compared case-insensitively with the code name column.
	Name string `yaml:"name"`
	// Contains matches code names containing Name instead of equal to it.
	Contains bool `yaml:"contains"`
	// Exclude lists labels to drop, compared case-insensitively.
	Exclude []string `yaml:"exclude"`
}

func (q CodeListQuery) matches(name string) bool {
	name = strings.ToUpper(strings.TrimSpace(name))
	want := strings.ToUpper(strings.TrimSpace(q.Name))
	if q.Contains {
		return want != "" && strings.Contains(name, want)
	}
	return name == want
}

func (q CodeListQuery) excluded(label string) bool {
	label = strings.ToUpper(label)
	for _, e := range q.Exclude {
		if strings.ToUpper(strings.TrimSpace(e)) == label {
			return true
		}
	}
	return false
}

// firstSheet returns sheet, or the first sheet of f when sheet is empty.
func firstSheet(f *excelize.File, sheet string) string {
	if sheet != "" {
		return sheet
	}
	return f.GetSheetName(0)
}

// ReadCodeLabels returns the labels selected by q, ordered by the numeric order column.
// Rows with an order value that is not a number keep their sheet order after the
// numbered ones. An empty sheet name reads the first sheet.
func ReadCodeLabels(f *excelize.File, sheet string, q CodeListQuery) ([]string, error) {
	sheet = firstSheet(f, sheet)
	rows, err := readSheet(f, sheet)
	if err != nil {
		return nil, err
	}
	headerIdx, hm, err := codeListSchema.FindHeader(rows, requireAll(ColCodeName, ColCodeLabel))
	if err != nil {
		return nil, errors.Wrapf(&SheetError{Sheet: sheet, Err: err}, "need %s and %s", ColCodeName, ColCodeLabel)
	}

	type entry struct {
		label   string
		order   float64
		ordered bool
	}
	var entries []entry
	for _, r := range ExtractRows(rows, headerIdx, hm) {
		if !q.matches(r.Get(ColCodeName)) {
			continue
		}
		label := strings.TrimSpace(r.Get(ColCodeLabel))
		if q.excluded(label) {
			continue
		}
		e := entry{label: label}
		if v, err := strconv.ParseFloat(strings.TrimSpace(r.Get(ColCodeOrder)), 64); err == nil {
			e.order, e.ordered = v, true
		}
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.ordered != b.ordered {
			return a.ordered
		}
		return a.ordered && a.order < b.order
	})

	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = e.label
	}
	return labels, nil
}

// ECRFHasVariable reports whether the eCRF metadata sheet defines variable in dataset.
// Both values are compared case-insensitively. An empty sheet name reads the first sheet.
func ECRFHasVariable(f *excelize.File, sheet, dataset, variable string) (bool, error) {
	sheet = firstSheet(f, sheet)
	rows, err := readSheet(f, sheet)
	if err != nil {
		return false, err
	}
	headerIdx, hm, err := ecrfSchema.FindHeader(rows, requireAll(ColEDCData, ColEDCVariable))
	if err != nil {
		return false, errors.Wrapf(&SheetError{Sheet: sheet, Err: err}, "need %s and %s", ColEDCData, ColEDCVariable)
	}
	for _, r := range ExtractRows(rows, headerIdx, hm) {
		if strings.EqualFold(strings.TrimSpace(r.Get(ColEDCData)), dataset) &&
			strings.EqualFold(strings.TrimSpace(r.Get(ColEDCVariable)), variable) {
			return true, nil
		}
	}
	return false, nil
}
