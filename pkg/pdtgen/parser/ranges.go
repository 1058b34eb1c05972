package parser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// columnRange returns an A1 range covering rows start..end of a 1-based column.
func columnRange(col, start, end int) (string, error) {
	first, err := excelize.CoordinatesToCellName(col, start)
	if err != nil {
		return "", err
	}
	last, err := excelize.CoordinatesToCellName(col, end)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%s", first, last), nil
}

// cellName is CoordinatesToCellName for coordinates already known to be valid.
func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// quoteSheet quotes a sheet name for use in a formula reference.
func quoteSheet(name string) string {
	plain := name != ""
	for _, r := range name {
		if !(r == '_' || r == '.' || r >= '0' && r <= '9' || r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z') {
			plain = false
			break
		}
	}
	if plain {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// sheetRef returns a sheet-qualified reference such as 'List Values'!$A$2:$A$200.
func sheetRef(sheet, ref string) string {
	return quoteSheet(sheet) + "!" + strings.TrimPrefix(ref, "=")
}
