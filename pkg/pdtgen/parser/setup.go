package parser

import (
	"strings"

	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/models"
	"github.com/xuri/excelize/v2"
)

// MacroVariablesSheet is the setup sheet listing study macro variables.
const MacroVariablesSheet = "Macro Variables"

// ReadMacroVariable returns the column C value of the first row whose column B equals
// name (case-insensitive). found is false when the sheet or the row is missing.
func ReadMacroVariable(f *excelize.File, name string) (value string, found bool, err error) {
	rows, err := optionalSheet(f, MacroVariablesSheet)
	if err != nil {
		return "", false, err
	}
	for _, row := range rows {
		if strings.EqualFold(cellAt(row, 1), name) {
			return cellAt(row, 2), true, nil
		}
	}
	return "", false, nil
}

// ReadLanguage reads the LNG macro variable of a setup workbook. A workbook without it
// selects Chinese.
func ReadLanguage(f *excelize.File) (models.Language, error) {
	v, _, err := ReadMacroVariable(f, "LNG")
	if err != nil {
		return models.LangCN, err
	}
	return models.ParseLanguage(v), nil
}
