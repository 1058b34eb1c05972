package parser

import (
	"strings"

	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/models"
	"github.com/xuri/excelize/v2"
)

// OverlaySheet holds the global overlay rules of a program-name workbook.
const OverlaySheet = "over"

// ShellSheets maps program-name workbook sheets to document sections.
var ShellSheets = []struct {
	Sheet   string
	Section string
}{
	{"s14_1", "14.1"},
	{"s14_2", "14.2"},
	{"s14_3_1", "14.3.1"},
	{"s14_3_2", "14.3.2"},
	{"s14_3_4", "14.3.4"},
	{"s14_3_5", "14.3.5"},
	{"s14_4", "14.4"},
	{"s16_1_9", "16.1"},
	{"s16_2", "16.2"},
}

// shellHeader finds columns of a shell sheet by case-insensitive name; an underscore in
// the wanted name also matches a space.
type shellHeader map[string]int

func newShellHeader(cells []string) shellHeader {
	h := make(shellHeader, len(cells))
	for i, c := range cells {
		key := strings.ToLower(NormalizeHeader(c))
		if _, ok := h[key]; !ok {
			h[key] = i
		}
	}
	return h
}

// find returns the column of the first candidate present, or -1.
func (h shellHeader) find(candidates ...string) int {
	for _, c := range candidates {
		key := strings.ToLower(c)
		if i, ok := h[key]; ok {
			return i
		}
		if i, ok := h[strings.ReplaceAll(key, "_", " ")]; ok {
			return i
		}
	}
	return -1
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// LoadShells reads the overlay and section sheets of a program-name workbook. Missing or
// empty sheets are skipped. Title columns in lang are preferred over the other language.
func LoadShells(f *excelize.File, lang models.Language) (models.ProgramShells, error) {
	shells := models.ProgramShells{Sections: make(map[string][]models.ShellRow)}

	overlays, err := loadOverlays(f, lang)
	if err != nil {
		return shells, err
	}
	shells.Overlays = overlays

	for _, s := range ShellSheets {
		rows, err := optionalSheet(f, s.Sheet)
		if err != nil {
			return shells, err
		}
		if len(rows) < 2 {
			continue
		}
		h := newShellHeader(rows[0])
		titles := [3]int{
			h.find(titleColumn("title_shell", lang), "title_shell_cn", "title_shell_en"),
			h.find(titleColumn("title2_shell", lang), "title2_shell_cn", "title2_shell_en"),
			h.find(titleColumn("title3_shell", lang), "title3_shell_cn", "title3_shell_en"),
		}
		pgms := [3]int{h.find("pgm_shell"), h.find("pgm2_shell"), h.find("pgm3_shell")}
		params := [3]int{h.find("sysparm_shell"), h.find("sysparm2_shell"), h.find("sysparm3_shell")}
		if titles[0] < 0 && pgms[0] < 0 {
			continue
		}

		for _, row := range rows[1:] {
			var sr models.ShellRow
			blank := true
			for i := range sr.Levels {
				sr.Levels[i] = models.ShellLevel{
					Title:   cellAt(row, titles[i]),
					Program: cellAt(row, pgms[i]),
					Param:   cellAt(row, params[i]),
				}
				if sr.Levels[i] != (models.ShellLevel{}) {
					blank = false
				}
			}
			if !blank {
				shells.Sections[s.Section] = append(shells.Sections[s.Section], sr)
			}
		}
	}
	return shells, nil
}

func loadOverlays(f *excelize.File, lang models.Language) ([]models.OverlayRule, error) {
	rows, err := optionalSheet(f, OverlaySheet)
	if err != nil || len(rows) < 2 {
		return nil, err
	}
	h := newShellHeader(rows[0])
	title := h.find(titleColumn("title_shell", lang), "title_shell_cn", "title_shell_en")
	pgm := h.find("pgm_shell")
	param := h.find("sysparm_shell")
	if title < 0 || pgm < 0 {
		return nil, nil
	}

	var out []models.OverlayRule
	for _, row := range rows[1:] {
		trigger := strings.Join(strings.Fields(cellAt(row, title)), "")
		if trigger == "" {
			continue
		}
		out = append(out, models.OverlayRule{
			Trigger: trigger,
			Program: cellAt(row, pgm),
			Param:   cellAt(row, param),
		})
	}
	return out, nil
}

func titleColumn(prefix string, lang models.Language) string {
	return prefix + "_" + string(lang)
}

// optionalSheet returns the rows of sheet, or nil when the workbook has no such sheet.
func optionalSheet(f *excelize.File, sheet string) ([][]string, error) {
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &SheetError{Sheet: sheet, Err: err}
	}
	return rows, nil
}
