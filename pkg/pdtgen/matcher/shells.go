package matcher

import (
	"strings"

	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/models"
)

// ladaeProgram marks 14.3.1 rows whose derived 14.3.2 row keeps a third program fragment.
const ladaeProgram = "ladae"

// CompleteShells returns shells with sections derived from others where the workbook has
// none of its own. 14.3.2 is derived from 14.3.1: the third title and parameter
// fragments are cleared and the third program fragment becomes "ladae" when the second
// one mentions it.
func CompleteShells(shells models.ProgramShells) models.ProgramShells {
	out := models.ProgramShells{
		Sections: make(map[string][]models.ShellRow, len(shells.Sections)+1),
		Overlays: shells.Overlays,
	}
	for k, v := range shells.Sections {
		out.Sections[k] = v
	}

	src, ok := out.Sections["14.3.1"]
	if _, has := out.Sections["14.3.2"]; has || !ok {
		return out
	}
	derived := make([]models.ShellRow, len(src))
	for i, r := range src {
		r.Levels[2] = models.ShellLevel{}
		if strings.Contains(strings.ToLower(r.Levels[1].Program), ladaeProgram) {
			r.Levels[2].Program = ladaeProgram
		}
		derived[i] = r
	}
	out.Sections["14.3.2"] = derived
	return out
}
