package matcher

import (
	"strings"

	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/models"
)

// applyOverlay applies the first overlay whose trigger occurs in title. Its program is
// appended with an underscore and its parameter text is merged into the screening
// placeholders of params.
func applyOverlay(overlays []models.OverlayRule, title, program, params string) (string, string) {
	compact := compress(title)
	norm := normalize(title)
	for _, o := range overlays {
		if o.Trigger == "" {
			continue
		}
		if !strings.Contains(compact, o.Trigger) && !strings.Contains(norm, normalize(o.Trigger)) {
			continue
		}
		if o.Program != "" {
			program += "_" + o.Program
		}
		if o.Param != "" {
			params = strings.ReplaceAll(params, screenAllSubjects, "adsl_scr=%str("+o.Param+")")
			params = strings.ReplaceAll(params, safetyFlag, safetyFlag+" and "+o.Param)
		}
		break
	}
	return program, params
}
