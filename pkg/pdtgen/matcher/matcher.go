package matcher

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/models"
)

// Deliverable is the part of a deliverables row the matcher reads.
type Deliverable struct {
	OutputReference string
	Title           string
	OutputType      models.OutputType
	Population      string
}

// Matcher maps deliverables to program names. It is safe for concurrent use once built.
type Matcher struct {
	shells models.ProgramShells
}

// New returns a Matcher over shells, completed with CompleteShells.
func New(shells models.ProgramShells) *Matcher {
	return &Matcher{shells: CompleteShells(shells)}
}

// candidate is a shell row whose fragments all occur in the title.
type candidate struct {
	row      models.ShellRow
	residual int
}

// better is the reduction comparator: a strictly shorter residual wins, so among equal
// residuals the earliest shell row is kept.
func better(c, best candidate) bool {
	return c.residual < best.residual
}

// Match returns the program name and parameters for d. A deliverable whose section,
// shell rows or title fragments cannot be resolved yields an empty result.
func (m *Matcher) Match(d Deliverable) models.MatchResult {
	section := ResolveSection(d.OutputReference)
	if section == "" {
		return models.MatchResult{}
	}
	res := models.MatchResult{Section: section}
	rows := m.shells.Sections[section]
	if len(rows) == 0 {
		return res
	}

	title := strings.TrimSpace(d.Title)
	strategy := StrategyFor(section)
	best, ok := bestCandidate(normalize(title), rows, strategy)
	if !ok {
		return res
	}

	program, params, unhandled := assemble(best.row, strategy, section, title, d)
	if program == "" {
		return res
	}
	program, params = applyOverlay(m.shells.Overlays, title, program, params)
	if !strings.HasSuffix(strings.ToLower(program), ProgramExt) {
		program += ProgramExt
	}

	res.ProgramName = program
	res.Params = params
	res.Unhandled = unhandled
	return res
}

// bestCandidate reduces rows to the one leaving the shortest residual of the normalized
// title once its fragments are removed.
func bestCandidate(normTitle string, rows []models.ShellRow, strategy Strategy) (candidate, bool) {
	var best candidate
	found := false
	for _, row := range rows {
		c, ok := score(normTitle, row, int(strategy))
		if !ok {
			continue
		}
		if !found || better(c, best) {
			best, found = c, true
		}
	}
	return best, found
}

// score checks that the first levels title fragments of row all occur in normTitle and
// measures the residual in runes after removing the first occurrence of each in turn.
func score(normTitle string, row models.ShellRow, levels int) (candidate, bool) {
	remain := normTitle
	for i := 0; i < levels; i++ {
		frag := normalize(row.Levels[i].Title)
		if frag == "" || !strings.Contains(normTitle, frag) {
			return candidate{}, false
		}
		remain = strings.Replace(remain, frag, "", 1)
	}
	return candidate{row: row, residual: utf8.RuneCountInString(remain)}, true
}

// assemble builds the program name and parameter string of the chosen row.
func assemble(row models.ShellRow, strategy Strategy, section, title string, d Deliverable) (program, params, unhandled string) {
	if strategy == SingleLevel {
		return row.Levels[0].Program, row.Levels[0].Param, ""
	}
	rules := strategyRules[strategy]
	levels := int(strategy)

	frags := make([]string, levels)
	pgms := make([]string, levels)
	for i := 0; i < levels; i++ {
		frags[i] = row.Levels[i].Param
		pgms[i] = row.Levels[i].Program
	}

	if sr, ok := sectionStrip[section]; ok && sr.Level < levels {
		frags[sr.Level] = sr.Pattern.ReplaceAllString(frags[sr.Level], "")
	}
	if rules.Threshold >= 0 {
		frags[rules.Threshold], unhandled = applyThreshold(frags[rules.Threshold], title)
	}

	sep := " "
	if models.ParseOutputType(string(d.OutputType)) == models.OutputTable {
		sep = "@"
		frags = tableFragments(frags, pgms[rules.FlagKey], rules, section, d.Population)
	}
	return joinNonEmpty(pgms, "_"), joinNonEmpty(frags, sep), unhandled
}

// applyThreshold inserts the percentage limit selected by the raw title before the
// @sevcol token. A title with an incidence marker missing from thresholds leaves frag
// unchanged and reports why.
func applyThreshold(frag, title string) (string, string) {
	lower := strings.ToLower(title)
	for _, t := range thresholds {
		if strings.Contains(lower, strings.ToLower(t.Marker)) {
			return strings.ReplaceAll(frag, sevcolToken, "@pctlmt="+t.Limit+sevcolToken), ""
		}
	}
	if m := thresholdPattern.FindString(title); m != "" {
		return frag, fmt.Sprintf("incidence threshold %q has no rewrite rule", m)
	}
	return strings.ReplaceAll(frag, sevcolToken, "@pctlmt="+defaultLimit+sevcolToken), ""
}

func tableFragments(frags []string, flagProgram string, rules levelRules, section, population string) []string {
	cat := frags[rules.Category]
	for _, r := range rules.Renames {
		cat = strings.ReplaceAll(cat, r[0], r[1])
	}
	flagProgram = strings.TrimSpace(flagProgram)
	for _, fc := range flagClauses {
		if flagProgram == fc.Program {
			cat += fc.Clause
			break
		}
	}
	frags[rules.Category] = cat

	rule, ok := screenRules[section]
	if !ok || rule.SafetyOnly && !isSafetyPopulation(population) {
		return frags
	}
	out := make([]string, 0, len(frags)+1)
	out = append(out, frags[:rules.Category]...)
	out = append(out, rule.wrap(cat), rule.Screen)
	return append(out, frags[rules.Category+1:]...)
}

func isSafetyPopulation(population string) bool {
	for _, p := range safetyPopulations {
		if strings.Contains(population, p) {
			return true
		}
	}
	return false
}

func joinNonEmpty(parts []string, sep string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
