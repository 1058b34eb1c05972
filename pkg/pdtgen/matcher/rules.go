package matcher

import (
	"regexp"
	"strings"
)

// ProgramExt is appended to program names that lack it.
const ProgramExt = ".sas"

// Parameter fragments rewritten by overlay rules.
const (
	screenAllSubjects = "adsl_scr=%str(1)"
	safetyFlag        = `saffl="Y"`
)

// safetyPopulations trigger the subject-level screening clause.
var safetyPopulations = []string{"Safety Set", "安全性分析集"}

// threshold maps an incidence marker of the raw title to the percentage limit
// inserted before @sevcol. Markers compare case-insensitively.
type threshold struct {
	Marker string
	Limit  string
}

var thresholds = []threshold{
	{Marker: "发生率>=10", Limit: "10"},
	{Marker: "发生率>=5", Limit: "5"},
	{Marker: "Incidence >= 10%", Limit: "10"},
	{Marker: "Incidence >= 5%", Limit: "5"},
}

// defaultLimit applies when the title carries no incidence marker.
const defaultLimit = "0"

// thresholdPattern recognises incidence markers in general; one that matches while no
// thresholds entry does is reported as unhandled.
var thresholdPattern = regexp.MustCompile(`(?i)(发生率|incidence)\s*(>=|≥|＞=|>|＞)\s*\d+(\.\d+)?\s*%?`)

const sevcolToken = "@sevcol"

// flagClause is appended to the category fragment when the selecting program fragment
// equals Program.
type flagClause struct {
	Program string
	Clause  string
}

var flagClauses = []flagClause{
	{Program: "byvis", Clause: ` and  anl01fl="Y"`},
	{Program: "shift_byvis", Clause: ` and  anl03fl="Y"`},
	{Program: "shift", Clause: ` and  anl02fl="Y"`},
}

// screenRule wraps the category fragment of a section and inserts a screening fragment
// after it. "{}" in Wrap stands for the category fragment.
type screenRule struct {
	Wrap       string
	Screen     string
	SafetyOnly bool
}

var screenRules = map[string]screenRule{
	"14.3.1": {Wrap: "{}", Screen: screenAllSubjects, SafetyOnly: true},
	"14.3.4": {Wrap: "datascr=%quote({})", Screen: `adslscr=%quote(saffl="Y")`, SafetyOnly: true},
	"14.3.5": {Wrap: "datascr=%quote({})", Screen: `adslscr=%quote(saffl="Y")`},
}

func (r screenRule) wrap(fragment string) string {
	return strings.ReplaceAll(r.Wrap, "{}", fragment)
}

// stripRule removes Pattern from the parameter of one level before any other rewrite.
type stripRule struct {
	Level   int
	Pattern *regexp.Regexp
}

var sectionStrip = map[string]stripRule{
	"14.3.2": {Level: 1, Pattern: regexp.MustCompile(`data_scr=%str\s*`)},
}

// levelRules describes parameter assembly for a multi-level strategy.
type levelRules struct {
	// Category is the level whose parameter is the category filter.
	Category int
	// FlagKey is the level whose program fragment selects a flag clause.
	FlagKey int
	// Renames are applied in order to the category fragment of tables.
	Renames [][2]string
	// Threshold is the level whose @sevcol token receives the percentage limit, or -1.
	Threshold int
}

var strategyRules = map[Strategy]levelRules{
	ThreeLevel: {
		Category:  1,
		FlagKey:   2,
		Renames:   [][2]string{{"lbcat", "parcat1"}},
		Threshold: 2,
	},
	TwoLevel: {
		Category: 0,
		FlagKey:  1,
		Renames: [][2]string{
			{"vscat", "parcat1"},
			{"pecat", "parcat1"},
			{"egscat", "parcat2"},
			{"pdcat", "parcat1"},
		},
		Threshold: -1,
	},
}
