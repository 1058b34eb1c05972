// Package matcher derives program names and macro parameter strings from deliverable
// titles using the shell rows of a program-name workbook.
package matcher

import (
	"sort"
	"strings"
)

// Strategy is the number of title fragments a section's shell rows decompose a title into.
type Strategy int

const (
	// SingleLevel matches one title fragment.
	SingleLevel Strategy = 1
	// TwoLevel matches two title fragments.
	TwoLevel Strategy = 2
	// ThreeLevel matches three title fragments.
	ThreeLevel Strategy = 3
)

// Sections lists the known section identifiers.
var Sections = []string{"14.1", "14.2", "14.3.1", "14.3.2", "14.3.4", "14.3.5", "14.4", "16.1", "16.2"}

var sectionStrategy = map[string]Strategy{
	"14.3.1": ThreeLevel,
	"14.3.4": ThreeLevel,
	"14.3.2": TwoLevel,
	"14.3.5": TwoLevel,
}

// byLength holds Sections ordered longest first, so that 14.3.1 is tried before 14.1.
var byLength = func() []string {
	s := append([]string(nil), Sections...)
	sort.SliceStable(s, func(i, j int) bool { return len(s[i]) > len(s[j]) })
	return s
}()

// ResolveSection returns the section identifier contained in an output reference, or ""
// when none is.
func ResolveSection(outputReference string) string {
	ref := compress(outputReference)
	for _, s := range byLength {
		if strings.Contains(ref, s) {
			return s
		}
	}
	return ""
}

// StrategyFor returns the decomposition used for a section.
func StrategyFor(section string) Strategy {
	if s, ok := sectionStrategy[section]; ok {
		return s
	}
	return SingleLevel
}

// compress removes all whitespace.
func compress(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// normalize removes all whitespace and lowercases.
func normalize(s string) string {
	return strings.ToLower(compress(s))
}
