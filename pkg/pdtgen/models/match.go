package models

// MatchResult is the program name and macro parameter string derived from a title.
// The zero value means no rule matched.
type MatchResult struct {
	ProgramName string `json:"program_name"`
	Params      string `json:"params"`
	// Section is the resolved section identifier, set even when no shell row matched.
	Section string `json:"section,omitempty"`
	// Unhandled describes a title pattern the rewrite tables do not cover.
	Unhandled string `json:"unhandled,omitempty"`
}

// Empty reports whether neither a program name nor a parameter string was derived.
func (m MatchResult) Empty() bool {
	return m.ProgramName == "" && m.Params == ""
}
