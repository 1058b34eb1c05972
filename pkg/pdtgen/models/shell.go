package models

// ShellLevel is one (title fragment, program fragment, parameter fragment) triple.
type ShellLevel struct {
	Title   string `json:"title"`
	Program string `json:"program"`
	Param   string `json:"param"`
}

// ShellRow is one program-matching rule of a document section.
type ShellRow struct {
	Levels [3]ShellLevel `json:"levels"`
}

// OverlayRule is a global rule appended on top of a primary match.
type OverlayRule struct {
	// Trigger is the title phrase, stored with whitespace removed.
	Trigger string `json:"trigger"`
	// Program is appended to the program name with an underscore.
	Program string `json:"program"`
	// Param is merged into known parameter placeholders.
	Param string `json:"param"`
}

// ProgramShells is the loaded reference metadata keyed by section identifier.
type ProgramShells struct {
	Sections map[string][]ShellRow `json:"sections"`
	Overlays []OverlayRule         `json:"overlays,omitempty"`
}
