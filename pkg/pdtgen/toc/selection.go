package toc

import (
	"errors"
	"fmt"

	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/models"
)

// ErrInvalidSelection indicates the user selection cannot drive a generation.
var ErrInvalidSelection = errors.New("invalid selection")

// Selection is the plain-data input of one generation run.
type Selection struct {
	// DesignTypes in the order the user picked them.
	DesignTypes []models.DesignType
	// Endpoints selected besides the safety endpoints.
	Endpoints []Endpoint
	// Analytes substituted for [Analyte], in source order.
	Analytes []string
	// AECategories substituted for [AEACN], in code-list order.
	AECategories []string
	// Language selects localized title and footnote columns.
	Language models.Language
}

// Normalize validates the selection and returns a copy with duplicate design types
// collapsed to their first occurrence and an empty language defaulted to Chinese.
func (s Selection) Normalize() (Selection, error) {
	if len(s.DesignTypes) == 0 {
		return s, fmt.Errorf("%w: at least one design type is required", ErrInvalidSelection)
	}
	seen := make(map[models.DesignType]bool, len(s.DesignTypes))
	designs := make([]models.DesignType, 0, len(s.DesignTypes))
	for _, dt := range s.DesignTypes {
		if designIndex(dt) < 0 {
			return s, fmt.Errorf("%w: unknown design type %q", ErrInvalidSelection, dt)
		}
		if seen[dt] {
			continue
		}
		seen[dt] = true
		designs = append(designs, dt)
	}

	selected := make(map[Endpoint]bool, len(s.Endpoints))
	for _, ep := range s.Endpoints {
		if _, ok := endpointCategory[ep]; !ok {
			return s, fmt.Errorf("%w: unknown endpoint %q", ErrInvalidSelection, ep)
		}
		selected[ep] = true
	}
	for _, ep := range Endpoints {
		conc, ok := paramRequiresConc[ep]
		if ok && selected[ep] && !selected[conc] {
			return s, fmt.Errorf("%w: %s requires %s", ErrInvalidSelection, ep, conc)
		}
	}

	out := s
	out.DesignTypes = designs
	if out.Language == "" {
		out.Language = models.LangCN
	}
	return out, nil
}

// SingleDesign reports whether exactly one design type is selected.
func (s Selection) SingleDesign() bool {
	return len(s.DesignTypes) == 1
}
