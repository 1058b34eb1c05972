package toc

import (
	"strconv"
	"strings"

	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/models"
)

// BuildReference composes an output reference. Ordinals are 1-based; 0 means absent.
// The design ordinal is omitted when singleDesign is true. The placeholder ordinal always
// precedes the design ordinal.
func BuildReference(templateNumber string, placeholderOrdinal, designOrdinal int, singleDesign bool) string {
	parts := make([]string, 0, 3)
	if n := strings.TrimSpace(templateNumber); n != "" {
		parts = append(parts, n)
	}
	if placeholderOrdinal > 0 {
		parts = append(parts, strconv.Itoa(placeholderOrdinal))
	}
	if !singleDesign && designOrdinal > 0 {
		parts = append(parts, strconv.Itoa(designOrdinal))
	}
	return strings.Join(parts, ".")
}

// DisplayTitle appends " - <code>" to title when more than one design type is selected.
func DisplayTitle(title string, dt models.DesignType, singleDesign bool) string {
	if singleDesign {
		return title
	}
	if title == "" {
		return string(dt)
	}
	return title + " - " + string(dt)
}
