// Package models defines the value objects shared by the TOC engine, the matcher and the
// workbook reader/writer.
package models

import "strings"

// OutputType is the kind of deliverable a row describes.
type OutputType string

const (
	// OutputTable is a summary table.
	OutputTable OutputType = "Table"
	// OutputListing is a subject-level listing.
	OutputListing OutputType = "Listing"
	// OutputFigure is a figure.
	OutputFigure OutputType = "Figure"
)

// ParseOutputType maps a cell value to an OutputType. Unknown values are kept verbatim so
// that a template typo survives the round trip instead of being dropped.
func ParseOutputType(s string) OutputType {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "table":
		return OutputTable
	case "listing":
		return OutputListing
	case "figure":
		return OutputFigure
	}
	return OutputType(s)
}

// DesignType is a study-design code used as one expansion dimension.
type DesignType string

const (
	// DesignSAD is single ascending dose.
	DesignSAD DesignType = "SAD"
	// DesignFE is food effect.
	DesignFE DesignType = "FE"
	// DesignMAD is multiple ascending dose.
	DesignMAD DesignType = "MAD"
	// DesignBE is bioequivalence.
	DesignBE DesignType = "BE"
	// DesignMB is mass balance.
	DesignMB DesignType = "MB"
)

// DesignTypes lists every design type in template column order.
var DesignTypes = []DesignType{DesignSAD, DesignFE, DesignMAD, DesignBE, DesignMB}

// ParseDesignType returns the design type for s (case-insensitive).
func ParseDesignType(s string) (DesignType, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, dt := range DesignTypes {
		if string(dt) == s {
			return dt, true
		}
	}
	return "", false
}

// Language selects the localized title and footnote columns.
type Language string

const (
	// LangCN selects Title_CN / Footnotes_CN.
	LangCN Language = "cn"
	// LangEN selects Title_EN / Footnotes_EN.
	LangEN Language = "en"
)

// ParseLanguage interprets an LNG macro variable value. Blank means Chinese.
func ParseLanguage(s string) Language {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "CHN", "CN", "CHINESE", "中文", "ZH", "ZH-CN":
		return LangCN
	}
	return LangEN
}
