// Package toc expands TOC template rows into concrete deliverables.
//
// Everything in this package is pure: rows come in as values, expanded rows go out, and
// an empty result is a legitimate outcome rather than an error.
package toc

import (
	"strings"

	"github.com/ukaji3/pdtgen-go/pkg/pdtgen/models"
)

// Endpoint is a user-selectable non-safety endpoint.
type Endpoint string

const (
	EndpointPKConcBlood  Endpoint = "PK浓度(血)"
	EndpointPKConcUrine  Endpoint = "PK浓度(尿)"
	EndpointPKConcFeces  Endpoint = "PK浓度(粪)"
	EndpointPKParamBlood Endpoint = "PK参数(血)"
	EndpointPKParamUrine Endpoint = "PK参数(尿)"
	EndpointPKParamFeces Endpoint = "PK参数(粪)"
	EndpointPD           Endpoint = "PD分析"
	EndpointADA          Endpoint = "ADA分析"
	EndpointQT           Endpoint = "QT分析"
)

// Endpoints lists every endpoint in display order.
var Endpoints = []Endpoint{
	EndpointPKConcBlood, EndpointPKConcUrine, EndpointPKConcFeces,
	EndpointPKParamBlood, EndpointPKParamUrine, EndpointPKParamFeces,
	EndpointPD, EndpointADA, EndpointQT,
}

// endpointKeys are ASCII spellings accepted on the command line.
var endpointKeys = map[string]Endpoint{
	"pkconc-blood":  EndpointPKConcBlood,
	"pkconc-urine":  EndpointPKConcUrine,
	"pkconc-feces":  EndpointPKConcFeces,
	"pkparam-blood": EndpointPKParamBlood,
	"pkparam-urine": EndpointPKParamUrine,
	"pkparam-feces": EndpointPKParamFeces,
	"pd":            EndpointPD,
	"ada":           EndpointADA,
	"qt":            EndpointQT,
}

// ParseEndpoint accepts either the template label or its ASCII key.
func ParseEndpoint(s string) (Endpoint, bool) {
	s = strings.TrimSpace(s)
	for _, ep := range Endpoints {
		if string(ep) == s {
			return ep, true
		}
	}
	ep, ok := endpointKeys[strings.ToLower(s)]
	return ep, ok
}

// Template categories referenced by the rules.
const (
	CategoryPKConc  = "PK浓度"
	CategoryPKParam = "PK参数"
	CategoryPD      = "PD分析"
	CategoryADA     = "ADA分析"
	CategoryQT      = "QT分析"
	CategoryCQT     = "C-QT分析"
)

var endpointCategory = map[Endpoint]string{
	EndpointPKConcBlood:  CategoryPKConc,
	EndpointPKConcUrine:  CategoryPKConc,
	EndpointPKConcFeces:  CategoryPKConc,
	EndpointPKParamBlood: CategoryPKParam,
	EndpointPKParamUrine: CategoryPKParam,
	EndpointPKParamFeces: CategoryPKParam,
	EndpointPD:           CategoryPD,
	EndpointADA:          CategoryADA,
	EndpointQT:           CategoryQT,
}

// optInCategories are dropped unless an endpoint selection maps to them. C-QT分析 has no
// endpoint and is therefore never generated.
var optInCategories = map[string]bool{
	CategoryQT:      true,
	CategoryCQT:     true,
	CategoryPKConc:  true,
	CategoryPKParam: true,
	CategoryPD:      true,
	CategoryADA:     true,
}

// SubType is a biological sample matrix of a PK endpoint.
type SubType string

const (
	SubTypeBlood SubType = "血"
	SubTypeUrine SubType = "尿"
	SubTypeFeces SubType = "粪"
)

var endpointSubType = map[Endpoint]SubType{
	EndpointPKConcBlood:  SubTypeBlood,
	EndpointPKConcUrine:  SubTypeUrine,
	EndpointPKConcFeces:  SubTypeFeces,
	EndpointPKParamBlood: SubTypeBlood,
	EndpointPKParamUrine: SubTypeUrine,
	EndpointPKParamFeces: SubTypeFeces,
}

// paramRequiresConc pairs each PK parameter endpoint with the concentration endpoint it needs.
var paramRequiresConc = map[Endpoint]Endpoint{
	EndpointPKParamBlood: EndpointPKConcBlood,
	EndpointPKParamUrine: EndpointPKConcUrine,
	EndpointPKParamFeces: EndpointPKConcFeces,
}

var subTypeTerms = []struct {
	subType SubType
	terms   []string
}{
	{SubTypeBlood, []string{"血", "血浆", "blood", "plasma"}},
	{SubTypeUrine, []string{"尿", "urine"}},
	{SubTypeFeces, []string{"粪", "粪便", "feces", "stool"}},
}

// Placeholder tokens recognised in template titles.
const (
	TokenAnalyte = "[Analyte]"
	TokenAEACN   = "[AEACN]"
)

var legacyAnalyteTokens = []string{"<Analyte分析物>", "<Analyte>"}

// NormalizeTokens rewrites legacy analyte placeholders to TokenAnalyte.
func NormalizeTokens(s string) string {
	for _, old := range legacyAnalyteTokens {
		s = strings.ReplaceAll(s, old, TokenAnalyte)
	}
	return s
}

// DefaultExcludedAELabels are code-list labels never used as [AEACN] values.
var DefaultExcludedAELabels = []string{"剂量不变", "不适用", "DOSE NOT CHANGED", "NOT APPLICABLE"}

// ParseAnalytes splits a pipe-delimited analyte list, dropping blanks.
func ParseAnalytes(s string) []string {
	var out []string
	for _, a := range strings.Split(s, "|") {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

func designIndex(dt models.DesignType) int {
	for i, d := range models.DesignTypes {
		if d == dt {
			return i
		}
	}
	return -1
}
