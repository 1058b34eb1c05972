package toc

import "strings"

// Family is one placeholder token with its ordered substitution values.
type Family struct {
	Token  string
	Values []string
}

// Expansion is one title produced by placeholder substitution.
type Expansion struct {
	Title string
	// Ordinal is the 1-based position of the substituted value, 0 when nothing was substituted.
	Ordinal int
}

// ExpandPlaceholder substitutes the first family whose token occurs in title and that has
// values, producing one expansion per value. Tokens of the remaining families are blanked.
// A title with tokens but no usable values yields one blanked expansion, and a title
// without tokens is returned unchanged.
func ExpandPlaceholder(title string, families ...Family) []Expansion {
	present := false
	for i, fam := range families {
		if !strings.Contains(title, fam.Token) {
			continue
		}
		present = true
		if len(fam.Values) == 0 {
			continue
		}
		out := make([]Expansion, 0, len(fam.Values))
		for idx, v := range fam.Values {
			t := strings.ReplaceAll(title, fam.Token, v)
			out = append(out, Expansion{
				Title:   blankTokens(t, families, i),
				Ordinal: idx + 1,
			})
		}
		return out
	}
	if !present {
		return []Expansion{{Title: title}}
	}
	return []Expansion{{Title: blankTokens(title, families, -1)}}
}

func blankTokens(title string, families []Family, skip int) string {
	for i, fam := range families {
		if i == skip {
			continue
		}
		title = strings.ReplaceAll(title, fam.Token, "")
	}
	return strings.TrimSpace(title)
}
