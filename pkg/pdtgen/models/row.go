package models

// Row is one data row of a sheet keyed by canonical column name.
type Row struct {
	// R is the row index (1-based).
	R int `json:"r"`
	// Values maps canonical column name to the raw cell text.
	Values map[string]string `json:"values"`
}

// Get returns the value of a canonical column, or "" when the column is absent.
func (r Row) Get(name string) string {
	return r.Values[name]
}

// Has reports whether the column was present in the sheet header.
func (r Row) Has(name string) bool {
	_, ok := r.Values[name]
	return ok
}
