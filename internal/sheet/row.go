package sheet

import "strings"

// Row is a single spreadsheet row keyed by column header.
// Missing columns are tolerated by every accessor.
type Row map[string]string

// Get returns the value stored under name or an empty string when the column is absent.
func (r Row) Get(name string) string {
	if r == nil {
		return ""
	}
	return r[name]
}

// Has reports whether the row holds a non-blank value for name.
func (r Row) Has(name string) bool {
	return strings.TrimSpace(r.Get(name)) != ""
}

// Lookup tries names in priority order and returns the first non-blank value.
// When none of the names is present, def is returned.
func (r Row) Lookup(def string, names ...string) string {
	for _, name := range names {
		if r.Has(name) {
			return r[name]
		}
	}
	return def
}
