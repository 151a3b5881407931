package sheet

import (
	"sort"
	"strings"
)

// Table is a sheet read into memory: a header line and the data rows under it.
type Table struct {
	Headers []string
	Rows    []Row
}

// FromValues builds a table from a raw grid where the first line holds the headers.
// Header names are trimmed and lose a leading byte order mark; short rows are padded with empty cells and extra cells are dropped.
func FromValues(values [][]string) *Table {
	t := &Table{}
	if len(values) == 0 {
		return t
	}

	t.Headers = make([]string, len(values[0]))
	for i, h := range values[0] {
		t.Headers[i] = strings.TrimSpace(strings.TrimPrefix(h, byteOrderMark))
	}

	for _, line := range values[1:] {
		if isBlankLine(line) {
			continue
		}
		row := make(Row, len(t.Headers))
		for i, h := range t.Headers {
			if h == "" {
				continue
			}
			// First occurrence wins when a sheet carries duplicated headers.
			if _, seen := row[h]; seen {
				continue
			}
			if i < len(line) {
				row[h] = line[i]
			} else {
				row[h] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}

	return t
}

// Values converts the table back into a grid with the header line first.
func (t *Table) Values() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	out = append(out, append([]string(nil), t.Headers...))
	for _, row := range t.Rows {
		line := make([]string, len(t.Headers))
		for i, h := range t.Headers {
			line[i] = row.Get(h)
		}
		out = append(out, line)
	}
	return out
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// HasColumn reports whether name is one of the table headers.
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// UniqueValues returns the sorted distinct non-blank values of a column.
func (t *Table) UniqueValues(column string) []string {
	if !t.HasColumn(column) {
		return nil
	}

	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, row := range t.Rows {
		v := row.Get(column)
		if strings.TrimSpace(v) == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// Where returns a new table with the rows whose column equals value.
// An unknown column leaves the table unfiltered.
func (t *Table) Where(column, value string) *Table {
	if !t.HasColumn(column) {
		return t
	}

	out := &Table{Headers: t.Headers}
	for _, row := range t.Rows {
		if row.Get(column) == value {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// Exclude removes the rows matching drop in place and returns them. Order of the kept rows is preserved.
func (t *Table) Exclude(drop func(Row) bool) []Row {
	var excluded []Row
	kept := t.Rows[:0]
	for _, row := range t.Rows {
		if drop(row) {
			excluded = append(excluded, row)
			continue
		}
		kept = append(kept, row)
	}
	t.Rows = kept
	return excluded
}

func isBlankLine(line []string) bool {
	for _, cell := range line {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
