package filtering

import (
	"context"
	"errors"
	"strings"

	"github.com/spigell/placement-desk/internal/sheet"
)

// AllValues keeps every row of a column filter.
const AllValues = "All"

type columnFilter struct {
	toggle
	column string
	value  string
}

// NewColumn creates a filter that keeps the rows where column equals value.
// A table without the column is left untouched.
func NewColumn(column, value string) Filter {
	return &columnFilter{column: strings.TrimSpace(column), value: value}
}

func (f *columnFilter) Name() string { return "column" }

func (f *columnFilter) Validate() error {
	if f.column == "" {
		return errors.New("column name is required")
	}
	return nil
}

func (f *columnFilter) Apply(_ context.Context, t *sheet.Table) (*sheet.Table, Step, error) {
	initial := t.Len()
	if f.value == "" || f.value == AllValues {
		return t, Step{Initial: initial, Left: initial}, nil
	}

	next := t.Where(f.column, f.value)
	return next, Step{Initial: initial, Dropped: initial - next.Len(), Left: next.Len()}, nil
}

func (f *columnFilter) Status() Status {
	details := map[string]string{"column": f.column}
	if f.value != "" {
		details["value"] = f.value
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
