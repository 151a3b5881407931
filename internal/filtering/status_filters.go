package filtering

import (
	"context"
	"strings"

	"github.com/spigell/placement-desk/internal/matching"
	"github.com/spigell/placement-desk/internal/sheet"
)

const (
	candidateSelected = "selected"
	vacancyClosed     = "CLOSED"
)

// statusFilter drops rows whose status column holds a given value, ignoring case and
// surrounding spaces.
type statusFilter struct {
	toggle
	name   string
	column string
	value  string
}

// NewExcludeSelected creates a filter that removes candidates who were already selected.
func NewExcludeSelected() Filter {
	return &statusFilter{name: "exclude_selected", column: matching.CandidateStatusField, value: candidateSelected}
}

// NewClosedVacancies creates a filter that removes closed vacancies.
func NewClosedVacancies() Filter {
	return &statusFilter{name: "closed_vacancies", column: matching.VacancyStatusField, value: vacancyClosed}
}

func (f *statusFilter) Name() string { return f.name }

func (f *statusFilter) Validate() error { return nil }

func (f *statusFilter) Apply(_ context.Context, t *sheet.Table) (*sheet.Table, Step, error) {
	initial := t.Len()
	excluded := t.Exclude(func(row sheet.Row) bool {
		return strings.EqualFold(strings.TrimSpace(row.Get(f.column)), f.value)
	})

	return t, Step{Initial: initial, Dropped: len(excluded), Left: t.Len()}, nil
}

func (f *statusFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"column": f.column, "excluded_value": f.value},
	}
}
