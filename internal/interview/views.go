package interview

import (
	"strings"

	"github.com/spigell/placement-desk/internal/matching"
	"github.com/spigell/placement-desk/internal/sheet"
)

const vacancyClosed = "CLOSED"

// VacancyKey identifies a vacancy by company and job title.
type VacancyKey struct {
	CID      string
	JobTitle string
}

func (r Record) vacancy() VacancyKey {
	return VacancyKey{CID: strings.TrimSpace(r.CID), JobTitle: strings.TrimSpace(r.JobTitle)}
}

// ClosedVacancies returns the vacancies whose status is CLOSED.
// Rows without a CID or job title are ignored.
func ClosedVacancies(vacancies *sheet.Table) map[VacancyKey]struct{} {
	closed := make(map[VacancyKey]struct{})
	if vacancies == nil {
		return closed
	}

	for _, row := range vacancies.Rows {
		status := row.Lookup("", matching.VacancyStatusField, "Status")
		if !strings.EqualFold(strings.TrimSpace(status), vacancyClosed) {
			continue
		}

		key := VacancyKey{
			CID:      strings.TrimSpace(row.Get(CIDField)),
			JobTitle: strings.TrimSpace(row.Get(JobTitleField)),
		}
		if key.CID != "" && key.JobTitle != "" {
			closed[key] = struct{}{}
		}
	}

	return closed
}

// Schedulable returns the matched records an interview can be scheduled for.
// A matched record is hidden when the same candidate already has a scheduled or completed interview
// for the same company and job.
func Schedulable(records []Record, closed map[VacancyKey]struct{}) []Record {
	type group struct{ candidate, company, job string }
	key := func(r Record) group {
		return group{strings.TrimSpace(r.CandidateID), strings.TrimSpace(r.CompanyName), strings.TrimSpace(r.JobTitle)}
	}

	progressed := make(map[group]bool)
	for _, r := range records {
		switch strings.TrimSpace(r.InterviewStatus) {
		case StatusScheduled, StatusCompleted:
			progressed[key(r)] = true
		}
	}

	var out []Record
	for _, r := range records {
		if strings.TrimSpace(r.InterviewStatus) != StatusMatched {
			continue
		}
		if strings.TrimSpace(r.ResultStatus) == ResultRejected {
			continue
		}
		if _, ok := closed[r.vacancy()]; ok {
			continue
		}
		if progressed[key(r)] {
			continue
		}
		out = append(out, r)
	}

	return out
}

// Updatable returns the scheduled or completed interviews that can still get a result.
// Candidates already selected anywhere are left out.
func Updatable(records []Record, closed map[VacancyKey]struct{}) []Record {
	selected := make(map[string]bool)
	for _, r := range records {
		if strings.TrimSpace(r.ResultStatus) == ResultSelected {
			selected[strings.TrimSpace(r.CandidateID)] = true
		}
	}

	var out []Record
	for _, r := range records {
		switch strings.TrimSpace(r.InterviewStatus) {
		case StatusScheduled, StatusCompleted:
		default:
			continue
		}

		switch strings.TrimSpace(r.ResultStatus) {
		case ResultSelected, ResultCancelledSelection:
			continue
		}

		if selected[strings.TrimSpace(r.CandidateID)] {
			continue
		}
		if _, ok := closed[r.vacancy()]; ok {
			continue
		}
		out = append(out, r)
	}

	return out
}

// Summary counts records per interview and result status.
type Summary struct {
	Total             int
	ByInterviewStatus map[string]int
	ByResultStatus    map[string]int
}

func Summarize(records []Record) Summary {
	s := Summary{
		Total:             len(records),
		ByInterviewStatus: make(map[string]int),
		ByResultStatus:    make(map[string]int),
	}
	for _, r := range records {
		s.ByInterviewStatus[statusOrUnknown(r.InterviewStatus)]++
		s.ByResultStatus[statusOrUnknown(r.ResultStatus)]++
	}
	return s
}

func statusOrUnknown(status string) string {
	if status = strings.TrimSpace(status); status == "" {
		return "Unknown"
	}
	return status
}
