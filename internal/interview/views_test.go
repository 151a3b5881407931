package interview

import (
	"testing"

	"github.com/spigell/placement-desk/internal/sheet"
)

func recordIDs(records []Record) []string {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.RecordID)
	}
	return ids
}

func sameIDs(t *testing.T, got []Record, expected ...string) {
	t.Helper()
	ids := recordIDs(got)
	if len(ids) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, ids)
	}
	for i := range ids {
		if ids[i] != expected[i] {
			t.Fatalf("expected %v, got %v", expected, ids)
		}
	}
}

func TestParseRecords(t *testing.T) {
	values := [][]string{
		{"Record ID", "Candidate ID", "CID", "Interview Status", "Result Status", "Extra"},
		{"IR001", "C1", "CID01", "Matched", "Pending", "ignored"},
		{"IR002", "C2"},
	}

	records, err := ParseRecords(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].CID != "CID01" || records[0].InterviewStatus != "Matched" || records[0].ResultStatus != "Pending" {
		t.Fatalf("unexpected first record: %+v", records[0])
	}
	if records[1].CandidateID != "C2" || records[1].CID != "" {
		t.Fatalf("unexpected second record: %+v", records[1])
	}
}

func TestParseRecordsEmpty(t *testing.T) {
	records, err := ParseRecords(nil)
	if err != nil || len(records) != 0 {
		t.Fatalf("expected no records, got %v, %v", records, err)
	}
}

func TestClosedVacancies(t *testing.T) {
	table := sheet.FromValues([][]string{
		{"CID", "Job Title", "status"},
		{"CID01", "Backend Developer", " closed "},
		{"CID02", "QA Engineer", "OPEN"},
		{"", "Driver", "CLOSED"},
		{"CID03", "Driver", "CLOSED"},
	})

	closed := ClosedVacancies(table)
	if len(closed) != 2 {
		t.Fatalf("expected 2 closed vacancies, got %v", closed)
	}
	if _, ok := closed[VacancyKey{CID: "CID01", JobTitle: "Backend Developer"}]; !ok {
		t.Fatalf("expected CID01 to be closed")
	}
	if len(ClosedVacancies(nil)) != 0 {
		t.Fatalf("nil table must have no closed vacancies")
	}
}

func TestSchedulable(t *testing.T) {
	records := []Record{
		{RecordID: "IR001", CandidateID: "C1", CompanyName: "Acme", CID: "CID01", JobTitle: "Dev", InterviewStatus: "Matched", ResultStatus: "Pending"},
		{RecordID: "IR002", CandidateID: "C2", CompanyName: "Acme", CID: "CID01", JobTitle: "Dev", InterviewStatus: "Matched", ResultStatus: "Rejected"},
		{RecordID: "IR003", CandidateID: "C3", CompanyName: "Acme", CID: "CID01", JobTitle: "Dev", InterviewStatus: "Matched", ResultStatus: "Pending"},
		{RecordID: "IR004", CandidateID: "C3", CompanyName: "Acme", CID: "CID01", JobTitle: "Dev", InterviewStatus: "Interview Scheduled", ResultStatus: "Pending"},
		{RecordID: "IR005", CandidateID: "C4", CompanyName: "Globex", CID: "CID02", JobTitle: "QA", InterviewStatus: "Matched", ResultStatus: "Pending"},
		{RecordID: "IR006", CandidateID: "C5", CompanyName: "Acme", CID: "CID01", JobTitle: "Dev", InterviewStatus: " Matched ", ResultStatus: ""},
	}
	closed := map[VacancyKey]struct{}{{CID: "CID02", JobTitle: "QA"}: {}}

	sameIDs(t, Schedulable(records, closed), "IR001", "IR006")
}

func TestUpdatable(t *testing.T) {
	records := []Record{
		{RecordID: "IR001", CandidateID: "C1", CID: "CID01", JobTitle: "Dev", InterviewStatus: "Interview Scheduled", ResultStatus: "Pending"},
		{RecordID: "IR002", CandidateID: "C2", CID: "CID01", JobTitle: "Dev", InterviewStatus: "Interview Completed", ResultStatus: "On Hold"},
		{RecordID: "IR003", CandidateID: "C3", CID: "CID01", JobTitle: "Dev", InterviewStatus: "Interview Completed", ResultStatus: "Selected"},
		{RecordID: "IR004", CandidateID: "C3", CID: "CID05", JobTitle: "Ops", InterviewStatus: "Interview Scheduled", ResultStatus: "Pending"},
		{RecordID: "IR005", CandidateID: "C4", CID: "CID05", JobTitle: "Ops", InterviewStatus: "Interview Scheduled", ResultStatus: "Cancelled due to Selection"},
		{RecordID: "IR006", CandidateID: "C6", CID: "CID02", JobTitle: "QA", InterviewStatus: "Interview Scheduled", ResultStatus: "Pending"},
		{RecordID: "IR007", CandidateID: "C7", CID: "CID01", JobTitle: "Dev", InterviewStatus: "Matched", ResultStatus: "Pending"},
	}
	closed := map[VacancyKey]struct{}{{CID: "CID02", JobTitle: "QA"}: {}}

	sameIDs(t, Updatable(records, closed), "IR001", "IR002")
}

func TestSummarize(t *testing.T) {
	summary := Summarize([]Record{
		{InterviewStatus: "Matched", ResultStatus: "Pending"},
		{InterviewStatus: "Matched", ResultStatus: "Pending"},
		{InterviewStatus: "Interview Completed", ResultStatus: "Selected"},
		{InterviewStatus: "", ResultStatus: ""},
	})

	if summary.Total != 4 {
		t.Fatalf("expected total 4, got %d", summary.Total)
	}
	if summary.ByInterviewStatus["Matched"] != 2 || summary.ByInterviewStatus["Unknown"] != 1 {
		t.Fatalf("unexpected interview counts: %v", summary.ByInterviewStatus)
	}
	if summary.ByResultStatus["Pending"] != 2 || summary.ByResultStatus["Selected"] != 1 {
		t.Fatalf("unexpected result counts: %v", summary.ByResultStatus)
	}
}
