package matching

import (
	"testing"

	"github.com/spigell/placement-desk/internal/sheet"
)

func backendCandidate() sheet.Row {
	return sheet.Row{
		"Candidate ID":    "C1",
		"Full Name":       "Asha Patil",
		"Job Pref 1":      "Backend Developer",
		"Job Pref 2":      "QA",
		"Job Pref 3":      "DevOps",
		"Current City":    "Pune",
		"Expected Salary": "50000",
	}
}

func backendVacancy() sheet.Row {
	return sheet.Row{
		"CID":          "CID01",
		"Company Name": "Acme Softworks",
		"Job Title":    "Backend Developer",
		"City":         "Pune",
		"Salary":       "52000",
	}
}

func TestScorePairEndToEndScenario(t *testing.T) {
	m, ok := ScorePair(backendCandidate(), backendVacancy())
	if !ok {
		t.Fatalf("expected pair to match")
	}

	// 100*0.4 + 100*0.3 + 96*0.3 = 98.8, truncated.
	if m.Score != 98 {
		t.Fatalf("expected score 98, got %d", m.Score)
	}

	expected := Match{
		CandidateID: "C1",
		FullName:    "Asha Patil",
		CompanyName: "Acme Softworks",
		CID:         "CID01",
		JobTitle:    "Backend Developer",
		Score:       98,
		Industry:    "N/A",
		Contact:     "N/A",
		Phone:       "N/A",
		Salary:      "52000",
	}
	if m != expected {
		t.Fatalf("unexpected match:\n got %+v\nwant %+v", m, expected)
	}
}

func TestScorePairJobTitleGate(t *testing.T) {
	candidate := sheet.Row{
		"Candidate ID":       "C2",
		"Job Pref 1":         "Housekeeping",
		"Job Pref 2":         "Nurse",
		"Job Pref 3":         "Accountant",
		"Preferred Location": "Pune",
		"Current City":       "Pune",
		"Expected Salary":    "52000",
		"Technical Skills":   "go sql",
		"Graduation Degree":  "B.Tech",
		"Experience Years":   "3",
	}
	vacancy := sheet.Row{
		"CID":                 "CID02",
		"Job Title":           "Software Engineer",
		"City":                "Pune",
		"Salary":              "52000",
		"Skills Required":     "go sql",
		"Education Required":  "B.Tech",
		"Experience Required": "3",
	}

	if m, ok := ScorePair(candidate, vacancy); ok {
		t.Fatalf("expected gate to reject the pair, got %+v", m)
	}
}

func TestScorePairGateWithoutPreferences(t *testing.T) {
	candidate := sheet.Row{"Candidate ID": "C3", "Current City": "Pune", "Expected Salary": "52000"}
	if _, ok := ScorePair(candidate, backendVacancy()); ok {
		t.Fatalf("candidate without job preferences must never match")
	}
}

func TestScorePairThresholdBoundary(t *testing.T) {
	vacancy := sheet.Row{"CID": "CID03", "Job Title": "100"}

	// Numeric titles make the gate score exact: 100 vs 102 scores 98, and 98*0.4 = 39.2.
	below := sheet.Row{"Candidate ID": "C4", "Job Pref 1": "102"}
	if m, ok := ScorePair(below, vacancy); ok {
		t.Fatalf("expected score 39 to be excluded, got %+v", m)
	}

	exact := sheet.Row{"Candidate ID": "C5", "Job Pref 1": "100"}
	m, ok := ScorePair(exact, vacancy)
	if !ok {
		t.Fatalf("expected score 40 to be included")
	}
	if m.Score != MinimumScore {
		t.Fatalf("expected score %d, got %d", MinimumScore, m.Score)
	}
}

func TestScorePairLocationAndSalaryAreSoft(t *testing.T) {
	candidate := backendCandidate()
	candidate["Current City"] = "Mumbai"
	candidate["Expected Salary"] = "90000"

	m, ok := ScorePair(candidate, backendVacancy())
	if !ok {
		t.Fatalf("location and salary mismatches must not reject the pair")
	}
	if m.Score != 40 {
		t.Fatalf("expected only the job title share, got %d", m.Score)
	}
}

func TestScorePairPreferredLocation(t *testing.T) {
	candidate := backendCandidate()
	candidate["Current City"] = "Nagpur"
	candidate["Preferred Location"] = "pune"
	candidate["Expected Salary"] = ""

	m, ok := ScorePair(candidate, backendVacancy())
	if !ok {
		t.Fatalf("expected match")
	}
	if m.Score != 70 {
		t.Fatalf("expected 40 + 30, got %d", m.Score)
	}
}

func TestScorePairOptionalBonus(t *testing.T) {
	candidate := sheet.Row{
		"Candidate ID":      "C6",
		"Job Preference 1":  "Backend Developer",
		"Technical Skills":  "SQL Go",
		"Graduation Degree": "B.Tech",
		"Experience Years":  "1",
	}
	vacancy := sheet.Row{
		"CID":                 "CID04",
		"Job Title":           "Backend Developer",
		"Skills Required":     "go sql",
		"Education Required":  "B.Tech",
		"Experience Required": "10",
	}

	m, ok := ScorePair(candidate, vacancy)
	if !ok {
		t.Fatalf("expected match")
	}
	// Experience 1 vs 10 is out of tolerance and stays out of the average.
	if m.Score != 60 {
		t.Fatalf("expected 40 + 100*0.2, got %d", m.Score)
	}
}

func TestScorePairScoreIsCapped(t *testing.T) {
	candidate := backendCandidate()
	candidate["Expected Salary"] = "52000"
	candidate["Technical Skills"] = "go"
	vacancy := backendVacancy()
	vacancy["Skills Required"] = "go"

	m, ok := ScorePair(candidate, vacancy)
	if !ok {
		t.Fatalf("expected match")
	}
	if m.Score != 100 {
		t.Fatalf("expected score capped at 100, got %d", m.Score)
	}
}

func TestScorePairDisplayFallbacks(t *testing.T) {
	vacancy := backendVacancy()
	delete(vacancy, "Company Name")
	vacancy["Company Name_x"] = "Acme (sheet)"
	vacancy["Company Name_y"] = "Acme Softworks Pvt Ltd"
	vacancy["Contact Number_x"] = "98220 00000"
	vacancy["Contact Person"] = "R. Kulkarni"
	vacancy["Industry"] = "IT"

	m, ok := ScorePair(backendCandidate(), vacancy)
	if !ok {
		t.Fatalf("expected match")
	}

	if m.CompanyName != "Acme Softworks Pvt Ltd" {
		t.Fatalf("expected joined company name, got %q", m.CompanyName)
	}
	if m.Phone != "98220 00000" {
		t.Fatalf("expected fallback phone, got %q", m.Phone)
	}
	if m.Contact != "R. Kulkarni" || m.Industry != "IT" {
		t.Fatalf("unexpected contact fields: %+v", m)
	}
}
