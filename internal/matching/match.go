package matching

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
)

// Match is a scored pairing of one candidate with one vacancy.
type Match struct {
	CandidateID string `json:"candidate_id"`
	FullName    string `json:"full_name"`
	CompanyName string `json:"company_name"`
	CID         string `json:"cid"`
	JobTitle    string `json:"job_title"`
	Score       int    `json:"match_score"`
	Industry    string `json:"industry"`
	Contact     string `json:"contact"`
	Phone       string `json:"phone"`
	Salary      string `json:"salary"`
}

// Label is a one-line description used in prompts and logs.
func (m Match) Label() string {
	return fmt.Sprintf("%s %s -> %s (CID: %s) / %s / %d%%",
		m.CandidateID, m.FullName, m.CompanyName, m.CID, m.JobTitle, m.Score)
}

// csvHeaders mirrors the columns of the match results table.
var csvHeaders = []string{
	"Candidate ID", "Full Name", "Company Name", "CID", "Job Title",
	"Match Score", "Industry", "Contact", "Phone", "Salary",
}

// WriteCSV writes the matches as a CSV table with a header line.
func WriteCSV(w io.Writer, matches []Match) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeaders); err != nil {
		return err
	}
	for _, m := range matches {
		record := []string{
			m.CandidateID, m.FullName, m.CompanyName, m.CID, m.JobTitle,
			strconv.Itoa(m.Score), m.Industry, m.Contact, m.Phone, m.Salary,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DumpToTmpFile writes the matches as indented JSON into a temporary file and returns its name.
func DumpToTmpFile(matches []Match) (string, error) {
	file, err := os.CreateTemp("", "matches_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(matches); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ReportByCompany groups the matches by "<company> (<CID>)".
func ReportByCompany(matches []Match) map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, m := range matches {
		key := fmt.Sprintf("%s (%s)", m.CompanyName, m.CID)
		report[key] = append(report[key], map[string]string{
			"candidate": fmt.Sprintf("%s (%s)", m.FullName, m.CandidateID),
			"job_title": m.JobTitle,
			"score":     strconv.Itoa(m.Score),
			"salary":    m.Salary,
			"industry":  m.Industry,
			"contact":   fmt.Sprintf("%s (%s)", m.Contact, m.Phone),
		})
	}
	return report
}

// sortByScore orders matches by descending score, keeping input order for equal scores.
func sortByScore(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
}
