package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/spigell/placement-desk/internal/filtering"
	"github.com/spigell/placement-desk/internal/interview"
	"github.com/spigell/placement-desk/internal/matching"
	"github.com/spigell/placement-desk/internal/sheet"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginTop(1).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7"))

	scoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true)
)

func printMatches(w io.Writer, matches []matching.Match) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Matches (%d)", len(matches))))

	current := ""
	for _, m := range matches {
		if m.CandidateID != current {
			current = m.CandidateID
			fmt.Fprintf(w, "%s %s\n", labelStyle.Render(m.CandidateID), valueStyle.Render(m.FullName))
		}
		fmt.Fprintf(w, "  %s %s / %s (%s) / %s\n",
			scoreStyle.Render(fmt.Sprintf("%3d%%", m.Score)),
			valueStyle.Render(m.JobTitle),
			valueStyle.Render(m.CompanyName),
			m.CID,
			valueStyle.Render(m.Salary),
		)
	}
}

func printRecords(w io.Writer, title string, records []interview.Record) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s (%d)", title, len(records))))

	for _, r := range records {
		fmt.Fprintf(w, "%s %s -> %s (%s) / %s / %s / %s\n",
			labelStyle.Render(r.RecordID),
			valueStyle.Render(r.FullName),
			valueStyle.Render(r.CompanyName),
			r.CID,
			valueStyle.Render(r.JobTitle),
			scoreStyle.Render(r.MatchScore),
			valueStyle.Render(r.InterviewStatus+"/"+r.ResultStatus),
		)
	}
}

func printSummary(w io.Writer, s interview.Summary) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Summary (%d records)", s.Total)))
	printCounts(w, "Interview status", s.ByInterviewStatus)
	printCounts(w, "Result status", s.ByResultStatus)
}

func printCounts(w io.Writer, label string, counts map[string]int) {
	fmt.Fprintln(w, labelStyle.Render(label+":"))

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(w, "  %s %s\n", valueStyle.Render(k), scoreStyle.Render(fmt.Sprint(counts[k])))
	}
}

type namedTable struct {
	name  string
	table *sheet.Table
}

// printValues prints the values a column filter accepts for every table holding column.
// It returns the number of tables printed.
func printValues(w io.Writer, column string, tables []namedTable) int {
	printed := 0
	for _, nt := range tables {
		if !nt.table.HasColumn(column) {
			continue
		}
		printed++

		values := nt.table.UniqueValues(column)
		fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s / %s (%d)", nt.name, column, len(values))))
		fmt.Fprintf(w, "  %s\n", labelStyle.Render(filtering.AllValues))
		for _, v := range values {
			fmt.Fprintf(w, "  %s\n", valueStyle.Render(v))
		}
	}
	return printed
}
