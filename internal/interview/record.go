package interview

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/placement-desk/internal/sheet"
)

// Interview record sheet columns.
const (
	RecordIDField        = "Record ID"
	CreatedDateField     = "Created Date"
	CandidateIDField     = "Candidate ID"
	FullNameField        = "Full Name"
	CompanyNameField     = "Company Name"
	CIDField             = "CID"
	JobTitleField        = "Job Title"
	MatchScoreField      = "Match Score"
	InterviewStatusField = "Interview Status"
	InterviewDateField   = "Interview Date"
	InterviewTimeField   = "Interview Time"
	InterviewRoundField  = "Interview Round"
	ResultStatusField    = "Result Status"
	SalaryOfferedField   = "Salary Offered"
	JoiningDateField     = "Joining Date"
	RemarksField         = "Remarks"
	LastUpdatedField     = "Last Updated"
	UpdatedByField       = "Updated By"
)

// Headers is the column layout of the interview record sheet.
var Headers = []string{
	RecordIDField, CreatedDateField, CandidateIDField, FullNameField, CompanyNameField,
	CIDField, JobTitleField, MatchScoreField, InterviewStatusField, InterviewDateField,
	InterviewTimeField, InterviewRoundField, ResultStatusField, SalaryOfferedField,
	JoiningDateField, RemarksField, LastUpdatedField, UpdatedByField,
}

// Positions of the columns read by the exporter.
const (
	recordIDColumn    = 0
	candidateIDColumn = 2
	cidColumn         = 5
)

// Interview and result statuses.
const (
	StatusMatched            = "Matched"
	StatusScheduled          = "Interview Scheduled"
	StatusCompleted          = "Interview Completed"
	ResultPending            = "Pending"
	ResultSelected           = "Selected"
	ResultRejected           = "Rejected"
	ResultCancelledSelection = "Cancelled due to Selection"
)

type Record struct {
	RecordID        string `mapstructure:"Record ID"`
	CreatedDate     string `mapstructure:"Created Date"`
	CandidateID     string `mapstructure:"Candidate ID"`
	FullName        string `mapstructure:"Full Name"`
	CompanyName     string `mapstructure:"Company Name"`
	CID             string `mapstructure:"CID"`
	JobTitle        string `mapstructure:"Job Title"`
	MatchScore      string `mapstructure:"Match Score"`
	InterviewStatus string `mapstructure:"Interview Status"`
	InterviewDate   string `mapstructure:"Interview Date"`
	InterviewTime   string `mapstructure:"Interview Time"`
	InterviewRound  string `mapstructure:"Interview Round"`
	ResultStatus    string `mapstructure:"Result Status"`
	SalaryOffered   string `mapstructure:"Salary Offered"`
	JoiningDate     string `mapstructure:"Joining Date"`
	Remarks         string `mapstructure:"Remarks"`
	LastUpdated     string `mapstructure:"Last Updated"`
	UpdatedBy       string `mapstructure:"Updated By"`
}

// ParseRecords decodes raw sheet values into records by header name.
// Unknown columns are ignored and missing ones stay empty.
func ParseRecords(values [][]string) ([]Record, error) {
	table := sheet.FromValues(values)

	records := make([]Record, 0, table.Len())
	for i, row := range table.Rows {
		var record Record
		if err := mapstructure.Decode(map[string]string(row), &record); err != nil {
			return nil, fmt.Errorf("decode record on row %d: %w", i+2, err)
		}
		records = append(records, record)
	}

	return records, nil
}
