package matching

import (
	"fmt"

	"github.com/spigell/placement-desk/internal/sheet"
)

// Weights and thresholds of the candidate to vacancy rules. They are product-tuned and kept as is.
const (
	JobTitleWeight = 0.40
	LocationWeight = 0.30
	SalaryWeight   = 0.30
	OptionalWeight = 0.20

	// FieldThreshold is the score a single field has to exceed to count.
	FieldThreshold = 50
	// MinimumScore is the lowest composite score that is reported as a match.
	MinimumScore = 40
)

// Candidate sheet columns.
const (
	CandidateIDField       = "Candidate ID"
	CandidateNameField     = "Full Name"
	PreferredLocationField = "Preferred Location"
	CurrentCityField       = "Current City"
	ExpectedSalaryField    = "Expected Salary"
	TechnicalSkillsField   = "Technical Skills"
	DegreeField            = "Graduation Degree"
	ExperienceYearsField   = "Experience Years"
	CandidateStatusField   = "Status"
)

// Vacancy sheet columns.
const (
	CIDField                = "CID"
	JobTitleField           = "Job Title"
	CityField               = "City"
	SalaryField             = "Salary"
	SkillsRequiredField     = "Skills Required"
	EducationRequiredField  = "Education Required"
	ExperienceRequiredField = "Experience Required"
	IndustryField           = "Industry"
	ContactPersonField      = "Contact Person"
	ContactNumberField      = "Contact Number"
	CompanyNameField        = "Company Name"
	VacancyStatusField      = "status"
)

const notAvailable = "N/A"

// Column fallbacks left behind by joins of the company and vacancy sheets.
var (
	companyNameFields   = []string{"Company Name_y", "Company Name_x", CompanyNameField}
	contactNumberFields = []string{"Contact Number_y", "Contact Number_x", ContactNumberField}
)

// CandidateHeaders is the column layout of a new candidate sheet.
var CandidateHeaders = []string{
	CandidateIDField, CandidateNameField, "Job Pref 1", "Job Pref 2", "Job Pref 3",
	PreferredLocationField, CurrentCityField, ExpectedSalaryField, TechnicalSkillsField,
	DegreeField, ExperienceYearsField, CandidateStatusField,
}

// VacancyHeaders is the column layout of a new vacancy sheet.
var VacancyHeaders = []string{
	CIDField, CompanyNameField, JobTitleField, CityField, SalaryField, SkillsRequiredField,
	EducationRequiredField, ExperienceRequiredField, IndustryField, ContactPersonField,
	ContactNumberField, VacancyStatusField,
}

// jobPreferenceFields returns the accepted column names of the n-th job preference.
func jobPreferenceFields(n int) []string {
	return []string{fmt.Sprintf("Job Pref %d", n), fmt.Sprintf("Job Preference %d", n)}
}

// ScorePair scores one candidate against one vacancy.
// The second return value is false when the pair is rejected, either by the job title gate
// or because the composite score stays below MinimumScore.
func ScorePair(candidate, vacancy sheet.Row) (Match, bool) {
	title := vacancy.Get(JobTitleField)

	jobTitle := 0
	for n := 1; n <= 3; n++ {
		pref := candidate.Lookup("", jobPreferenceFields(n)...)
		if s := FieldScore(pref, title); s > jobTitle {
			jobTitle = s
		}
	}

	// Job title relevance is mandatory.
	if jobTitle <= FieldThreshold {
		return Match{}, false
	}

	critical := float64(jobTitle) * JobTitleWeight

	location := max(
		FieldScore(candidate.Get(PreferredLocationField), vacancy.Get(CityField)),
		FieldScore(candidate.Get(CurrentCityField), vacancy.Get(CityField)),
	)
	if location > FieldThreshold {
		critical += float64(location) * LocationWeight
	}

	salary := FieldScore(candidate.Get(ExpectedSalaryField), vacancy.Get(SalaryField))
	if salary > FieldThreshold {
		critical += float64(salary) * SalaryWeight
	}

	total := critical + optionalBonus(candidate, vacancy)
	score := int(total)
	if score < MinimumScore {
		return Match{}, false
	}

	return Match{
		CandidateID: candidate.Get(CandidateIDField),
		FullName:    candidate.Get(CandidateNameField),
		CompanyName: vacancy.Lookup("", companyNameFields...),
		CID:         vacancy.Get(CIDField),
		JobTitle:    title,
		Score:       min(score, 100),
		Industry:    vacancy.Lookup(notAvailable, IndustryField),
		Contact:     vacancy.Lookup(notAvailable, ContactPersonField),
		Phone:       vacancy.Lookup(notAvailable, contactNumberFields...),
		Salary:      vacancy.Lookup(notAvailable, SalaryField),
	}, true
}

// optionalBonus averages the optional fields that pass FieldThreshold and weights the average.
func optionalBonus(candidate, vacancy sheet.Row) float64 {
	pairs := [][2]string{
		{TechnicalSkillsField, SkillsRequiredField},
		{DegreeField, EducationRequiredField},
		{ExperienceYearsField, ExperienceRequiredField},
	}

	sum, n := 0, 0
	for _, p := range pairs {
		if s := FieldScore(candidate.Get(p[0]), vacancy.Get(p[1])); s > FieldThreshold {
			sum += s
			n++
		}
	}
	if n == 0 {
		return 0
	}

	return float64(sum) / float64(n) * OptionalWeight
}
