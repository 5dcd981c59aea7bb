package candidate

// Division buckets a candidate by specialty.
const (
	DivisionSpecialist = "specialist"
	DivisionGeneral    = "general"
)

// Store column names for the Candidates table.
const (
	fieldGPRecordID      = "GP Record ID"
	fieldProfileSummary  = "AI Profile Summary"
	fieldIMCStatus       = "IMC Registration Status"
	fieldDivision        = "Division"
	fieldExperience      = "Experience Summary"
	fieldExperienceYears = "Experience Years"
	fieldDetailedExp     = "Detailed Experience"
	fieldAreasOfInterest = "Areas of Interest"
	fieldLanguages       = "Language Proficiency"
	fieldSessionsMin     = "Sessions per week (min)"
	fieldSessionsMax     = "Sessions per Week (max)"
	fieldAvailability    = "Availability"
	fieldSalaryMin       = "Salary min"
	fieldSalaryMax       = "Salary max"
	fieldCurrency        = "Currency"
	fieldSalaryPeriod    = "Salary period"
	fieldGMSInterest     = "GMS Interested"
	fieldStatus          = "Status"
)

// Candidate is the normalized, output-only view of one candidate record.
type Candidate struct {
	ID                 string             `json:"id"`
	GPCustomID         string             `json:"gpCustomId"`
	AreaOfInterest     []string           `json:"areaOfInterest"`
	ExperienceYears    float64            `json:"experienceYears"`
	ExperienceSummary  string             `json:"experienceSummary"`
	DetailedExperience string             `json:"detailedExperience"`
	Availability       Availability       `json:"availability"`
	ProfileSummary     string             `json:"profileSummary"`
	IMCRegistration    bool               `json:"imcRegistration"`
	Division           string             `json:"division"`
	Languages          []string           `json:"languages"`
	SalaryExpectations SalaryExpectations `json:"salaryExpectations"`
	GMSInterest        string             `json:"gmsInterest"`
}

type Availability struct {
	SessionsPerWeek SessionsPerWeek `json:"sessionsPerWeek"`
	StartDate       string          `json:"startDate"`
	Details         string          `json:"details"`
}

type SessionsPerWeek struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type SalaryExpectations struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
	Period   string  `json:"period"`
}
