package domain

// CaseRecord is the form payload for one legal case
// Field presence is all that matters here; values are forwarded as typed properties
type CaseRecord struct {
	Title      string   `json:"title" validate:"required,max=2000" example:"Roe v. Wade"`
	CaseNumber string   `json:"caseNumber,omitempty" validate:"max=2000" example:"CASE-2025-001"`
	Court      string   `json:"court,omitempty" validate:"max=2000"`
	Judge      string   `json:"judge,omitempty" validate:"max=2000"`
	Date       string   `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02" example:"2025-09-03"`
	Status     string   `json:"status,omitempty" validate:"max=100" example:"Active"`
	Parties    string   `json:"parties,omitempty" validate:"max=2000"`
	Type       string   `json:"type,omitempty" validate:"max=100" example:"Civil"`
	Summary    string   `json:"summary,omitempty"`
	Outcome    string   `json:"outcome,omitempty"`
	Tags       []string `json:"tags,omitempty" validate:"max=50,dive,max=100"`
	Priority   string   `json:"priority,omitempty" validate:"max=100" example:"High"`
}

// Property names used on the upstream data source for CaseRecord fields
const (
	PropTitle      = "Title"
	PropCaseNumber = "Case Number"
	PropCourt      = "Court"
	PropJudge      = "Judge"
	PropDate       = "Date"
	PropStatus     = "Status"
	PropParties    = "Parties"
	PropType       = "Type"
	PropSummary    = "Summary"
	PropOutcome    = "Outcome"
	PropTags       = "Tags"
	PropPriority   = "Priority"
)
