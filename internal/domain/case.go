package domain

import "time"

// CaseType enumerates blotter case categories.
type CaseType string

const (
	CaseTypeInvestigation CaseType = "Investigation"
	CaseTypeViolence      CaseType = "Violence"
	CaseTypeOthers        CaseType = "Others"
)

// CaseStatus enumerates case lifecycle states.
type CaseStatus string

const (
	CaseStatusPending  CaseStatus = "Pending"
	CaseStatusOngoing  CaseStatus = "Ongoing"
	CaseStatusResolved CaseStatus = "Resolved"
)

// Case is a filed barangay case record.
type Case struct {
	CaseID          string
	CaseName        string
	CaseType        CaseType
	CaseStatus      CaseStatus
	ComplainantName string
	DateFiled       time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ValidCaseType reports whether t is one of the accepted values.
func ValidCaseType(t CaseType) bool {
	switch t {
	case CaseTypeInvestigation, CaseTypeViolence, CaseTypeOthers:
		return true
	}
	return false
}

// ValidCaseStatus reports whether s is one of the accepted values.
func ValidCaseStatus(s CaseStatus) bool {
	switch s {
	case CaseStatusPending, CaseStatusOngoing, CaseStatusResolved:
		return true
	}
	return false
}
