package dto

import (
	"time"

	"github.com/dulagbps/records-service/internal/domain"
)

// CaseCreateRequest payload.
type CaseCreateRequest struct {
	CaseID          string `json:"caseId"`
	CaseName        string `json:"caseName"`
	CaseType        string `json:"caseType"`
	CaseStatus      string `json:"caseStatus"`
	ComplainantName string `json:"complainantName"`
	DateFiled       Date   `json:"dateFiled"`
}

// CaseUpdateRequest payload for partial updates.
type CaseUpdateRequest struct {
	CaseName        *string `json:"caseName"`
	CaseType        *string `json:"caseType"`
	CaseStatus      *string `json:"caseStatus"`
	ComplainantName *string `json:"complainantName"`
	DateFiled       *Date   `json:"dateFiled"`
}

// CaseResponse is the external shape of a case record.
type CaseResponse struct {
	CaseID          string    `json:"caseId"`
	CaseName        string    `json:"caseName"`
	CaseType        string    `json:"caseType"`
	CaseStatus      string    `json:"caseStatus"`
	ComplainantName string    `json:"complainantName"`
	DateFiled       time.Time `json:"dateFiled"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// NewCaseResponse maps a case record.
func NewCaseResponse(c *domain.Case) CaseResponse {
	return CaseResponse{
		CaseID:          c.CaseID,
		CaseName:        c.CaseName,
		CaseType:        string(c.CaseType),
		CaseStatus:      string(c.CaseStatus),
		ComplainantName: c.ComplainantName,
		DateFiled:       c.DateFiled,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
