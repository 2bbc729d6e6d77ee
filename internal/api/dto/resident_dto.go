package dto

import (
	"time"

	"github.com/dulagbps/records-service/internal/domain"
)

// ResidentCreateRequest payload.
type ResidentCreateRequest struct {
	ResidentID    string `json:"residentId"`
	FullName      string `json:"fullName"`
	Birthdate     Date   `json:"birthdate"`
	Gender        string `json:"gender"`
	ContactNumber string `json:"contactNumber"`
	Address       string `json:"address"`
	MaritalStatus string `json:"maritalStatus"`
	Occupation    string `json:"occupation"`
}

// ResidentUpdateRequest payload for partial updates.
type ResidentUpdateRequest struct {
	FullName      *string `json:"fullName"`
	Birthdate     *Date   `json:"birthdate"`
	Gender        *string `json:"gender"`
	ContactNumber *string `json:"contactNumber"`
	Address       *string `json:"address"`
	MaritalStatus *string `json:"maritalStatus"`
	Occupation    *string `json:"occupation"`
}

// ResidentResponse is the external shape of a resident record.
type ResidentResponse struct {
	ResidentID    string    `json:"residentId"`
	FullName      string    `json:"fullName"`
	Birthdate     time.Time `json:"birthdate"`
	Gender        string    `json:"gender"`
	ContactNumber string    `json:"contactNumber"`
	Address       string    `json:"address"`
	MaritalStatus string    `json:"maritalStatus"`
	Occupation    string    `json:"occupation"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewResidentResponse maps a resident record.
func NewResidentResponse(resident *domain.Resident) ResidentResponse {
	return ResidentResponse{
		ResidentID:    resident.ResidentID,
		FullName:      resident.FullName,
		Birthdate:     resident.Birthdate,
		Gender:        string(resident.Gender),
		ContactNumber: resident.ContactNumber,
		Address:       resident.Address,
		MaritalStatus: string(resident.MaritalStatus),
		Occupation:    resident.Occupation,
		CreatedAt:     resident.CreatedAt,
		UpdatedAt:     resident.UpdatedAt,
	}
}
