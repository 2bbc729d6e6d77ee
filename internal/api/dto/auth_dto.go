package dto

import (
	"time"

	"github.com/dulagbps/records-service/internal/domain"
)

// LoginRequest payload for username/password login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// QRLoginRequest payload for QR-code login.
type QRLoginRequest struct {
	QRSecret string `json:"qrSecret"`
}

// AuthResponse carries an issued session token.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// StaffResponse is the external shape of a staff identity. The password
// hash is never present; QRSecret is set only on the create-staff response.
type StaffResponse struct {
	StaffID       string    `json:"staffId"`
	FullName      string    `json:"fullName"`
	Position      string    `json:"position"`
	ContactNumber string    `json:"contactNumber"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	IsAdmin       bool      `json:"isAdmin"`
	QRSecret      string    `json:"qrSecret,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewStaffResponse maps a sanitized staff record.
func NewStaffResponse(staff *domain.Staff) StaffResponse {
	return StaffResponse{
		StaffID:       staff.StaffID,
		FullName:      staff.FullName,
		Position:      staff.Position,
		ContactNumber: staff.ContactNumber,
		Email:         staff.Email,
		Username:      staff.Username,
		IsAdmin:       staff.IsAdmin,
		CreatedAt:     staff.CreatedAt,
		UpdatedAt:     staff.UpdatedAt,
	}
}
