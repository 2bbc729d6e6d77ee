package dto

// StaffCreateRequest payload for registering a staff member.
type StaffCreateRequest struct {
	StaffID       string `json:"staffId"`
	FullName      string `json:"fullName"`
	Position      string `json:"position"`
	ContactNumber string `json:"contactNumber"`
	Email         string `json:"email"`
	Username      string `json:"username"`
	Password      string `json:"password"`
}

// StaffUpdateRequest payload for partial staff updates. Absent fields are
// left unchanged; the admin bit is never accepted from the client.
type StaffUpdateRequest struct {
	FullName      *string `json:"fullName"`
	Position      *string `json:"position"`
	ContactNumber *string `json:"contactNumber"`
	Email         *string `json:"email"`
	Username      *string `json:"username"`
	Password      *string `json:"password"`
}

// QRSecretResponse carries a freshly regenerated QR secret, revealed once.
type QRSecretResponse struct {
	StaffID  string `json:"staffId"`
	QRSecret string `json:"qrSecret"`
}
