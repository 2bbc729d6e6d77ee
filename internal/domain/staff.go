package domain

import "time"

// Staff is the authoritative directory record for one barangay staff member.
// StaffID is externally assigned and immutable after creation; Username and
// Email are unique case-insensitively. QRSecret is a static alternate
// credential, sparse across records but unique when present.
type Staff struct {
	StaffID       string
	FullName      string
	Position      string
	ContactNumber string
	Email         string
	Username      string
	PasswordHash  string
	IsAdmin       bool
	QRSecret      *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Sanitized returns a copy safe to hand to anything outside the credential
// core: the password hash and QR secret are both stripped.
func (s *Staff) Sanitized() *Staff {
	clean := *s
	clean.PasswordHash = ""
	clean.QRSecret = nil
	return &clean
}
