package domain

import "time"

// Gender enumerates accepted resident gender values.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// MaritalStatus enumerates accepted civil-status values.
type MaritalStatus string

const (
	MaritalSingle    MaritalStatus = "Single"
	MaritalMarried   MaritalStatus = "Married"
	MaritalWidowed   MaritalStatus = "Widowed"
	MaritalSeparated MaritalStatus = "Separated"
)

// Resident is a registered barangay resident.
type Resident struct {
	ResidentID    string
	FullName      string
	Birthdate     time.Time
	Gender        Gender
	ContactNumber string
	Address       string
	MaritalStatus MaritalStatus
	Occupation    string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ValidGender reports whether g is one of the accepted values.
func ValidGender(g Gender) bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// ValidMaritalStatus reports whether m is one of the accepted values.
func ValidMaritalStatus(m MaritalStatus) bool {
	switch m {
	case MaritalSingle, MaritalMarried, MaritalWidowed, MaritalSeparated:
		return true
	}
	return false
}

// Age returns the resident's age in whole years as of now.
func (r *Resident) Age(now time.Time) int {
	age := now.Year() - r.Birthdate.Year()
	if now.Month() < r.Birthdate.Month() ||
		(now.Month() == r.Birthdate.Month() && now.Day() < r.Birthdate.Day()) {
		age--
	}
	return age
}
