package service

import (
	"context"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/dulagbps/records-service/internal/domain"
	"github.com/dulagbps/records-service/internal/repository"
	apperrors "github.com/dulagbps/records-service/pkg/util"
)

// StaffService owns staff-directory management. Creation and password
// changes delegate credential derivation to the auth service so the admin
// bit is always recomputed, never taken from the request.
type StaffService struct {
	staff repository.StaffRepository
	creds *AuthService
}

// StaffInput carries the fields accepted when creating a staff member.
type StaffInput struct {
	StaffID       string
	FullName      string
	Position      string
	ContactNumber string
	Email         string
	Username      string
	Password      string
}

// StaffUpdate carries the optional fields accepted on update. Nil means
// leave unchanged.
type StaffUpdate struct {
	FullName      *string
	Position      *string
	ContactNumber *string
	Email         *string
	Username      *string
	Password      *string
}

// NewStaffService builds the service.
func NewStaffService(staff repository.StaffRepository, creds *AuthService) *StaffService {
	return &StaffService{staff: staff, creds: creds}
}

// Create registers a new staff member. The QR secret is generated here,
// once, and the returned record is the only place it is ever exposed.
func (s *StaffService) Create(ctx context.Context, in StaffInput) (*domain.Staff, error) {
	if in.StaffID == "" || in.FullName == "" || in.Position == "" || in.ContactNumber == "" ||
		in.Email == "" || in.Username == "" || in.Password == "" {
		return nil, apperrors.NewValidationError("all fields are required", nil)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, apperrors.NewValidationError("invalid email address", nil)
	}

	if field, err := s.staff.FindConflict(ctx, in.StaffID, in.Email, in.Username, ""); err != nil {
		return nil, err
	} else if field != "" {
		return nil, apperrors.NewDuplicateKey(field)
	}

	hash, isAdmin, err := s.creds.NewPasswordCredential(in.Password)
	if err != nil {
		return nil, err
	}

	qrSecret := uuid.NewString()
	staff := &domain.Staff{
		StaffID:       in.StaffID,
		FullName:      in.FullName,
		Position:      in.Position,
		ContactNumber: in.ContactNumber,
		Email:         strings.ToLower(in.Email),
		Username:      in.Username,
		PasswordHash:  hash,
		IsAdmin:       isAdmin,
		QRSecret:      &qrSecret,
	}
	if err := s.staff.Create(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// Update applies a partial staff update, re-checking uniqueness for changed
// identifiers and re-deriving the admin bit when the password changes.
// Returns true when the password was changed so the handler can revoke the
// presenting session.
func (s *StaffService) Update(ctx context.Context, staffID string, in StaffUpdate) (*domain.Staff, bool, error) {
	staff, err := s.staff.FindByStaffID(ctx, staffID)
	if err != nil {
		return nil, false, err
	}

	checkEmail, checkUsername := "", ""
	if in.Email != nil && !strings.EqualFold(*in.Email, staff.Email) {
		if _, err := mail.ParseAddress(*in.Email); err != nil {
			return nil, false, apperrors.NewValidationError("invalid email address", nil)
		}
		checkEmail = *in.Email
	}
	if in.Username != nil && !strings.EqualFold(*in.Username, staff.Username) {
		checkUsername = *in.Username
	}
	if checkEmail != "" || checkUsername != "" {
		if field, err := s.staff.FindConflict(ctx, "", checkEmail, checkUsername, staffID); err != nil {
			return nil, false, err
		} else if field != "" {
			return nil, false, apperrors.NewDuplicateKey(field)
		}
	}

	if in.FullName != nil {
		staff.FullName = *in.FullName
	}
	if in.Position != nil {
		staff.Position = *in.Position
	}
	if in.ContactNumber != nil {
		staff.ContactNumber = *in.ContactNumber
	}
	if checkEmail != "" {
		staff.Email = strings.ToLower(checkEmail)
	}
	if checkUsername != "" {
		staff.Username = checkUsername
	}

	passwordChanged := false
	if in.Password != nil && *in.Password != "" {
		hash, isAdmin, err := s.creds.NewPasswordCredential(*in.Password)
		if err != nil {
			return nil, false, err
		}
		staff.PasswordHash = hash
		staff.IsAdmin = isAdmin
		passwordChanged = true
	}

	if err := s.staff.Update(ctx, staff); err != nil {
		return nil, false, err
	}
	return staff.Sanitized(), passwordChanged, nil
}

// Delete removes a staff member from the directory. Outstanding tokens for
// the deleted subject fail at the gate on next use.
func (s *StaffService) Delete(ctx context.Context, staffID string) error {
	return s.staff.Delete(ctx, staffID)
}

// Get returns a single staff member without credentials.
func (s *StaffService) Get(ctx context.Context, staffID string) (*domain.Staff, error) {
	staff, err := s.staff.FindByStaffID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	return staff.Sanitized(), nil
}

// List returns all staff members without credentials, ordered by staff id.
func (s *StaffService) List(ctx context.Context) ([]domain.Staff, error) {
	list, err := s.staff.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i] = *list[i].Sanitized()
	}
	return list, nil
}

// RegenerateQRSecret replaces the staff member's QR secret. The old secret
// stops authenticating immediately; the new one is returned exactly once.
func (s *StaffService) RegenerateQRSecret(ctx context.Context, staffID string) (string, error) {
	staff, err := s.staff.FindByStaffID(ctx, staffID)
	if err != nil {
		return "", err
	}
	secret := uuid.NewString()
	staff.QRSecret = &secret
	if err := s.staff.Update(ctx, staff); err != nil {
		return "", err
	}
	return secret, nil
}
