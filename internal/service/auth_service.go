package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dulagbps/records-service/internal/auth"
	"github.com/dulagbps/records-service/internal/config"
	"github.com/dulagbps/records-service/internal/domain"
	"github.com/dulagbps/records-service/internal/repository"
	apperrors "github.com/dulagbps/records-service/pkg/util"
)

// ErrInvalidCredentials is returned identically for an unknown username, a
// wrong password and an unknown QR secret, so login responses never reveal
// which identifiers are provisioned.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService coordinates login, refresh and credential derivation.
type AuthService struct {
	staff      repository.StaffRepository
	tokens     *auth.TokenManager
	denylist   auth.Denylist
	bcryptCost int
	adminKey   string
}

// NewAuthService builds the service. The signing secret and admin key come
// from configuration loaded once at startup.
func NewAuthService(cfg config.AuthConfig, staff repository.StaffRepository, denylist auth.Denylist) *AuthService {
	return &AuthService{
		staff:      staff,
		tokens:     auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL()),
		denylist:   denylist,
		bcryptCost: cfg.BcryptCost,
		adminKey:   cfg.AdminKey,
	}
}

// Login authenticates by username and password and issues a session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Staff, string, time.Time, error) {
	staff, err := s.staff.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, ErrInvalidCredentials
		}
		return nil, "", time.Time{}, err
	}
	if !auth.VerifyPassword(staff.PasswordHash, password) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	return s.issueFor(staff)
}

// LoginQR authenticates by the staff member's static QR secret. On a match
// it behaves exactly like a successful password login.
func (s *AuthService) LoginQR(ctx context.Context, secret string) (*domain.Staff, string, time.Time, error) {
	if secret == "" {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	staff, err := s.staff.FindByQRSecret(ctx, secret)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, ErrInvalidCredentials
		}
		return nil, "", time.Time{}, err
	}
	return s.issueFor(staff)
}

// Refresh issues a brand-new token for an already-authenticated subject.
// The old token stays valid until its own expiry; the replacement always
// expires strictly later than the token that requested it.
func (s *AuthService) Refresh(staffID string, presented *auth.SessionClaims) (string, time.Time, error) {
	var (
		token     string
		expiresAt time.Time
		err       error
	)
	if presented != nil && presented.ExpiresAt != nil {
		token, expiresAt, err = s.tokens.Refresh(staffID, presented.ExpiresAt.Time)
	} else {
		token, expiresAt, err = s.tokens.Issue(staffID)
	}
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	return token, expiresAt, nil
}

// RevokeToken denylists the presented token until its natural expiry. Used
// when the caller changes a password, so the session that performed the
// change cannot be replayed if captured.
func (s *AuthService) RevokeToken(ctx context.Context, claims *auth.SessionClaims) error {
	if s.denylist == nil || claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	remaining := time.Until(claims.ExpiresAt.Time)
	return s.denylist.Revoke(ctx, claims.ID, remaining)
}

// NewPasswordCredential hashes a plaintext password and derives the admin
// bit: the bit is set iff the plaintext equals the configured admin
// bootstrap key. This derivation is the only admin-granting mechanism, and
// it runs every time a password is set so the bit is never trusted from
// client input.
func (s *AuthService) NewPasswordCredential(plaintext string) (string, bool, error) {
	hash, err := auth.HashPassword(plaintext, s.bcryptCost)
	if err != nil {
		return "", false, apperrors.NewInternalError(err)
	}
	isAdmin := s.adminKey != "" && plaintext == s.adminKey
	return hash, isAdmin, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

func (s *AuthService) issueFor(staff *domain.Staff) (*domain.Staff, string, time.Time, error) {
	token, expiresAt, err := s.tokens.Issue(staff.StaffID)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return staff.Sanitized(), token, expiresAt, nil
}
