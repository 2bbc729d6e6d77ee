package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/dulagbps/records-service/internal/auth"
	"github.com/dulagbps/records-service/internal/config"
	"github.com/dulagbps/records-service/internal/domain"
)

// memStaffRepo is an in-memory credential store used across service tests.
type memStaffRepo struct {
	byID map[string]*domain.Staff
}

func newMemStaffRepo() *memStaffRepo {
	return &memStaffRepo{byID: make(map[string]*domain.Staff)}
}

func (r *memStaffRepo) Create(_ context.Context, staff *domain.Staff) error {
	copied := *staff
	r.byID[staff.StaffID] = &copied
	return nil
}

func (r *memStaffRepo) Update(_ context.Context, staff *domain.Staff) error {
	copied := *staff
	r.byID[staff.StaffID] = &copied
	return nil
}

func (r *memStaffRepo) Delete(_ context.Context, staffID string) error {
	if _, ok := r.byID[staffID]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, staffID)
	return nil
}

func (r *memStaffRepo) FindByStaffID(_ context.Context, staffID string) (*domain.Staff, error) {
	staff, ok := r.byID[staffID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *staff
	return &copied, nil
}

func (r *memStaffRepo) FindByUsername(_ context.Context, username string) (*domain.Staff, error) {
	for _, staff := range r.byID {
		if staff.Username == username {
			copied := *staff
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memStaffRepo) FindByQRSecret(_ context.Context, secret string) (*domain.Staff, error) {
	for _, staff := range r.byID {
		if staff.QRSecret != nil && *staff.QRSecret == secret {
			copied := *staff
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memStaffRepo) FindConflict(_ context.Context, staffID, email, username, excludingStaffID string) (string, error) {
	for _, staff := range r.byID {
		if excludingStaffID != "" && staff.StaffID == excludingStaffID {
			continue
		}
		switch {
		case staffID != "" && staff.StaffID == staffID:
			return "staffId", nil
		case email != "" && staff.Email == email:
			return "email", nil
		case username != "" && staff.Username == username:
			return "username", nil
		}
	}
	return "", nil
}

func (r *memStaffRepo) List(_ context.Context) ([]domain.Staff, error) {
	out := make([]domain.Staff, 0, len(r.byID))
	for _, staff := range r.byID {
		out = append(out, *staff)
	}
	return out, nil
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:             "service-test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            4,
		AdminKey:              "BOSS-KEY",
	}
}

func seedStaff(t *testing.T, repo *memStaffRepo, svc *AuthService, password string) *domain.Staff {
	t.Helper()
	hash, isAdmin, err := svc.NewPasswordCredential(password)
	require.NoError(t, err)
	qrSecret := "qr-secret-001"
	staff := &domain.Staff{
		StaffID:      "BRGY-001",
		FullName:     "Juana Dela Cruz",
		Position:     "Secretary",
		Email:        "juana@example.com",
		Username:     "juana",
		PasswordHash: hash,
		IsAdmin:      isAdmin,
		QRSecret:     &qrSecret,
	}
	require.NoError(t, repo.Create(context.Background(), staff))
	return staff
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	repo := newMemStaffRepo()
	svc := NewAuthService(testAuthConfig(), repo, auth.NewMemoryDenylist())
	seedStaff(t, repo, svc, "correct-password")

	t.Run("valid credentials", func(t *testing.T) {
		staff, token, expiresAt, err := svc.Login(ctx, "juana", "correct-password")
		require.NoError(t, err)
		require.Equal(t, "BRGY-001", staff.StaffID)
		require.Empty(t, staff.PasswordHash)
		require.Nil(t, staff.QRSecret)
		require.True(t, expiresAt.After(time.Now()))

		claims, err := svc.TokenManager().Verify(token)
		require.NoError(t, err)
		require.Equal(t, "BRGY-001", claims.StaffID)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, _, _, err := svc.Login(ctx, "nobody", "correct-password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, _, err := svc.Login(ctx, "juana", "wrong-password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown username and wrong password are indistinguishable", func(t *testing.T) {
		_, _, _, errUnknown := svc.Login(ctx, "nobody", "x")
		_, _, _, errWrong := svc.Login(ctx, "juana", "x")
		require.Equal(t, errUnknown.Error(), errWrong.Error())
	})
}

func TestLoginQR(t *testing.T) {
	ctx := context.Background()
	repo := newMemStaffRepo()
	svc := NewAuthService(testAuthConfig(), repo, auth.NewMemoryDenylist())
	seedStaff(t, repo, svc, "correct-password")

	t.Run("valid secret", func(t *testing.T) {
		staff, token, _, err := svc.LoginQR(ctx, "qr-secret-001")
		require.NoError(t, err)
		require.Equal(t, "BRGY-001", staff.StaffID)
		require.Nil(t, staff.QRSecret)

		claims, err := svc.TokenManager().Verify(token)
		require.NoError(t, err)
		require.Equal(t, "BRGY-001", claims.StaffID)
	})

	t.Run("unknown secret", func(t *testing.T) {
		_, _, _, err := svc.LoginQR(ctx, "never-issued")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("empty secret never matches unset records", func(t *testing.T) {
		bare := &domain.Staff{StaffID: "BRGY-002", Username: "bare", PasswordHash: "x"}
		require.NoError(t, repo.Create(ctx, bare))
		_, _, _, err := svc.LoginQR(ctx, "")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRefresh(t *testing.T) {
	repo := newMemStaffRepo()
	svc := NewAuthService(testAuthConfig(), repo, auth.NewMemoryDenylist())
	seedStaff(t, repo, svc, "correct-password")

	_, original, _, err := svc.Login(context.Background(), "juana", "correct-password")
	require.NoError(t, err)

	oldClaims, err := svc.TokenManager().Verify(original)
	require.NoError(t, err)

	refreshed, expiresAt, err := svc.Refresh("BRGY-001", oldClaims)
	require.NoError(t, err)
	require.True(t, expiresAt.After(time.Now()))

	// The old token stays valid; refresh mints an independent session that
	// outlives it even when both are issued within the same second.
	newClaims, err := svc.TokenManager().Verify(refreshed)
	require.NoError(t, err)
	require.Equal(t, oldClaims.StaffID, newClaims.StaffID)
	require.NotEqual(t, oldClaims.ID, newClaims.ID)
	require.True(t, newClaims.ExpiresAt.After(oldClaims.ExpiresAt.Time))
}

func TestRevokeToken(t *testing.T) {
	ctx := context.Background()
	repo := newMemStaffRepo()
	denylist := auth.NewMemoryDenylist()
	svc := NewAuthService(testAuthConfig(), repo, denylist)
	seedStaff(t, repo, svc, "correct-password")

	_, token, _, err := svc.Login(ctx, "juana", "correct-password")
	require.NoError(t, err)
	claims, err := svc.TokenManager().Verify(token)
	require.NoError(t, err)

	require.NoError(t, svc.RevokeToken(ctx, claims))

	revoked, err := denylist.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	require.True(t, revoked)
}

func TestNewPasswordCredential(t *testing.T) {
	repo := newMemStaffRepo()
	svc := NewAuthService(testAuthConfig(), repo, auth.NewMemoryDenylist())

	t.Run("regular password", func(t *testing.T) {
		hash, isAdmin, err := svc.NewPasswordCredential("ordinary-password")
		require.NoError(t, err)
		require.False(t, isAdmin)
		require.True(t, auth.VerifyPassword(hash, "ordinary-password"))
	})

	t.Run("admin bootstrap key grants the admin bit", func(t *testing.T) {
		hash, isAdmin, err := svc.NewPasswordCredential("BOSS-KEY")
		require.NoError(t, err)
		require.True(t, isAdmin)
		require.True(t, auth.VerifyPassword(hash, "BOSS-KEY"))
	})

	t.Run("empty admin key never grants admin", func(t *testing.T) {
		cfg := testAuthConfig()
		cfg.AdminKey = ""
		bare := NewAuthService(cfg, repo, auth.NewMemoryDenylist())
		_, isAdmin, err := bare.NewPasswordCredential("")
		require.NoError(t, err)
		require.False(t, isAdmin)
	})
}
