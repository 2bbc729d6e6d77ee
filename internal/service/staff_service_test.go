package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dulagbps/records-service/internal/auth"
	apperrors "github.com/dulagbps/records-service/pkg/util"
)

func newStaffServiceUnderTest() (*StaffService, *memStaffRepo, *AuthService) {
	repo := newMemStaffRepo()
	creds := NewAuthService(testAuthConfig(), repo, auth.NewMemoryDenylist())
	return NewStaffService(repo, creds), repo, creds
}

func validStaffInput() StaffInput {
	return StaffInput{
		StaffID:       "BRGY-010",
		FullName:      "Pedro Penduko",
		Position:      "Treasurer",
		ContactNumber: "09171234567",
		Email:         "Pedro@Example.com",
		Username:      "pedro",
		Password:      "a-strong-password",
	}
}

func TestStaffCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates with derived credentials and fresh qr secret", func(t *testing.T) {
		svc, repo, _ := newStaffServiceUnderTest()
		staff, err := svc.Create(ctx, validStaffInput())
		require.NoError(t, err)
		require.Equal(t, "pedro@example.com", staff.Email)
		require.False(t, staff.IsAdmin)
		require.NotNil(t, staff.QRSecret)
		require.NotEmpty(t, *staff.QRSecret)
		require.True(t, auth.VerifyPassword(staff.PasswordHash, "a-strong-password"))

		stored, err := repo.FindByStaffID(ctx, "BRGY-010")
		require.NoError(t, err)
		require.Equal(t, *staff.QRSecret, *stored.QRSecret)
	})

	t.Run("admin key password creates an admin", func(t *testing.T) {
		svc, _, _ := newStaffServiceUnderTest()
		in := validStaffInput()
		in.Password = "BOSS-KEY"
		staff, err := svc.Create(ctx, in)
		require.NoError(t, err)
		require.True(t, staff.IsAdmin)
	})

	t.Run("missing field rejected", func(t *testing.T) {
		svc, _, _ := newStaffServiceUnderTest()
		in := validStaffInput()
		in.Position = ""
		_, err := svc.Create(ctx, in)
		var de *apperrors.DomainError
		require.ErrorAs(t, err, &de)
		require.Equal(t, "VALIDATION_FAILED", de.Code)
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		svc, _, _ := newStaffServiceUnderTest()
		in := validStaffInput()
		in.Email = "not-an-email"
		_, err := svc.Create(ctx, in)
		var de *apperrors.DomainError
		require.ErrorAs(t, err, &de)
		require.Equal(t, "VALIDATION_FAILED", de.Code)
	})

	t.Run("duplicate username names the field", func(t *testing.T) {
		svc, _, _ := newStaffServiceUnderTest()
		_, err := svc.Create(ctx, validStaffInput())
		require.NoError(t, err)

		in := validStaffInput()
		in.StaffID = "BRGY-011"
		in.Email = "other@example.com"
		_, err = svc.Create(ctx, in)
		var de *apperrors.DomainError
		require.ErrorAs(t, err, &de)
		require.Equal(t, "CONFLICT", de.Code)
		require.Equal(t, "username", de.Details["field"])
	})

	t.Run("duplicate staff id names the field", func(t *testing.T) {
		svc, _, _ := newStaffServiceUnderTest()
		_, err := svc.Create(ctx, validStaffInput())
		require.NoError(t, err)

		in := validStaffInput()
		in.Email = "other@example.com"
		in.Username = "pedro2"
		_, err = svc.Create(ctx, in)
		var de *apperrors.DomainError
		require.ErrorAs(t, err, &de)
		require.Equal(t, "CONFLICT", de.Code)
		require.Equal(t, "staffId", de.Details["field"])
	})
}

func TestStaffUpdate(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*StaffService, *memStaffRepo) {
		t.Helper()
		svc, repo, _ := newStaffServiceUnderTest()
		_, err := svc.Create(ctx, validStaffInput())
		require.NoError(t, err)
		return svc, repo
	}

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		svc, _ := setup(t)
		position := "Captain"
		staff, passwordChanged, err := svc.Update(ctx, "BRGY-010", StaffUpdate{Position: &position})
		require.NoError(t, err)
		require.False(t, passwordChanged)
		require.Equal(t, "Captain", staff.Position)
		require.Equal(t, "Pedro Penduko", staff.FullName)
	})

	t.Run("password change rederives the admin bit", func(t *testing.T) {
		svc, repo := setup(t)
		password := "BOSS-KEY"
		staff, passwordChanged, err := svc.Update(ctx, "BRGY-010", StaffUpdate{Password: &password})
		require.NoError(t, err)
		require.True(t, passwordChanged)
		require.True(t, staff.IsAdmin)

		back := "an-ordinary-password"
		staff, _, err = svc.Update(ctx, "BRGY-010", StaffUpdate{Password: &back})
		require.NoError(t, err)
		require.False(t, staff.IsAdmin)

		stored, err := repo.FindByStaffID(ctx, "BRGY-010")
		require.NoError(t, err)
		require.True(t, auth.VerifyPassword(stored.PasswordHash, back))
	})

	t.Run("update never exposes credentials", func(t *testing.T) {
		svc, _ := setup(t)
		name := "Pedro P."
		staff, _, err := svc.Update(ctx, "BRGY-010", StaffUpdate{FullName: &name})
		require.NoError(t, err)
		require.Empty(t, staff.PasswordHash)
		require.Nil(t, staff.QRSecret)
	})

	t.Run("setting the same username is not a conflict", func(t *testing.T) {
		svc, _ := setup(t)
		same := "PEDRO"
		_, _, err := svc.Update(ctx, "BRGY-010", StaffUpdate{Username: &same})
		require.NoError(t, err)
	})

	t.Run("taking another record's email conflicts", func(t *testing.T) {
		svc, _ := setup(t)
		other := validStaffInput()
		other.StaffID = "BRGY-011"
		other.Email = "taken@example.com"
		other.Username = "maria"
		_, err := svc.Create(ctx, other)
		require.NoError(t, err)

		email := "taken@example.com"
		_, _, err = svc.Update(ctx, "BRGY-010", StaffUpdate{Email: &email})
		var de *apperrors.DomainError
		require.ErrorAs(t, err, &de)
		require.Equal(t, "CONFLICT", de.Code)
		require.Equal(t, "email", de.Details["field"])
	})
}

func TestStaffReadsAreSanitized(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newStaffServiceUnderTest()
	_, err := svc.Create(ctx, validStaffInput())
	require.NoError(t, err)

	staff, err := svc.Get(ctx, "BRGY-010")
	require.NoError(t, err)
	require.Empty(t, staff.PasswordHash)
	require.Nil(t, staff.QRSecret)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Empty(t, list[0].PasswordHash)
	require.Nil(t, list[0].QRSecret)
}

func TestRegenerateQRSecret(t *testing.T) {
	ctx := context.Background()
	svc, repo, creds := newStaffServiceUnderTest()
	created, err := svc.Create(ctx, validStaffInput())
	require.NoError(t, err)
	oldSecret := *created.QRSecret

	secret, err := svc.RegenerateQRSecret(ctx, "BRGY-010")
	require.NoError(t, err)
	require.NotEqual(t, oldSecret, secret)

	stored, err := repo.FindByStaffID(ctx, "BRGY-010")
	require.NoError(t, err)
	require.Equal(t, secret, *stored.QRSecret)

	// The old secret stops authenticating immediately.
	_, _, _, err = creds.LoginQR(ctx, oldSecret)
	require.ErrorIs(t, err, ErrInvalidCredentials)
	staff, _, _, err := creds.LoginQR(ctx, secret)
	require.NoError(t, err)
	require.Equal(t, "BRGY-010", staff.StaffID)
}
