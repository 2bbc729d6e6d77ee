package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	apihttp "github.com/dulagbps/records-service/internal/api/http"
	"github.com/dulagbps/records-service/internal/api/http/handlers"
	"github.com/dulagbps/records-service/internal/auth"
	"github.com/dulagbps/records-service/internal/config"
	"github.com/dulagbps/records-service/internal/domain"
	"github.com/dulagbps/records-service/internal/events"
	"github.com/dulagbps/records-service/internal/observability"
	"github.com/dulagbps/records-service/internal/service"
)

type stubStaffRepo struct {
	byID map[string]*domain.Staff
}

func (r *stubStaffRepo) Create(_ context.Context, staff *domain.Staff) error {
	copied := *staff
	r.byID[staff.StaffID] = &copied
	return nil
}

func (r *stubStaffRepo) Update(_ context.Context, staff *domain.Staff) error {
	copied := *staff
	r.byID[staff.StaffID] = &copied
	return nil
}

func (r *stubStaffRepo) Delete(_ context.Context, staffID string) error {
	if _, ok := r.byID[staffID]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, staffID)
	return nil
}

func (r *stubStaffRepo) FindByStaffID(_ context.Context, staffID string) (*domain.Staff, error) {
	staff, ok := r.byID[staffID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *staff
	return &copied, nil
}

func (r *stubStaffRepo) FindByUsername(_ context.Context, username string) (*domain.Staff, error) {
	for _, staff := range r.byID {
		if staff.Username == username {
			copied := *staff
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubStaffRepo) FindByQRSecret(_ context.Context, secret string) (*domain.Staff, error) {
	for _, staff := range r.byID {
		if staff.QRSecret != nil && *staff.QRSecret == secret {
			copied := *staff
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubStaffRepo) FindConflict(_ context.Context, staffID, email, username, excludingStaffID string) (string, error) {
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

func (r *stubStaffRepo) List(_ context.Context) ([]domain.Staff, error) {
	out := make([]domain.Staff, 0, len(r.byID))
	for _, staff := range r.byID {
		out = append(out, *staff)
	}
	return out, nil
}

// newTestServer wires the real router with an in-memory credential store.
func newTestServer(t *testing.T) (*fiber.App, *service.AuthService) {
	t.Helper()
	return newTestServerWith(t, auth.NewMemoryDenylist(), zap.NewNop())
}

func newTestServerWith(t *testing.T, denylist auth.Denylist, logger *zap.Logger) (*fiber.App, *service.AuthService) {
	t.Helper()

	repo := &stubStaffRepo{byID: make(map[string]*domain.Staff)}
	cfg := config.AuthConfig{
		JWTSecret:             "flow-test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            4,
		AdminKey:              "BOSS-KEY",
	}
	authService := service.NewAuthService(cfg, repo, denylist)
	staffService := service.NewStaffService(repo, authService)
	dispatcher := events.NewInMemoryDispatcher()

	seed := func(staffID, username, password string) {
		hash, isAdmin, err := authService.NewPasswordCredential(password)
		require.NoError(t, err)
		qrSecret := "qr-" + staffID
		require.NoError(t, repo.Create(context.Background(), &domain.Staff{
			StaffID:      staffID,
			FullName:     "Seeded " + username,
			Position:     "Clerk",
			Email:        username + "@example.com",
			Username:     username,
			PasswordHash: hash,
			IsAdmin:      isAdmin,
			QRSecret:     &qrSecret,
		}))
	}
	seed("BRGY-001", "clerk", "clerk-password")
	seed("BRGY-999", "captain", "BOSS-KEY")

	app := fiber.New()
	apihttp.RegisterMiddlewares(app, logger, observability.NewMetrics(), 5*time.Second)
	apihttp.RegisterRoutes(app, apihttp.RouteConfig{
		Health:         handlers.NewHealthHandler("records-service", "test", nil, nil),
		Auth:           handlers.NewAuthHandler(authService),
		Staff:          handlers.NewStaffHandler(staffService, authService, logger),
		Residents:      handlers.NewResidentsHandler(service.NewResidentService(nil, dispatcher)),
		Cases:          handlers.NewCasesHandler(service.NewCaseService(nil, dispatcher)),
		Events:         handlers.NewEventsHandler(service.NewEventService(nil, dispatcher)),
		Announcements:  handlers.NewAnnouncementsHandler(service.NewAnnouncementService(nil, dispatcher), config.UploadConfig{}),
		Activities:     handlers.NewActivitiesHandler(service.NewActivityService(nil, logger, config.ActivityLogConfig{}), service.NewNotificationService(dispatcher, logger, config.NotificationConfig{})),
		AuthMiddleware: auth.NewMiddleware(authService.TokenManager(), denylist, repo, logger),
	})

	return app, authService
}

func postJSON(t *testing.T, app *fiber.App, path string, body any, token string) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func getWithToken(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func loginToken(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	resp := postJSON(t, app, "/api/auth/login", fiber.Map{"username": username, "password": password}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	token := body["data"].(map[string]any)["auth"].(map[string]any)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestLoginEndpoint(t *testing.T) {
	app, _ := newTestServer(t)

	t.Run("valid credentials return token and sanitized staff", func(t *testing.T) {
		resp := postJSON(t, app, "/api/auth/login", fiber.Map{"username": "clerk", "password": "clerk-password"}, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		data := body["data"].(map[string]any)
		staff := data["staff"].(map[string]any)
		require.Equal(t, "BRGY-001", staff["staffId"])
		require.NotContains(t, staff, "password")
		require.NotContains(t, staff, "passwordHash")
		require.NotContains(t, staff, "qrSecret")
	})

	t.Run("unknown username and wrong password give the same response", func(t *testing.T) {
		unknown := postJSON(t, app, "/api/auth/login", fiber.Map{"username": "nobody", "password": "x"}, "")
		wrong := postJSON(t, app, "/api/auth/login", fiber.Map{"username": "clerk", "password": "x"}, "")
		require.Equal(t, http.StatusUnauthorized, unknown.StatusCode)
		require.Equal(t, http.StatusUnauthorized, wrong.StatusCode)

		unknownBody := decodeBody(t, unknown)
		wrongBody := decodeBody(t, wrong)
		require.Equal(t, unknownBody, wrongBody)
	})

	t.Run("missing fields are a validation error", func(t *testing.T) {
		resp := postJSON(t, app, "/api/auth/login", fiber.Map{"username": "clerk"}, "")
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestQRLoginEndpoint(t *testing.T) {
	app, _ := newTestServer(t)

	t.Run("valid secret logs in", func(t *testing.T) {
		resp := postJSON(t, app, "/api/auth/login-qr", fiber.Map{"qrSecret": "qr-BRGY-001"}, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		staff := body["data"].(map[string]any)["staff"].(map[string]any)
		require.Equal(t, "BRGY-001", staff["staffId"])
	})

	t.Run("unknown secret matches the password failure response", func(t *testing.T) {
		unknownQR := postJSON(t, app, "/api/auth/login-qr", fiber.Map{"qrSecret": "never-issued"}, "")
		wrongPassword := postJSON(t, app, "/api/auth/login", fiber.Map{"username": "clerk", "password": "x"}, "")
		require.Equal(t, http.StatusUnauthorized, unknownQR.StatusCode)
		require.Equal(t, decodeBody(t, wrongPassword), decodeBody(t, unknownQR))
	})
}

func TestValidateEndpoint(t *testing.T) {
	app, _ := newTestServer(t)
	token := loginToken(t, app, "clerk", "clerk-password")

	t.Run("valid session echoes the identity", func(t *testing.T) {
		resp := getWithToken(t, app, "/api/auth/validate", token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		require.Equal(t, "BRGY-001", body["data"].(map[string]any)["staffId"])
	})

	t.Run("no token", func(t *testing.T) {
		resp := getWithToken(t, app, "/api/auth/validate", "")
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRefreshEndpoint(t *testing.T) {
	app, authService := newTestServer(t)
	token := loginToken(t, app, "clerk", "clerk-password")

	resp := postJSON(t, app, "/api/auth/refresh", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	refreshed := body["data"].(map[string]any)["auth"].(map[string]any)["token"].(string)
	require.NotEmpty(t, refreshed)
	require.NotEqual(t, token, refreshed)

	// Both sessions stay valid; refresh does not revoke the presenter.
	for _, tok := range []string{token, refreshed} {
		check := getWithToken(t, app, "/api/auth/validate", tok)
		require.Equal(t, http.StatusOK, check.StatusCode)
	}

	oldClaims, err := authService.TokenManager().Verify(token)
	require.NoError(t, err)
	newClaims, err := authService.TokenManager().Verify(refreshed)
	require.NoError(t, err)
	require.Equal(t, oldClaims.StaffID, newClaims.StaffID)
	require.NotEqual(t, oldClaims.ID, newClaims.ID)
	require.True(t, newClaims.ExpiresAt.After(oldClaims.ExpiresAt.Time))
}

func TestStaffEndpointsAreAdminGated(t *testing.T) {
	app, _ := newTestServer(t)
	clerkToken := loginToken(t, app, "clerk", "clerk-password")
	adminToken := loginToken(t, app, "captain", "BOSS-KEY")

	newStaff := fiber.Map{
		"staffId":       "BRGY-100",
		"fullName":      "Maria Clara",
		"position":      "Kagawad",
		"contactNumber": "09180000000",
		"email":         "maria@example.com",
		"username":      "maria",
		"password":      "marias-password",
	}

	t.Run("non-admin forbidden", func(t *testing.T) {
		resp := postJSON(t, app, "/api/staff", newStaff, clerkToken)
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("unauthenticated unauthorized", func(t *testing.T) {
		resp := postJSON(t, app, "/api/staff", newStaff, "")
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("admin creates and the qr secret is revealed once", func(t *testing.T) {
		resp := postJSON(t, app, "/api/staff", newStaff, adminToken)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		created := decodeBody(t, resp)["data"].(map[string]any)
		require.Equal(t, "BRGY-100", created["staffId"])
		require.NotEmpty(t, created["qrSecret"])

		// Subsequent reads never include the secret again.
		read := getWithToken(t, app, "/api/staff/BRGY-100", adminToken)
		require.Equal(t, http.StatusOK, read.StatusCode)
		fetched := decodeBody(t, read)["data"].(map[string]any)
		require.NotContains(t, fetched, "qrSecret")
	})
}

func TestPasswordChangeRevokesPresentingToken(t *testing.T) {
	app, _ := newTestServer(t)
	adminToken := loginToken(t, app, "captain", "BOSS-KEY")

	payload, err := json.Marshal(fiber.Map{"password": "a-brand-new-password"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, "/api/staff/BRGY-999", bytes.NewReader(payload))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+adminToken)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The session that changed the password is no longer accepted.
	check := getWithToken(t, app, "/api/auth/validate", adminToken)
	require.Equal(t, http.StatusUnauthorized, check.StatusCode)

	// The new password works and the old one does not.
	old := postJSON(t, app, "/api/auth/login", fiber.Map{"username": "captain", "password": "BOSS-KEY"}, "")
	require.Equal(t, http.StatusUnauthorized, old.StatusCode)
	fresh := postJSON(t, app, "/api/auth/login", fiber.Map{"username": "captain", "password": "a-brand-new-password"}, "")
	require.Equal(t, http.StatusOK, fresh.StatusCode)
}

type failingDenylist struct{}

func (failingDenylist) Revoke(context.Context, string, time.Duration) error {
	return errors.New("denylist store unavailable")
}

func (failingDenylist) IsRevoked(context.Context, string) (bool, error) {
	return false, nil
}

func TestPasswordChangeRevocationFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	app, _ := newTestServerWith(t, failingDenylist{}, zap.New(core))
	adminToken := loginToken(t, app, "captain", "BOSS-KEY")

	payload, err := json.Marshal(fiber.Map{"password": "a-brand-new-password"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, "/api/staff/BRGY-999", bytes.NewReader(payload))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+adminToken)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	// The password change itself still succeeds and the failure is visible
	// in the log rather than silently dropped.
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 1, logs.FilterMessage("failed to revoke session after password change").Len())
}
