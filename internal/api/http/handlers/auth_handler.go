package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/dulagbps/records-service/internal/api/dto"
	"github.com/dulagbps/records-service/internal/auth"
	"github.com/dulagbps/records-service/internal/service"
	apperrors "github.com/dulagbps/records-service/pkg/util"
)

// AuthHandler exposes the session endpoints: password login, QR login,
// validate and refresh.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password are required", nil)
	}

	staff, token, exp, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return loginError(err)
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"staff": dto.NewStaffResponse(staff),
			"auth":  dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// LoginQR handles POST /api/auth/login-qr.
func (h *AuthHandler) LoginQR(c *fiber.Ctx) error {
	var req dto.QRLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.QRSecret == "" {
		return apperrors.NewValidationError("qr secret is required", nil)
	}

	staff, token, exp, err := h.auth.LoginQR(c.Context(), req.QRSecret)
	if err != nil {
		return loginError(err)
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"staff": dto.NewStaffResponse(staff),
			"auth":  dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Validate handles GET /api/auth/validate. The gate already resolved the
// identity; this simply echoes it back.
func (h *AuthHandler) Validate(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authorized")
	}
	return c.JSON(fiber.Map{"data": dto.NewStaffResponse(principal.Staff)})
}

// Refresh handles POST /api/auth/refresh: a brand-new token for the same
// subject with a later expiration. The old token is not invalidated.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authorized")
	}

	claims, _ := auth.ClaimsFromContext(c)
	token, exp, err := h.auth.Refresh(principal.Staff.StaffID, claims)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"staff": dto.NewStaffResponse(principal.Staff),
			"auth":  dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// loginError collapses every credential failure into the same 401 response
// so the login surface never reveals which identifiers exist.
func loginError(err error) error {
	if errors.Is(err, service.ErrInvalidCredentials) {
		return apperrors.NewDomainError("UNAUTHORIZED", "invalid credentials", http.StatusUnauthorized, nil)
	}
	return apperrors.MapError(err)
}
