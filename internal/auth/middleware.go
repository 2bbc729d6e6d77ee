package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/dulagbps/records-service/internal/domain"
	"github.com/dulagbps/records-service/internal/repository"
	apperrors "github.com/dulagbps/records-service/pkg/util"
)

const (
	principalKey = "auth_principal"
	claimsKey    = "auth_claims"
)

// Principal is the authenticated staff identity attached to the request
// context. The password hash and QR secret are stripped before attachment.
type Principal struct {
	Staff *domain.Staff
}

// Middleware is the authentication gate: it extracts the bearer token,
// verifies it, resolves the subject and attaches the principal. Every
// rejection is a 401; the distinct reasons exist only for logging.
type Middleware struct {
	tokens   *TokenManager
	denylist Denylist
	staff    repository.StaffRepository
	logger   *zap.Logger
}

// NewMiddleware constructs the authentication gate.
func NewMiddleware(tokens *TokenManager, denylist Denylist, staff repository.StaffRepository, logger *zap.Logger) *Middleware {
	return &Middleware{tokens: tokens, denylist: denylist, staff: staff, logger: logger}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized("not authorized, no token provided")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("not authorized, no token provided")
	}

	claims, err := m.tokens.Verify(parts[1])
	if err != nil {
		m.logger.Debug("token rejected", zap.Error(err))
		return apperrors.NewUnauthorized("not authorized, invalid token")
	}

	if m.denylist != nil && claims.ID != "" {
		revoked, err := m.denylist.IsRevoked(c.Context(), claims.ID)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		if revoked {
			m.logger.Info("revoked token presented", zap.String("staff_id", claims.StaffID))
			return apperrors.NewUnauthorized("not authorized, invalid token")
		}
	}

	staff, err := m.staff.FindByStaffID(c.Context(), claims.StaffID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			m.logger.Debug("token for unknown subject", zap.String("staff_id", claims.StaffID))
			return apperrors.NewUnauthorized("not authorized, invalid token")
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, &Principal{Staff: staff.Sanitized()})
	c.Locals(claimsKey, claims)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated staff member.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	principal, ok := c.Locals(principalKey).(*Principal)
	return principal, ok && principal != nil && principal.Staff != nil
}

// ClaimsFromContext retrieves the claims of the presenting token.
func ClaimsFromContext(c *fiber.Ctx) (*SessionClaims, bool) {
	claims, ok := c.Locals(claimsKey).(*SessionClaims)
	return claims, ok && claims != nil
}
