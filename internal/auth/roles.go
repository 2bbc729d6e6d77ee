package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/dulagbps/records-service/pkg/util"
)

// RequireAdmin is the authorization gate. It must run after the
// authentication gate; a missing principal is treated as non-admin so a
// mis-ordered route fails closed.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || !principal.Staff.IsAdmin {
			return apperrors.NewForbidden("forbidden, not authorized")
		}
		return c.Next()
	}
}

// RequireAuthenticated passes through any authenticated caller.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("not authorized")
		}
		return c.Next()
	}
}
