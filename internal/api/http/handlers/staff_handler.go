package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/dulagbps/records-service/internal/api/dto"
	"github.com/dulagbps/records-service/internal/auth"
	"github.com/dulagbps/records-service/internal/service"
	apperrors "github.com/dulagbps/records-service/pkg/util"
)

// StaffHandler exposes staff-directory management endpoints.
type StaffHandler struct {
	staff  *service.StaffService
	auth   *service.AuthService
	logger *zap.Logger
}

// NewStaffHandler constructs handler.
func NewStaffHandler(staffService *service.StaffService, authService *service.AuthService, logger *zap.Logger) *StaffHandler {
	return &StaffHandler{staff: staffService, auth: authService, logger: logger}
}

// Create handles POST /api/staff. The response is the only place the QR
// secret is ever revealed, so the caller can render the code once.
func (h *StaffHandler) Create(c *fiber.Ctx) error {
	var req dto.StaffCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	staff, err := h.staff.Create(c.Context(), service.StaffInput{
		StaffID:       req.StaffID,
		FullName:      req.FullName,
		Position:      req.Position,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
		Username:      req.Username,
		Password:      req.Password,
	})
	if err != nil {
		return err
	}

	resp := dto.NewStaffResponse(staff)
	if staff.QRSecret != nil {
		resp.QRSecret = *staff.QRSecret
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": resp})
}

// List handles GET /api/staff.
func (h *StaffHandler) List(c *fiber.Ctx) error {
	list, err := h.staff.List(c.Context())
	if err != nil {
		return err
	}
	resp := make([]dto.StaffResponse, 0, len(list))
	for i := range list {
		resp = append(resp, dto.NewStaffResponse(&list[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Get handles GET /api/staff/:id.
func (h *StaffHandler) Get(c *fiber.Ctx) error {
	staff, err := h.staff.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStaffResponse(staff)})
}

// Update handles PUT /api/staff/:id. A password change revokes the session
// that performed it.
func (h *StaffHandler) Update(c *fiber.Ctx) error {
	var req dto.StaffUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	staff, passwordChanged, err := h.staff.Update(c.Context(), c.Params("id"), service.StaffUpdate{
		FullName:      req.FullName,
		Position:      req.Position,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
		Username:      req.Username,
		Password:      req.Password,
	})
	if err != nil {
		return err
	}

	if passwordChanged {
		if claims, ok := auth.ClaimsFromContext(c); ok {
			if err := h.auth.RevokeToken(c.Context(), claims); err != nil {
				h.logger.Warn("failed to revoke session after password change",
					zap.String("staff_id", c.Params("id")),
					zap.Error(err))
			}
		}
	}
	return c.JSON(fiber.Map{"data": dto.NewStaffResponse(staff)})
}

// Delete handles DELETE /api/staff/:id.
func (h *StaffHandler) Delete(c *fiber.Ctx) error {
	if err := h.staff.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}

// RegenerateQR handles POST /api/staff/:id/qr. The new secret is revealed
// once; the old one stops authenticating immediately.
func (h *StaffHandler) RegenerateQR(c *fiber.Ctx) error {
	staffID := c.Params("id")
	secret, err := h.staff.RegenerateQRSecret(c.Context(), staffID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.QRSecretResponse{StaffID: staffID, QRSecret: secret}})
}
