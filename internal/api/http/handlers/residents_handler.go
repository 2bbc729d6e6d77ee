package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dulagbps/records-service/internal/api/dto"
	"github.com/dulagbps/records-service/internal/auth"
	"github.com/dulagbps/records-service/internal/domain"
	"github.com/dulagbps/records-service/internal/service"
	apperrors "github.com/dulagbps/records-service/pkg/util"
)

// ResidentsHandler exposes resident CRUD and statistics endpoints.
type ResidentsHandler struct {
	residents *service.ResidentService
}

// NewResidentsHandler constructs handler.
func NewResidentsHandler(residents *service.ResidentService) *ResidentsHandler {
	return &ResidentsHandler{residents: residents}
}

// Create handles POST /api/residents.
func (h *ResidentsHandler) Create(c *fiber.Ctx) error {
	var req dto.ResidentCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	resident, err := h.residents.Create(c.Context(), &domain.Resident{
		ResidentID:    req.ResidentID,
		FullName:      req.FullName,
		Birthdate:     req.Birthdate.Time,
		Gender:        domain.Gender(req.Gender),
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
		MaritalStatus: domain.MaritalStatus(req.MaritalStatus),
		Occupation:    req.Occupation,
	}, actorStaffID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewResidentResponse(resident)})
}

// List handles GET /api/residents.
func (h *ResidentsHandler) List(c *fiber.Ctx) error {
	residents, err := h.residents.List(c.Context())
	if err != nil {
		return err
	}
	resp := make([]dto.ResidentResponse, 0, len(residents))
	for i := range residents {
		resp = append(resp, dto.NewResidentResponse(&residents[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Get handles GET /api/residents/:id.
func (h *ResidentsHandler) Get(c *fiber.Ctx) error {
	resident, err := h.residents.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewResidentResponse(resident)})
}

// Statistics handles GET /api/residents/statistics.
func (h *ResidentsHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.residents.Statistics(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}

// Update handles PUT /api/residents/:id.
func (h *ResidentsHandler) Update(c *fiber.Ctx) error {
	var req dto.ResidentUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	update := service.ResidentUpdate{
		FullName:      req.FullName,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
		Occupation:    req.Occupation,
	}
	if req.Birthdate != nil {
		update.Birthdate = &req.Birthdate.Time
	}
	if req.Gender != nil {
		gender := domain.Gender(*req.Gender)
		update.Gender = &gender
	}
	if req.MaritalStatus != nil {
		status := domain.MaritalStatus(*req.MaritalStatus)
		update.MaritalStatus = &status
	}

	resident, err := h.residents.Update(c.Context(), c.Params("id"), update, actorStaffID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewResidentResponse(resident)})
}

// Delete handles DELETE /api/residents/:id.
func (h *ResidentsHandler) Delete(c *fiber.Ctx) error {
	if err := h.residents.Delete(c.Context(), c.Params("id"), actorStaffID(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}

// actorStaffID returns the authenticated staff id, or "" on public routes.
func actorStaffID(c *fiber.Ctx) string {
	if principal, ok := auth.PrincipalFromContext(c); ok {
		return principal.Staff.StaffID
	}
	return ""
}
