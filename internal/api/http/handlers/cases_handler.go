package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dulagbps/records-service/internal/api/dto"
	"github.com/dulagbps/records-service/internal/domain"
	"github.com/dulagbps/records-service/internal/service"
	apperrors "github.com/dulagbps/records-service/pkg/util"
)

// CasesHandler exposes case CRUD endpoints.
type CasesHandler struct {
	cases *service.CaseService
}

// NewCasesHandler constructs handler.
func NewCasesHandler(cases *service.CaseService) *CasesHandler {
	return &CasesHandler{cases: cases}
}

// Create handles POST /api/cases.
func (h *CasesHandler) Create(c *fiber.Ctx) error {
	var req dto.CaseCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	created, err := h.cases.Create(c.Context(), &domain.Case{
		CaseID:          req.CaseID,
		CaseName:        req.CaseName,
		CaseType:        domain.CaseType(req.CaseType),
		CaseStatus:      domain.CaseStatus(req.CaseStatus),
		ComplainantName: req.ComplainantName,
		DateFiled:       req.DateFiled.Time,
	}, actorStaffID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewCaseResponse(created)})
}

// List handles GET /api/cases.
func (h *CasesHandler) List(c *fiber.Ctx) error {
	cases, err := h.cases.List(c.Context())
	if err != nil {
		return err
	}
	resp := make([]dto.CaseResponse, 0, len(cases))
	for i := range cases {
		resp = append(resp, dto.NewCaseResponse(&cases[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Get handles GET /api/cases/:id.
func (h *CasesHandler) Get(c *fiber.Ctx) error {
	found, err := h.cases.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCaseResponse(found)})
}

// Update handles PUT /api/cases/:id.
func (h *CasesHandler) Update(c *fiber.Ctx) error {
	var req dto.CaseUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	update := service.CaseUpdate{
		CaseName:        req.CaseName,
		ComplainantName: req.ComplainantName,
	}
	if req.CaseType != nil {
		caseType := domain.CaseType(*req.CaseType)
		update.CaseType = &caseType
	}
	if req.CaseStatus != nil {
		status := domain.CaseStatus(*req.CaseStatus)
		update.CaseStatus = &status
	}
	if req.DateFiled != nil {
		update.DateFiled = &req.DateFiled.Time
	}

	updated, err := h.cases.Update(c.Context(), c.Params("id"), update, actorStaffID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCaseResponse(updated)})
}

// Delete handles DELETE /api/cases/:id.
func (h *CasesHandler) Delete(c *fiber.Ctx) error {
	if err := h.cases.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}
