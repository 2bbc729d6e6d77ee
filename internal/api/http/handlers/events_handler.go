package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/dulagbps/records-service/internal/api/dto"
	"github.com/dulagbps/records-service/internal/domain"
	"github.com/dulagbps/records-service/internal/service"
	apperrors "github.com/dulagbps/records-service/pkg/util"
)

// EventsHandler exposes event CRUD endpoints.
type EventsHandler struct {
	events *service.EventService
}

// NewEventsHandler constructs handler.
func NewEventsHandler(events *service.EventService) *EventsHandler {
	return &EventsHandler{events: events}
}

// Create handles POST /api/events.
func (h *EventsHandler) Create(c *fiber.Ctx) error {
	var req dto.EventCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	created, err := h.events.Create(c.Context(), &domain.Event{
		EventID:    req.EventID,
		EventTitle: req.EventTitle,
		Location:   req.Location,
		Date:       req.Date.Time,
		Time:       req.Time,
		Category:   domain.EventCategory(req.Category),
	}, actorStaffID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewEventResponse(created)})
}

// List handles GET /api/events.
func (h *EventsHandler) List(c *fiber.Ctx) error {
	events, err := h.events.List(c.Context())
	if err != nil {
		return err
	}
	resp := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		resp = append(resp, dto.NewEventResponse(&events[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Upcoming handles GET /api/events/upcoming.
func (h *EventsHandler) Upcoming(c *fiber.Ctx) error {
	limit := 0
	if val := c.Query("limit"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			limit = parsed
		}
	}

	events, err := h.events.Upcoming(c.Context(), limit)
	if err != nil {
		return err
	}
	resp := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		resp = append(resp, dto.NewEventResponse(&events[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Get handles GET /api/events/:id.
func (h *EventsHandler) Get(c *fiber.Ctx) error {
	event, err := h.events.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEventResponse(event)})
}

// Update handles PUT /api/events/:id.
func (h *EventsHandler) Update(c *fiber.Ctx) error {
	var req dto.EventUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	update := service.EventUpdate{
		EventTitle: req.EventTitle,
		Location:   req.Location,
		Time:       req.Time,
	}
	if req.Date != nil {
		update.Date = &req.Date.Time
	}
	if req.Category != nil {
		category := domain.EventCategory(*req.Category)
		update.Category = &category
	}

	updated, err := h.events.Update(c.Context(), c.Params("id"), update, actorStaffID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEventResponse(updated)})
}

// Delete handles DELETE /api/events/:id.
func (h *EventsHandler) Delete(c *fiber.Ctx) error {
	if err := h.events.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}
