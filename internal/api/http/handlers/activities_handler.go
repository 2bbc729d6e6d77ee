package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/dulagbps/records-service/internal/api/dto"
	"github.com/dulagbps/records-service/internal/service"
	apperrors "github.com/dulagbps/records-service/pkg/util"
)

// ActivitiesHandler exposes the recent-activity feed and the public
// contact form.
type ActivitiesHandler struct {
	activities    *service.ActivityService
	notifications *service.NotificationService
}

// NewActivitiesHandler constructs handler.
func NewActivitiesHandler(activities *service.ActivityService, notifications *service.NotificationService) *ActivitiesHandler {
	return &ActivitiesHandler{activities: activities, notifications: notifications}
}

// Recent handles GET /api/activities/recent.
func (h *ActivitiesHandler) Recent(c *fiber.Ctx) error {
	activities, err := h.activities.Recent(c.Context())
	if err != nil {
		return err
	}
	resp := make([]dto.ActivityResponse, 0, len(activities))
	for i := range activities {
		resp = append(resp, dto.NewActivityResponse(&activities[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Cleanup handles DELETE /api/activities/cleanup.
func (h *ActivitiesHandler) Cleanup(c *fiber.Ctx) error {
	deleted, err := h.activities.Cleanup(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"message":      fmt.Sprintf("deleted %d old activities", deleted),
		"deletedCount": deleted,
	}})
}

// Contact handles POST /api/contact.
func (h *ActivitiesHandler) Contact(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.notifications.SubmitContact(c.Context(), req.Email, req.Message); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "sent"}})
}
