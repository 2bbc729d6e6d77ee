package handlers

import (
	"fmt"
	"math/rand"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dulagbps/records-service/internal/api/dto"
	"github.com/dulagbps/records-service/internal/config"
	"github.com/dulagbps/records-service/internal/service"
	apperrors "github.com/dulagbps/records-service/pkg/util"
)

// AnnouncementsHandler exposes announcement CRUD endpoints. Create and
// update accept multipart forms with an optional image attachment.
type AnnouncementsHandler struct {
	announcements *service.AnnouncementService
	upload        config.UploadConfig
}

// NewAnnouncementsHandler constructs handler.
func NewAnnouncementsHandler(announcements *service.AnnouncementService, upload config.UploadConfig) *AnnouncementsHandler {
	return &AnnouncementsHandler{announcements: announcements, upload: upload}
}

// Create handles POST /api/announcements.
func (h *AnnouncementsHandler) Create(c *fiber.Ctx) error {
	announcementID := c.FormValue("announcementId")
	title := c.FormValue("title")
	description := c.FormValue("description")

	imagePath, err := h.saveImage(c)
	if err != nil {
		return err
	}

	created, err := h.announcements.Create(c.Context(), announcementID, title, description, imagePath, actorStaffID(c))
	if err != nil {
		if imagePath != "" {
			_ = os.Remove(imagePath)
		}
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewAnnouncementResponse(created)})
}

// List handles GET /api/announcements.
func (h *AnnouncementsHandler) List(c *fiber.Ctx) error {
	announcements, err := h.announcements.List(c.Context())
	if err != nil {
		return err
	}
	resp := make([]dto.AnnouncementResponse, 0, len(announcements))
	for i := range announcements {
		resp = append(resp, dto.NewAnnouncementResponse(&announcements[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Get handles GET /api/announcements/:id.
func (h *AnnouncementsHandler) Get(c *fiber.Ctx) error {
	announcement, err := h.announcements.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAnnouncementResponse(announcement)})
}

// Update handles PUT /api/announcements/:id.
func (h *AnnouncementsHandler) Update(c *fiber.Ctx) error {
	update := service.AnnouncementUpdate{}
	if title := c.FormValue("title"); title != "" {
		update.Title = &title
	}
	if description := c.FormValue("description"); description != "" {
		update.Description = &description
	}

	imagePath, err := h.saveImage(c)
	if err != nil {
		return err
	}
	if imagePath != "" {
		update.Image = &imagePath
	}

	updated, err := h.announcements.Update(c.Context(), c.Params("id"), update, actorStaffID(c))
	if err != nil {
		if imagePath != "" {
			_ = os.Remove(imagePath)
		}
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAnnouncementResponse(updated)})
}

// Delete handles DELETE /api/announcements/:id.
func (h *AnnouncementsHandler) Delete(c *fiber.Ctx) error {
	if err := h.announcements.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}

// saveImage stores the optional "image" form file under the configured
// uploads directory and returns its path, or "" when no file was attached.
func (h *AnnouncementsHandler) saveImage(c *fiber.Ctx) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		// No attachment on this request.
		return "", nil
	}

	if file.Size > h.upload.MaxFileSizeBytes {
		return "", apperrors.NewValidationError("file too large", fiber.Map{
			"maxBytes": h.upload.MaxFileSizeBytes,
		})
	}
	if !h.allowedType(file) {
		return "", apperrors.NewValidationError("invalid file type", fiber.Map{
			"allowed": h.upload.AllowedMIMETypes,
		})
	}

	if err := os.MkdirAll(h.upload.AnnouncementImagePath, 0o755); err != nil {
		return "", apperrors.NewInternalError(err)
	}

	name := fmt.Sprintf("%d-%d%s", time.Now().UnixMilli(), rand.Int63n(1e9), filepath.Ext(file.Filename))
	path := filepath.Join(h.upload.AnnouncementImagePath, name)
	if err := c.SaveFile(file, path); err != nil {
		return "", apperrors.NewInternalError(err)
	}
	return path, nil
}

func (h *AnnouncementsHandler) allowedType(file *multipart.FileHeader) bool {
	contentType := file.Header.Get("Content-Type")
	for _, allowed := range h.upload.AllowedMIMETypes {
		if contentType == allowed {
			return true
		}
	}
	return false
}
