package service

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/dulagbps/records-service/internal/domain"
	"github.com/dulagbps/records-service/internal/events"
	"github.com/dulagbps/records-service/internal/repository"
	apperrors "github.com/dulagbps/records-service/pkg/util"
)

// AnnouncementService owns public announcements and their attached images.
type AnnouncementService struct {
	announcements repository.AnnouncementRepository
	dispatcher    events.Dispatcher
}

// AnnouncementUpdate carries the optional fields accepted on update. Image
// is the stored path of a newly uploaded replacement, nil to keep the
// current one.
type AnnouncementUpdate struct {
	Title       *string
	Description *string
	Image       *string
}

// NewAnnouncementService builds the service.
func NewAnnouncementService(announcements repository.AnnouncementRepository, dispatcher events.Dispatcher) *AnnouncementService {
	return &AnnouncementService{announcements: announcements, dispatcher: dispatcher}
}

// Create posts a new announcement and records the activity.
func (s *AnnouncementService) Create(ctx context.Context, announcementID, title, description, imagePath, actorStaffID string) (*domain.Announcement, error) {
	if announcementID == "" || title == "" || description == "" {
		return nil, apperrors.NewValidationError("all fields are required", nil)
	}

	if _, err := s.announcements.FindByAnnouncementID(ctx, announcementID); err == nil {
		return nil, apperrors.NewDuplicateKey("announcementId")
	}

	announcement := &domain.Announcement{
		AnnouncementID: announcementID,
		Title:          title,
		Description:    description,
		Image:          imagePath,
		DateTimePosted: time.Now(),
	}
	if err := s.announcements.Create(ctx, announcement); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventAnnouncementCreated, announcement.AnnouncementID, announcement.Title, actorStaffID)
	return announcement, nil
}

// Update edits an announcement. A replacement image removes the previous
// file from disk; removal failures are ignored since the record is already
// consistent.
func (s *AnnouncementService) Update(ctx context.Context, announcementID string, in AnnouncementUpdate, actorStaffID string) (*domain.Announcement, error) {
	announcement, err := s.announcements.FindByAnnouncementID(ctx, announcementID)
	if err != nil {
		return nil, err
	}

	oldImage := announcement.Image
	if in.Title != nil {
		announcement.Title = *in.Title
	}
	if in.Description != nil {
		announcement.Description = *in.Description
	}
	if in.Image != nil {
		announcement.Image = *in.Image
	}

	if err := s.announcements.Update(ctx, announcement); err != nil {
		return nil, err
	}
	if in.Image != nil && oldImage != "" && oldImage != *in.Image {
		_ = os.Remove(oldImage)
	}
	s.publish(ctx, events.EventAnnouncementUpdated, announcement.AnnouncementID, announcement.Title, actorStaffID)
	return announcement, nil
}

// Delete removes an announcement and its image file.
func (s *AnnouncementService) Delete(ctx context.Context, announcementID string) error {
	deleted, err := s.announcements.Delete(ctx, announcementID)
	if err != nil {
		return err
	}
	if deleted.Image != "" {
		_ = os.Remove(deleted.Image)
	}
	return nil
}

// Get returns one announcement.
func (s *AnnouncementService) Get(ctx context.Context, announcementID string) (*domain.Announcement, error) {
	return s.announcements.FindByAnnouncementID(ctx, announcementID)
}

// List returns all announcements, newest first.
func (s *AnnouncementService) List(ctx context.Context) ([]domain.Announcement, error) {
	return s.announcements.List(ctx)
}

func (s *AnnouncementService) publish(ctx context.Context, eventType events.EventType, subjectID, subjectName, actorStaffID string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:           uuid.NewString(),
		Type:         eventType,
		SubjectID:    subjectID,
		SubjectName:  subjectName,
		ActorStaffID: actorStaffID,
		Timestamp:    time.Now(),
	})
}
