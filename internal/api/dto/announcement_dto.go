package dto

import (
	"time"

	"github.com/dulagbps/records-service/internal/domain"
)

// AnnouncementResponse is the external shape of an announcement. Create and
// update requests arrive as multipart forms, so they have no JSON DTO.
type AnnouncementResponse struct {
	AnnouncementID string     `json:"announcementId"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Image          string     `json:"image,omitempty"`
	DateTimePosted time.Time  `json:"dateTimePosted"`
	UpdateCount    int        `json:"updateCount"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
}

// NewAnnouncementResponse maps an announcement record.
func NewAnnouncementResponse(a *domain.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		AnnouncementID: a.AnnouncementID,
		Title:          a.Title,
		Description:    a.Description,
		Image:          a.Image,
		DateTimePosted: a.DateTimePosted,
		UpdateCount:    a.UpdateCount,
		UpdatedAt:      a.UpdatedAt,
	}
}

// ActivityResponse is one entry of the recent-activity feed.
type ActivityResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	SubjectID   string    `json:"subjectId"`
	SubjectName string    `json:"subjectName"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewActivityResponse maps a feed entry.
func NewActivityResponse(activity *domain.Activity) ActivityResponse {
	return ActivityResponse{
		ID:          activity.ID,
		Type:        string(activity.Type),
		SubjectID:   activity.SubjectID,
		SubjectName: activity.SubjectName,
		CreatedAt:   activity.CreatedAt,
	}
}

// ContactRequest payload for the public contact form.
type ContactRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}
