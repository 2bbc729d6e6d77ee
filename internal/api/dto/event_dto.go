package dto

import (
	"time"

	"github.com/dulagbps/records-service/internal/domain"
)

// EventCreateRequest payload.
type EventCreateRequest struct {
	EventID    string `json:"eventId"`
	EventTitle string `json:"eventTitle"`
	Location   string `json:"location"`
	Date       Date   `json:"date"`
	Time       string `json:"time"`
	Category   string `json:"category"`
}

// EventUpdateRequest payload for partial updates.
type EventUpdateRequest struct {
	EventTitle *string `json:"eventTitle"`
	Location   *string `json:"location"`
	Date       *Date   `json:"date"`
	Time       *string `json:"time"`
	Category   *string `json:"category"`
}

// EventResponse is the external shape of an event record.
type EventResponse struct {
	EventID    string    `json:"eventId"`
	EventTitle string    `json:"eventTitle"`
	Location   string    `json:"location"`
	Date       time.Time `json:"date"`
	Time       string    `json:"time"`
	Category   string    `json:"category"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NewEventResponse maps an event record.
func NewEventResponse(event *domain.Event) EventResponse {
	return EventResponse{
		EventID:    event.EventID,
		EventTitle: event.EventTitle,
		Location:   event.Location,
		Date:       event.Date,
		Time:       event.Time,
		Category:   string(event.Category),
		CreatedAt:  event.CreatedAt,
		UpdatedAt:  event.UpdatedAt,
	}
}
