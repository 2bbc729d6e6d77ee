package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dulagbps/records-service/internal/domain"
	"github.com/dulagbps/records-service/internal/events"
	"github.com/dulagbps/records-service/internal/repository"
	apperrors "github.com/dulagbps/records-service/pkg/util"
)

const defaultUpcomingLimit = 3

// EventService owns scheduled community events.
type EventService struct {
	events     repository.EventRepository
	dispatcher events.Dispatcher
}

// EventUpdate carries the optional fields accepted on update.
type EventUpdate struct {
	EventTitle *string
	Location   *string
	Date       *time.Time
	Time       *string
	Category   *domain.EventCategory
}

// NewEventService builds the service.
func NewEventService(repo repository.EventRepository, dispatcher events.Dispatcher) *EventService {
	return &EventService{events: repo, dispatcher: dispatcher}
}

// Create schedules a new event and records the activity.
func (s *EventService) Create(ctx context.Context, event *domain.Event, actorStaffID string) (*domain.Event, error) {
	if event.EventID == "" || event.EventTitle == "" || event.Location == "" ||
		event.Date.IsZero() || event.Time == "" {
		return nil, apperrors.NewValidationError("all fields are required", nil)
	}
	if !domain.ValidEventCategory(event.Category) {
		return nil, apperrors.NewValidationError("invalid category", nil)
	}

	if _, err := s.events.FindByEventID(ctx, event.EventID); err == nil {
		return nil, apperrors.NewDuplicateKey("eventId")
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventEventCreated, event.EventID, event.EventTitle, actorStaffID)
	return event, nil
}

// Update applies a partial event update.
func (s *EventService) Update(ctx context.Context, eventID string, in EventUpdate, actorStaffID string) (*domain.Event, error) {
	event, err := s.events.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if in.EventTitle != nil {
		event.EventTitle = *in.EventTitle
	}
	if in.Location != nil {
		event.Location = *in.Location
	}
	if in.Date != nil {
		event.Date = *in.Date
	}
	if in.Time != nil {
		event.Time = *in.Time
	}
	if in.Category != nil {
		if !domain.ValidEventCategory(*in.Category) {
			return nil, apperrors.NewValidationError("invalid category", nil)
		}
		event.Category = *in.Category
	}

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventEventUpdated, event.EventID, event.EventTitle, actorStaffID)
	return event, nil
}

// Delete removes an event.
func (s *EventService) Delete(ctx context.Context, eventID string) error {
	return s.events.Delete(ctx, eventID)
}

// Get returns one event.
func (s *EventService) Get(ctx context.Context, eventID string) (*domain.Event, error) {
	return s.events.FindByEventID(ctx, eventID)
}

// List returns all events in date order.
func (s *EventService) List(ctx context.Context) ([]domain.Event, error) {
	return s.events.List(ctx)
}

// Upcoming returns the next events from today onward.
func (s *EventService) Upcoming(ctx context.Context, limit int) ([]domain.Event, error) {
	if limit <= 0 {
		limit = defaultUpcomingLimit
	}
	return s.events.ListUpcoming(ctx, time.Now(), limit)
}

func (s *EventService) publish(ctx context.Context, eventType events.EventType, subjectID, subjectName, actorStaffID string) {
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
