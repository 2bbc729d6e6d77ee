package events

import (
	"time"

	"github.com/dulagbps/records-service/internal/domain"
)

// EventType enumerates supported event identifiers. The values double as
// activity-feed types for record mutations.
type EventType string

const (
	EventResidentCreated     EventType = "resident_create"
	EventResidentUpdated     EventType = "resident_update"
	EventResidentDeleted     EventType = "resident_delete"
	EventCaseCreated         EventType = "case_create"
	EventCaseUpdated         EventType = "case_update"
	EventEventCreated        EventType = "event_create"
	EventEventUpdated        EventType = "event_update"
	EventAnnouncementCreated EventType = "announcement_create"
	EventAnnouncementUpdated EventType = "announcement_update"
	EventContactSubmitted    EventType = "contact_submitted"
)

// Event represents a domain event emitted by services. SubjectID and
// SubjectName identify the record the event is about; ActorStaffID is the
// authenticated staff member who performed the mutation, empty for public
// submissions.
type Event struct {
	ID           string      `json:"id"`
	Type         EventType   `json:"type"`
	SubjectID    string      `json:"subject_id"`
	SubjectName  string      `json:"subject_name"`
	ActorStaffID string      `json:"actor_staff_id,omitempty"`
	Timestamp    time.Time   `json:"timestamp"`
	Payload      interface{} `json:"payload,omitempty"`
}

// ContactSubmittedPayload payload.
type ContactSubmittedPayload struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ActivityType maps the event type onto its activity-feed type. The second
// return is false for event types that are not tracked in the feed.
func (t EventType) ActivityType() (domain.ActivityType, bool) {
	switch t {
	case EventResidentCreated:
		return domain.ActivityResidentCreate, true
	case EventResidentUpdated:
		return domain.ActivityResidentUpdate, true
	case EventResidentDeleted:
		return domain.ActivityResidentDelete, true
	case EventCaseCreated:
		return domain.ActivityCaseCreate, true
	case EventCaseUpdated:
		return domain.ActivityCaseUpdate, true
	case EventEventCreated:
		return domain.ActivityEventCreate, true
	case EventEventUpdated:
		return domain.ActivityEventUpdate, true
	case EventAnnouncementCreated:
		return domain.ActivityAnnouncementCreate, true
	case EventAnnouncementUpdated:
		return domain.ActivityAnnouncementUpdate, true
	}
	return "", false
}
