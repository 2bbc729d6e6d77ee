package domain

import "time"

// EventCategory enumerates community event categories.
type EventCategory string

const (
	EventCategoryMeeting        EventCategory = "Meeting"
	EventCategoryCommunity      EventCategory = "Community Event"
	EventCategoryCaseProceeding EventCategory = "Case Proceeding"
	EventCategoryOthers         EventCategory = "Others"
)

// Event is a scheduled barangay event.
type Event struct {
	EventID    string
	EventTitle string
	Location   string
	Date       time.Time
	Time       string
	Category   EventCategory
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ValidEventCategory reports whether c is one of the accepted values.
func ValidEventCategory(c EventCategory) bool {
	switch c {
	case EventCategoryMeeting, EventCategoryCommunity, EventCategoryCaseProceeding, EventCategoryOthers:
		return true
	}
	return false
}
