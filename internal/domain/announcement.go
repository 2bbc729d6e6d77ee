package domain

import "time"

// Announcement is a public notice posted to the community board.
// UpdateCount increments on every edit; Image is a relative path under the
// uploads directory, empty when no image was attached.
type Announcement struct {
	AnnouncementID string
	Title          string
	Description    string
	Image          string
	DateTimePosted time.Time
	UpdateCount    int
	UpdatedAt      *time.Time
}
