package domain

import "time"

// ActivityType enumerates the tracked dashboard activity kinds.
type ActivityType string

const (
	ActivityResidentCreate     ActivityType = "resident_create"
	ActivityResidentUpdate     ActivityType = "resident_update"
	ActivityResidentDelete     ActivityType = "resident_delete"
	ActivityCaseCreate         ActivityType = "case_create"
	ActivityCaseUpdate         ActivityType = "case_update"
	ActivityEventCreate        ActivityType = "event_create"
	ActivityEventUpdate        ActivityType = "event_update"
	ActivityAnnouncementCreate ActivityType = "announcement_create"
	ActivityAnnouncementUpdate ActivityType = "announcement_update"
)

// Activity is one entry in the bounded recent-activity feed shown on the
// dashboard. SubjectID/SubjectName identify the record the activity refers
// to (resident, case, event or announcement).
type Activity struct {
	ID          string
	Type        ActivityType
	SubjectID   string
	SubjectName string
	CreatedAt   time.Time
}
