package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dulagbps/records-service/internal/config"
	"github.com/dulagbps/records-service/internal/domain"
	"github.com/dulagbps/records-service/internal/events"
	"github.com/dulagbps/records-service/internal/repository"
)

// ActivityService maintains the bounded recent-activity feed. It records
// entries from published domain events; recording is best-effort and never
// fails the mutation that triggered it.
type ActivityService struct {
	activities repository.ActivityRepository
	logger     *zap.Logger
	cfg        config.ActivityLogConfig
}

// NewActivityService builds the service.
func NewActivityService(activities repository.ActivityRepository, logger *zap.Logger, cfg config.ActivityLogConfig) *ActivityService {
	return &ActivityService{activities: activities, logger: logger, cfg: cfg}
}

// RegisterHandlers subscribes the recorder to every tracked event type.
func (s *ActivityService) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	tracked := []events.EventType{
		events.EventResidentCreated,
		events.EventResidentUpdated,
		events.EventResidentDeleted,
		events.EventCaseCreated,
		events.EventCaseUpdated,
		events.EventEventCreated,
		events.EventEventUpdated,
		events.EventAnnouncementCreated,
		events.EventAnnouncementUpdated,
	}
	for _, eventType := range tracked {
		dispatcher.Subscribe(eventType, s.record)
	}
}

// Recent returns the newest feed entries, capped at the configured maximum.
func (s *ActivityService) Recent(ctx context.Context) ([]domain.Activity, error) {
	return s.activities.ListRecent(ctx, s.cfg.MaxEntries)
}

// Cleanup deletes entries older than the configured retention window and
// returns the number removed.
func (s *ActivityService) Cleanup(ctx context.Context) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -s.cfg.RetentionDays)
	return s.activities.DeleteOlderThan(ctx, cutoff)
}

func (s *ActivityService) record(ctx context.Context, event events.Event) error {
	activityType, ok := event.Type.ActivityType()
	if !ok {
		return nil
	}
	activity := &domain.Activity{
		ID:          uuid.NewString(),
		Type:        activityType,
		SubjectID:   event.SubjectID,
		SubjectName: event.SubjectName,
	}
	if err := s.activities.Create(ctx, activity, s.cfg.MaxEntries); err != nil {
		s.logger.Error("failed to record activity",
			zap.String("type", string(activityType)),
			zap.String("subject_id", event.SubjectID),
			zap.Error(err))
	}
	return nil
}
