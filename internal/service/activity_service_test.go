package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dulagbps/records-service/internal/config"
	"github.com/dulagbps/records-service/internal/domain"
	"github.com/dulagbps/records-service/internal/events"
)

type memActivityRepo struct {
	entries []domain.Activity
}

func (r *memActivityRepo) Create(_ context.Context, activity *domain.Activity, keep int) error {
	copied := *activity
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now()
	}
	r.entries = append(r.entries, copied)
	sort.Slice(r.entries, func(i, j int) bool {
		return r.entries[i].CreatedAt.After(r.entries[j].CreatedAt)
	})
	if keep > 0 && len(r.entries) > keep {
		r.entries = r.entries[:keep]
	}
	return nil
}

func (r *memActivityRepo) ListRecent(_ context.Context, limit int) ([]domain.Activity, error) {
	if limit > len(r.entries) {
		limit = len(r.entries)
	}
	out := make([]domain.Activity, limit)
	copy(out, r.entries[:limit])
	return out, nil
}

func (r *memActivityRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	kept := r.entries[:0]
	var removed int64
	for _, entry := range r.entries {
		if entry.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, entry)
	}
	r.entries = kept
	return removed, nil
}

func activityFixture(eventType events.EventType, subjectID string) events.Event {
	return events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Timestamp: time.Now(),
	}
}

func TestActivityRecording(t *testing.T) {
	ctx := context.Background()
	repo := &memActivityRepo{}
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewActivityService(repo, zap.NewNop(), config.ActivityLogConfig{MaxEntries: 10, RetentionDays: 30})
	svc.RegisterHandlers(dispatcher)

	t.Run("tracked events land in the feed", func(t *testing.T) {
		require.NoError(t, dispatcher.Publish(ctx, activityFixture(events.EventResidentCreated, "R-001")))
		require.NoError(t, dispatcher.Publish(ctx, activityFixture(events.EventCaseUpdated, "C-001")))

		recent, err := svc.Recent(ctx)
		require.NoError(t, err)
		require.Len(t, recent, 2)
		types := []domain.ActivityType{recent[0].Type, recent[1].Type}
		require.Contains(t, types, domain.ActivityResidentCreate)
		require.Contains(t, types, domain.ActivityCaseUpdate)
	})

	t.Run("untracked events are ignored", func(t *testing.T) {
		require.NoError(t, dispatcher.Publish(ctx, activityFixture(events.EventContactSubmitted, "")))
		recent, err := svc.Recent(ctx)
		require.NoError(t, err)
		require.Len(t, recent, 2)
	})
}

func TestActivityFeedIsBounded(t *testing.T) {
	ctx := context.Background()
	repo := &memActivityRepo{}
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewActivityService(repo, zap.NewNop(), config.ActivityLogConfig{MaxEntries: 10, RetentionDays: 30})
	svc.RegisterHandlers(dispatcher)

	for i := 0; i < 15; i++ {
		require.NoError(t, dispatcher.Publish(ctx, activityFixture(events.EventResidentUpdated, "R-001")))
	}

	recent, err := svc.Recent(ctx)
	require.NoError(t, err)
	require.Len(t, recent, 10)
	require.Len(t, repo.entries, 10)
}

func TestActivityCleanup(t *testing.T) {
	ctx := context.Background()
	repo := &memActivityRepo{entries: []domain.Activity{
		{ID: "old", Type: domain.ActivityCaseCreate, CreatedAt: time.Now().AddDate(0, 0, -45)},
		{ID: "fresh", Type: domain.ActivityCaseCreate, CreatedAt: time.Now()},
	}}
	svc := NewActivityService(repo, zap.NewNop(), config.ActivityLogConfig{MaxEntries: 10, RetentionDays: 30})

	removed, err := svc.Cleanup(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), removed)
	require.Len(t, repo.entries, 1)
	require.Equal(t, "fresh", repo.entries[0].ID)
}
