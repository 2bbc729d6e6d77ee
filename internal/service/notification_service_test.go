package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dulagbps/records-service/internal/config"
	"github.com/dulagbps/records-service/internal/events"
	apperrors "github.com/dulagbps/records-service/pkg/util"
)

func TestSubmitContact(t *testing.T) {
	ctx := context.Background()

	newSvc := func() (*NotificationService, *capturingDispatcher) {
		dispatcher := &capturingDispatcher{}
		svc := NewNotificationService(dispatcher, zap.NewNop(), config.NotificationConfig{AdminEmail: "admin@example.com"})
		return svc, dispatcher
	}

	t.Run("valid submission publishes the event", func(t *testing.T) {
		svc, dispatcher := newSvc()
		require.NoError(t, svc.SubmitContact(ctx, "visitor@example.com", "hello po"))
		require.Len(t, dispatcher.published, 1)
		require.Equal(t, events.EventContactSubmitted, dispatcher.published[0].Type)
		payload, ok := dispatcher.published[0].Payload.(events.ContactSubmittedPayload)
		require.True(t, ok)
		require.Equal(t, "visitor@example.com", payload.Email)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		svc, dispatcher := newSvc()
		err := svc.SubmitContact(ctx, "", "hello")
		var de *apperrors.DomainError
		require.ErrorAs(t, err, &de)
		require.Equal(t, "VALIDATION_FAILED", de.Code)
		require.Empty(t, dispatcher.published)
	})

	t.Run("malformed email rejected", func(t *testing.T) {
		svc, dispatcher := newSvc()
		require.Error(t, svc.SubmitContact(ctx, "no-at-sign", "hello"))
		require.Error(t, svc.SubmitContact(ctx, "has spaces@example.com", "hello"))
		require.Error(t, svc.SubmitContact(ctx, "trailing@", "hello"))
		require.Empty(t, dispatcher.published)
	})
}
