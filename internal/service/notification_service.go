package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dulagbps/records-service/internal/config"
	"github.com/dulagbps/records-service/internal/events"
	apperrors "github.com/dulagbps/records-service/pkg/util"
)

// NotificationService forwards contact-form submissions and record events to
// the configured outbound channels. Delivery is a stub that logs the intent;
// actual transport lives outside this service.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, logger: logger, cfg: cfg}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventContactSubmitted, n.handleContactSubmitted)
	n.dispatcher.Subscribe(events.EventAnnouncementCreated, n.handleAnnouncementCreated)
}

// SubmitContact validates and publishes a public contact-form submission.
func (n *NotificationService) SubmitContact(ctx context.Context, email, message string) error {
	if email == "" || message == "" {
		return apperrors.NewValidationError("email and message are required", nil)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return apperrors.NewValidationError("invalid email format", nil)
	}
	return n.dispatcher.Publish(ctx, events.Event{
		Type:      events.EventContactSubmitted,
		Payload:   events.ContactSubmittedPayload{Email: email, Message: message},
		Timestamp: time.Now(),
	})
}

func (n *NotificationService) handleContactSubmitted(_ context.Context, event events.Event) error {
	if strings.TrimSpace(n.cfg.AdminEmail) == "" {
		n.logger.Warn("contact submission dropped, no admin email configured")
		return nil
	}
	n.logger.Info("contact submission forwarded",
		zap.String("to", n.cfg.AdminEmail),
		zap.String("from", n.cfg.EmailFrom),
		zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleAnnouncementCreated(_ context.Context, event events.Event) error {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return nil
	}
	n.logger.Info("announcement webhook notification",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("announcement_id", event.SubjectID))
	return nil
}
