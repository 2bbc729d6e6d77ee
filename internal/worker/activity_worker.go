package worker

import (
	"github.com/dulagbps/records-service/internal/events"
	"github.com/dulagbps/records-service/internal/service"
)

// StartActivityWorker wires the activity recorder and notification handlers
// onto the dispatcher. Both run synchronously with the publishing request;
// neither can fail it.
func StartActivityWorker(dispatcher events.Dispatcher, activities *service.ActivityService, notifications *service.NotificationService) {
	if activities != nil {
		activities.RegisterHandlers(dispatcher)
	}
	if notifications != nil {
		notifications.RegisterHandlers()
	}
}
