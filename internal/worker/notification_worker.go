package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/gamification-service/internal/service"
)

// StartNotificationWorker subscribes the notification service to unlock and
// milestone events. Delivery is synchronous with scoring for now; this seam
// is where a queue-backed worker would slot in if notification volume grows.
func StartNotificationWorker(notificationService *service.NotificationService, logger *zap.Logger) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
	logger.Info("notification worker started")
}
