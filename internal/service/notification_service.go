package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/gamification-service/internal/config"
	"github.com/spec-kit/gamification-service/internal/events"
)

// NotificationService handles emitting notifications for gamification events
// so the agent-facing UI can react once per unlock or milestone.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventAchievementUnlocked, n.handleAchievementUnlocked)
	n.dispatcher.Subscribe(events.EventStreakMilestone, n.handleStreakMilestone)
}

func (n *NotificationService) handleAchievementUnlocked(ctx context.Context, event events.Event) error {
	n.logger.Info("AchievementUnlocked", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleStreakMilestone(ctx context.Context, event events.Event) error {
	n.logger.Info("StreakMilestone", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("user_id", event.UserID),
		zap.String("event_type", string(event.Type)))
}
