package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/config"
	"github.com/spec-kit/portfolio-service/internal/events"
)

// NotificationService forwards site events to the owner. Delivery is stubbed out as log lines.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
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
	n.dispatcher.Subscribe(events.EventContactReceived, n.handleContactReceived)
	n.dispatcher.Subscribe(events.EventContentChanged, n.handleContentChanged)
}

func (n *NotificationService) handleContactReceived(ctx context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.ContactReceivedPayload)
	n.logger.Info("ContactReceived",
		zap.String("event_id", event.ID),
		zap.String("message_id", payload.MessageID),
		zap.String("sender_email", payload.SenderEmail),
	)
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleContentChanged(ctx context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.ContentChangedPayload)
	n.logger.Info("ContentChanged",
		zap.String("event_id", event.ID),
		zap.String("kind", string(payload.Kind)),
		zap.String("entity_id", payload.EntityID),
		zap.String("action", string(payload.Action)),
		zap.String("actor_id", event.ActorID),
	)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)))
}
