package worker

import (
	"github.com/spec-kit/portfolio-service/internal/cache"
	"github.com/spec-kit/portfolio-service/internal/events"
	"github.com/spec-kit/portfolio-service/internal/service"
)

// StartSubscribers wires event consumers: owner notifications and listing cache invalidation.
func StartSubscribers(dispatcher events.Dispatcher, notifications *service.NotificationService, listings *cache.Listings) {
	if notifications != nil {
		notifications.RegisterHandlers()
	}
	if listings != nil {
		listings.Subscribe(dispatcher)
	}
}
