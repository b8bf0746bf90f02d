package service

import (
	"icebreaker/backend/internal/hub"

	"go.uber.org/zap"
)

//go:generate mockgen -source=events.go -destination=mocks/mock_events.go -package=mocks

// EventPublisher delivers catalog change events to live subscribers.
type EventPublisher interface {
	Broadcast(topic string, event hub.Event) error
}

// publish sends a catalog event after a committed change. Delivery is best effort.
func publish(p EventPublisher, log *zap.Logger, eventType string, payload interface{}) {
	if p == nil {
		return
	}
	if err := p.Broadcast(hub.TopicCatalog, hub.Event{Type: eventType, Payload: payload}); err != nil {
		log.Warn("failed to publish catalog event", zap.String("type", eventType), zap.Error(err))
	}
}

// CardEvent is the payload of game card events.
type CardEvent struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}
