// Package events publishes catalog domain events to RabbitMQ.
// Publishing is best effort: callers log failures and carry on.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types, also used as routing keys.
const (
	ProductCreated  = "product.created"
	ProductDeleted  = "product.deleted"
	CategoryDeleted = "category.deleted"
)

// Event is the JSON payload of every message.
type Event struct {
	Type       string    `json:"type"`
	EntityID   uuid.UUID `json:"entity_id"`
	Name       string    `json:"name,omitempty"`
	Hard       bool      `json:"hard"`
	OccurredAt time.Time `json:"occurred_at"`
}

// New returns an event stamped with the current UTC time.
func New(eventType string, id uuid.UUID) Event {
	return Event{Type: eventType, EntityID: id, OccurredAt: time.Now().UTC()}
}

// NoopPublisher discards events. Used when RABBITMQ_URL is unset.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }

func (NoopPublisher) Close() error { return nil }
