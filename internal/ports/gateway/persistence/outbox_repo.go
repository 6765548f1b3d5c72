package port_persistence

import (
	"context"
	"time"
)

type OutboxMessage struct {
	MessageID     string
	EventType     string
	AggregateType string
	AggregateID   string
	Payload       []byte
	OccurredAt    time.Time
}

// OutboxRepository stores event envelopes in the same unit of work as
// the state change that produced them; a relay process drains them to
// the broker afterwards.
type OutboxRepository interface {
	Enqueue(ctx context.Context, msg OutboxMessage) error
	DequeueBatch(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkPublished(ctx context.Context, messageID string) error
}
