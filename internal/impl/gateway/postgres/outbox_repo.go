package gateway_postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	port_persistence "github.com/PedroCamargo-dev/core-ledger-service/internal/ports/gateway/persistence"
)

type OutboxRepository struct {
	pool *pgxpool.Pool
}

func NewOutboxRepository(pool *pgxpool.Pool) *OutboxRepository {
	return &OutboxRepository{pool: pool}
}

func (r *OutboxRepository) Enqueue(ctx context.Context, msg port_persistence.OutboxMessage) error {
	q := queryEngine(ctx, r.pool)

	_, err := q.Exec(ctx, `
		INSERT INTO outbox_messages (message_id, event_type, aggregate_type, aggregate_id, payload, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		msg.MessageID, msg.EventType, msg.AggregateType, msg.AggregateID, msg.Payload, msg.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("enqueue outbox message: %w", err)
	}

	return nil
}

// DequeueBatch claims unpublished rows with SKIP LOCKED. The claim
// only holds while the surrounding unit of work does: callers that
// want relay workers to skip each other's batches must dequeue and
// mark inside one WithinTx. Outside a unit of work the locks end with
// the statement and delivery degrades to at-least-once.
func (r *OutboxRepository) DequeueBatch(ctx context.Context, limit int) ([]port_persistence.OutboxMessage, error) {
	q := queryEngine(ctx, r.pool)

	rows, err := q.Query(ctx, `
		SELECT message_id, event_type, aggregate_type, aggregate_id, payload, occurred_at
		FROM outbox_messages
		WHERE published_at IS NULL
		ORDER BY occurred_at, message_id
		LIMIT $1
		FOR UPDATE SKIP LOCKED`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("dequeue outbox batch: %w", err)
	}
	defer rows.Close()

	var batch []port_persistence.OutboxMessage
	for rows.Next() {
		var msg port_persistence.OutboxMessage
		if err := rows.Scan(&msg.MessageID, &msg.EventType, &msg.AggregateType, &msg.AggregateID, &msg.Payload, &msg.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan outbox message: %w", err)
		}
		batch = append(batch, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dequeue outbox batch: %w", err)
	}

	return batch, nil
}

func (r *OutboxRepository) MarkPublished(ctx context.Context, messageID string) error {
	q := queryEngine(ctx, r.pool)

	_, err := q.Exec(ctx, `
		UPDATE outbox_messages
		SET published_at = now()
		WHERE message_id = $1`,
		messageID,
	)
	if err != nil {
		return fmt.Errorf("mark outbox message published: %w", err)
	}

	return nil
}
