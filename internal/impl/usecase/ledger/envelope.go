package impl_ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	domain_transfer "github.com/PedroCamargo-dev/core-ledger-service/internal/domain/transfer"
	port_persistence "github.com/PedroCamargo-dev/core-ledger-service/internal/ports/gateway/persistence"
)

const (
	envelopeSchemaVersion = 1
	producerName          = "core-ledger-service"
	aggregateTransfer     = "transfer"
)

type eventEnvelope struct {
	Meta envelopeMeta    `json:"meta"`
	Data json.RawMessage `json:"data"`
}

type envelopeMeta struct {
	SchemaVersion int       `json:"schema_version"`
	MessageID     string    `json:"message_id"`
	EventType     string    `json:"event_type"`
	Producer      string    `json:"producer"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type transferRequestedData struct {
	TransferID     string  `json:"transfer_id"`
	FromAccountID  *string `json:"from_account_id"`
	ToAccountID    *string `json:"to_account_id"`
	Amount         int64   `json:"amount"`
	Currency       string  `json:"currency"`
	IdempotencyKey string  `json:"idempotency_key,omitempty"`
}

type transferSucceededData struct {
	TransferID string `json:"transfer_id"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`
}

type transferFailedData struct {
	TransferID string `json:"transfer_id"`
	Reason     string `json:"reason"`
}

// enqueueEvents drains the transfer's pending domain events into the
// outbox. Called inside the money-move unit of work on success so the
// envelopes commit together with the balance change.
func (s *LedgerService) enqueueEvents(ctx context.Context, t *domain_transfer.Transfer) error {
	for _, ev := range t.PullEvents() {
		data, err := marshalEventData(ev)
		if err != nil {
			return err
		}

		env := eventEnvelope{
			Meta: envelopeMeta{
				SchemaVersion: envelopeSchemaVersion,
				MessageID:     s.ids.NewUUID().String(),
				EventType:     ev.EventName(),
				Producer:      producerName,
				OccurredAt:    ev.OccurredAt(),
			},
			Data: data,
		}

		payload, err := json.Marshal(env)
		if err != nil {
			return fmt.Errorf("marshal event envelope: %w", err)
		}

		msg := port_persistence.OutboxMessage{
			MessageID:     env.Meta.MessageID,
			EventType:     ev.EventName(),
			AggregateType: aggregateTransfer,
			AggregateID:   ev.AggregateID().String(),
			Payload:       payload,
			OccurredAt:    ev.OccurredAt(),
		}

		if err := s.outbox.Enqueue(ctx, msg); err != nil {
			return fmt.Errorf("enqueue outbox message: %w", err)
		}
	}

	return nil
}

func marshalEventData(ev domain_transfer.DomainEvent) (json.RawMessage, error) {
	var data any

	switch e := ev.(type) {
	case domain_transfer.TransferRequested:
		data = transferRequestedData{
			TransferID:     e.TransferID.String(),
			FromAccountID:  uuidPtrString(e.FromAccountID),
			ToAccountID:    uuidPtrString(e.ToAccountID),
			Amount:         e.Amount,
			Currency:       e.Currency,
			IdempotencyKey: e.IdempotencyKey,
		}
	case domain_transfer.TransferSucceeded:
		data = transferSucceededData{
			TransferID: e.TransferID.String(),
			Amount:     e.Amount,
			Currency:   e.Currency,
		}
	case domain_transfer.TransferFailed:
		data = transferFailedData{
			TransferID: e.TransferID.String(),
			Reason:     e.Reason,
		}
	default:
		return nil, fmt.Errorf("unknown domain event %q", ev.EventName())
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal event data: %w", err)
	}
	return raw, nil
}

func uuidPtrString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
