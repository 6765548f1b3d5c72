package domain_transfer

import (
	"time"

	"github.com/google/uuid"
)

type DomainEvent interface {
	EventName() string
	OccurredAt() time.Time
	AggregateID() uuid.UUID
}

type TransferRequested struct {
	At         time.Time
	TransferID uuid.UUID

	FromAccountID  *uuid.UUID
	ToAccountID    *uuid.UUID
	Amount         int64
	Currency       string
	IdempotencyKey string
}

func (e TransferRequested) EventName() string { return "transfer.requested" }

func (e TransferRequested) OccurredAt() time.Time { return e.At }

func (e TransferRequested) AggregateID() uuid.UUID { return e.TransferID }

type TransferSucceeded struct {
	At         time.Time
	TransferID uuid.UUID
	Amount     int64
	Currency   string
}

func (e TransferSucceeded) EventName() string { return "transfer.succeeded" }

func (e TransferSucceeded) OccurredAt() time.Time { return e.At }

func (e TransferSucceeded) AggregateID() uuid.UUID { return e.TransferID }

type TransferFailed struct {
	At         time.Time
	TransferID uuid.UUID
	Reason     string
}

func (e TransferFailed) EventName() string { return "transfer.failed" }

func (e TransferFailed) OccurredAt() time.Time { return e.At }

func (e TransferFailed) AggregateID() uuid.UUID { return e.TransferID }
