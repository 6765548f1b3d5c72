package port_ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MovementInput describes a one-sided operation: a deposit credits the
// account, a withdrawal debits it. Amount is integer minor units.
type MovementInput struct {
	AccountID      uuid.UUID
	Amount         int64
	Currency       string
	Description    *string
	IdempotencyKey string
}

type MovementOutput struct {
	TransferID uuid.UUID
	Status     string
	EntryID    uuid.UUID

	// AlreadyExists is set when the idempotency key matched a prior
	// request; the output then mirrors that original operation.
	AlreadyExists bool
}

type TransferInput struct {
	FromAccountID  uuid.UUID
	ToAccountID    uuid.UUID
	Amount         int64
	Currency       string
	IdempotencyKey string
}

type TransferOutput struct {
	TransferID    uuid.UUID
	Status        string
	DebitEntryID  uuid.UUID
	CreditEntryID uuid.UUID
	AlreadyExists bool
	CreatedAt     time.Time
}

type MovementUseCase interface {
	Deposit(ctx context.Context, input MovementInput) (MovementOutput, error)
	Withdraw(ctx context.Context, input MovementInput) (MovementOutput, error)
	Transfer(ctx context.Context, input TransferInput) (TransferOutput, error)
}
