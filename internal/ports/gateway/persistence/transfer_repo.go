package port_persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"

	domain_transfer "github.com/PedroCamargo-dev/core-ledger-service/internal/domain/transfer"
)

var (
	ErrNotFound = errors.New("persistence: not found")

	// ErrIdempotencyKeyTaken signals the unique-key insert lost the
	// race; the caller must fetch and return the winner's row.
	ErrIdempotencyKeyTaken = errors.New("persistence: idempotency key already registered")
)

type StoredTransfer struct {
	Transfer    *domain_transfer.Transfer
	RequestHash string
}

type TransferRepository interface {
	// Create inserts a pending transfer row. When the transfer carries
	// an idempotency key and that key is already registered, Create
	// returns ErrIdempotencyKeyTaken without inserting.
	Create(ctx context.Context, t *domain_transfer.Transfer, requestHash string) error

	GetByID(ctx context.Context, transferID uuid.UUID) (*StoredTransfer, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*StoredTransfer, error)

	// Finalize moves a pending transfer to a terminal status. A row
	// already in a terminal state is left untouched and reported via
	// domain_transfer.ErrAlreadyFinalized.
	Finalize(ctx context.Context, transferID uuid.UUID, status domain_transfer.Status, failureReason string) error
}
