package port_persistence

import (
	"context"

	"github.com/google/uuid"

	domain_account "github.com/PedroCamargo-dev/core-ledger-service/internal/domain/account"
)

type AccountRepository interface {
	Create(ctx context.Context, acc *domain_account.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain_account.Account, error)

	// LockForUpdate acquires exclusive row holds on every listed
	// account and returns their current state. It must only be called
	// inside an active unit of work. Implementations sort the id set
	// into a total order before acquiring, so two concurrent units of
	// work contending for the same accounts cannot deadlock. Returns
	// domain_account.ErrNotFound if any id is absent.
	LockForUpdate(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain_account.Account, error)

	// ApplyDelta adds a signed amount to an already-locked account's
	// balance. Sufficient funds for negative deltas must have been
	// verified by the caller while holding the lock.
	ApplyDelta(ctx context.Context, id uuid.UUID, delta int64) error
}
