package port_persistence

import (
	"context"

	"github.com/google/uuid"

	domain_ledger "github.com/PedroCamargo-dev/core-ledger-service/internal/domain/ledger"
)

type AppendEntryParams struct {
	AccountID       uuid.UUID
	RelatedTransfer *uuid.UUID
	Direction       domain_ledger.Direction
	Amount          int64
	Currency        string
	Description     *string
}

type EntryRepository interface {
	// Append writes one immutable ledger entry and returns its id.
	// Pure insert: safe to call twice inside one unit of work for the
	// two sides of a transfer.
	Append(ctx context.Context, p AppendEntryParams) (uuid.UUID, error)

	// ListForAccount returns entries ordered by created_at descending,
	// id descending as a stable tiebreak.
	ListForAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*domain_ledger.Entry, error)
}
