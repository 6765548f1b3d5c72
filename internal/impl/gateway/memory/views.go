package gateway_memory

import (
	"context"

	"github.com/google/uuid"

	domain_account "github.com/PedroCamargo-dev/core-ledger-service/internal/domain/account"
	domain_ledger "github.com/PedroCamargo-dev/core-ledger-service/internal/domain/ledger"
	domain_transfer "github.com/PedroCamargo-dev/core-ledger-service/internal/domain/transfer"
	port_persistence "github.com/PedroCamargo-dev/core-ledger-service/internal/ports/gateway/persistence"
)

// The store exposes one narrow view per persistence port; all views
// share the same underlying maps and locking state.

func (s *Store) Accounts() port_persistence.AccountRepository { return accountsView{s} }

func (s *Store) Entries() port_persistence.EntryRepository { return entriesView{s} }

func (s *Store) Transfers() port_persistence.TransferRepository { return transfersView{s} }

func (s *Store) Outbox() port_persistence.OutboxRepository { return outboxView{s} }

func (s *Store) UnitOfWork() port_persistence.UnitOfWork { return s }

type accountsView struct{ s *Store }

func (v accountsView) Create(ctx context.Context, acc *domain_account.Account) error {
	return v.s.createAccount(ctx, acc)
}

func (v accountsView) GetByID(ctx context.Context, id uuid.UUID) (*domain_account.Account, error) {
	return v.s.getAccountByID(ctx, id)
}

func (v accountsView) LockForUpdate(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain_account.Account, error) {
	return v.s.lockForUpdate(ctx, ids)
}

func (v accountsView) ApplyDelta(ctx context.Context, id uuid.UUID, delta int64) error {
	return v.s.applyDelta(ctx, id, delta)
}

type entriesView struct{ s *Store }

func (v entriesView) Append(ctx context.Context, p port_persistence.AppendEntryParams) (uuid.UUID, error) {
	return v.s.appendEntry(ctx, p)
}

func (v entriesView) ListForAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*domain_ledger.Entry, error) {
	return v.s.listForAccount(ctx, accountID, limit, offset)
}

type transfersView struct{ s *Store }

func (v transfersView) Create(ctx context.Context, t *domain_transfer.Transfer, requestHash string) error {
	return v.s.createTransfer(ctx, t, requestHash)
}

func (v transfersView) GetByID(ctx context.Context, transferID uuid.UUID) (*port_persistence.StoredTransfer, error) {
	return v.s.getTransferByID(ctx, transferID)
}

func (v transfersView) GetByIdempotencyKey(ctx context.Context, key string) (*port_persistence.StoredTransfer, error) {
	return v.s.getByIdempotencyKey(ctx, key)
}

func (v transfersView) Finalize(ctx context.Context, transferID uuid.UUID, status domain_transfer.Status, failureReason string) error {
	return v.s.finalize(ctx, transferID, status, failureReason)
}

type outboxView struct{ s *Store }

func (v outboxView) Enqueue(ctx context.Context, msg port_persistence.OutboxMessage) error {
	return v.s.enqueue(ctx, msg)
}

func (v outboxView) DequeueBatch(ctx context.Context, limit int) ([]port_persistence.OutboxMessage, error) {
	return v.s.dequeueBatch(ctx, limit)
}

func (v outboxView) MarkPublished(ctx context.Context, messageID string) error {
	return v.s.markPublished(ctx, messageID)
}
