package impl_ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	domain_account "github.com/PedroCamargo-dev/core-ledger-service/internal/domain/account"
	domain_ledger "github.com/PedroCamargo-dev/core-ledger-service/internal/domain/ledger"
	domain_transfer "github.com/PedroCamargo-dev/core-ledger-service/internal/domain/transfer"
	port_persistence "github.com/PedroCamargo-dev/core-ledger-service/internal/ports/gateway/persistence"
	port_ledger "github.com/PedroCamargo-dev/core-ledger-service/internal/ports/usecase/ledger"
)

// Transfer moves amount from one account to another as a double entry.
// The pending row is committed before the move so a concurrent retry
// with the same idempotency key observes it; the locked move itself is
// one atomic unit: both entries, both deltas and the succeeded status
// become visible together or not at all.
func (s *LedgerService) Transfer(ctx context.Context, in port_ledger.TransferInput) (port_ledger.TransferOutput, error) {
	if in.FromAccountID == uuid.Nil || in.ToAccountID == uuid.Nil {
		return port_ledger.TransferOutput{}, ErrInvalidInput
	}

	from, to := in.FromAccountID, in.ToAccountID

	t, err := domain_transfer.New(domain_transfer.NewParams{
		TransferID:     s.ids.NewUUID(),
		FromAccountID:  &from,
		ToAccountID:    &to,
		Amount:         in.Amount,
		Currency:       in.Currency,
		IdempotencyKey: in.IdempotencyKey,
		Now:            s.clock.Now(),
	})
	if err != nil {
		return port_ledger.TransferOutput{}, err
	}

	existing, err := s.beginOrFetch(ctx, t, HashTransferInput(in))
	if err != nil {
		return port_ledger.TransferOutput{}, err
	}
	if existing != nil {
		return port_ledger.TransferOutput{
			TransferID:    existing.Transfer.ID(),
			Status:        string(existing.Transfer.Status()),
			AlreadyExists: true,
			CreatedAt:     existing.Transfer.CreatedAt(),
		}, nil
	}

	var debitEntryID, creditEntryID uuid.UUID

	txErr := s.uow.WithinTx(ctx, func(txCtx context.Context) error {
		accounts, err := s.accounts.LockForUpdate(txCtx, []uuid.UUID{from, to})
		if err != nil {
			return err
		}

		// Funds check only after the source lock is held; checking
		// before locking races with concurrent debits.
		src := accounts[from]
		if !src.HasSufficientFunds(t.Amount()) {
			return domain_account.ErrInsufficientFunds
		}

		transferID := t.ID()

		debitEntryID, err = s.entries.Append(txCtx, port_persistence.AppendEntryParams{
			AccountID:       from,
			RelatedTransfer: &transferID,
			Direction:       domain_ledger.DirectionDebit,
			Amount:          t.Amount(),
			Currency:        t.Currency(),
		})
		if err != nil {
			return fmt.Errorf("append debit entry: %w", err)
		}

		creditEntryID, err = s.entries.Append(txCtx, port_persistence.AppendEntryParams{
			AccountID:       to,
			RelatedTransfer: &transferID,
			Direction:       domain_ledger.DirectionCredit,
			Amount:          t.Amount(),
			Currency:        t.Currency(),
		})
		if err != nil {
			return fmt.Errorf("append credit entry: %w", err)
		}

		if err := s.accounts.ApplyDelta(txCtx, from, -t.Amount()); err != nil {
			return fmt.Errorf("debit source balance: %w", err)
		}

		if err := s.accounts.ApplyDelta(txCtx, to, t.Amount()); err != nil {
			return fmt.Errorf("credit destination balance: %w", err)
		}

		if err := t.Succeed(s.clock.Now()); err != nil {
			return err
		}

		if err := s.transfers.Finalize(txCtx, t.ID(), domain_transfer.StatusSucceeded, ""); err != nil {
			return fmt.Errorf("finalize transfer: %w", err)
		}

		return s.enqueueEvents(txCtx, t)
	})
	if txErr != nil {
		s.markFailed(ctx, t, txErr)
		return port_ledger.TransferOutput{}, txErr
	}

	return port_ledger.TransferOutput{
		TransferID:    t.ID(),
		Status:        string(t.Status()),
		DebitEntryID:  debitEntryID,
		CreditEntryID: creditEntryID,
		CreatedAt:     t.CreatedAt(),
	}, nil
}
