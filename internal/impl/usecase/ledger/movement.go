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

// Deposit credits a single account. It follows the same protocol as a
// two-sided transfer with a nil source: pending row first, then the
// locked move, then finalization.
func (s *LedgerService) Deposit(ctx context.Context, in port_ledger.MovementInput) (port_ledger.MovementOutput, error) {
	return s.movement(ctx, in, domain_ledger.DirectionCredit)
}

// Withdraw debits a single account, with the insufficient-funds check
// performed after the account lock is held.
func (s *LedgerService) Withdraw(ctx context.Context, in port_ledger.MovementInput) (port_ledger.MovementOutput, error) {
	return s.movement(ctx, in, domain_ledger.DirectionDebit)
}

func (s *LedgerService) movement(ctx context.Context, in port_ledger.MovementInput, direction domain_ledger.Direction) (port_ledger.MovementOutput, error) {
	if in.AccountID == uuid.Nil {
		return port_ledger.MovementOutput{}, ErrInvalidInput
	}

	account := in.AccountID

	params := domain_transfer.NewParams{
		TransferID:     s.ids.NewUUID(),
		Amount:         in.Amount,
		Currency:       in.Currency,
		IdempotencyKey: in.IdempotencyKey,
		Now:            s.clock.Now(),
	}

	kind := "deposit"
	if direction == domain_ledger.DirectionCredit {
		params.ToAccountID = &account
	} else {
		kind = "withdraw"
		params.FromAccountID = &account
	}

	t, err := domain_transfer.New(params)
	if err != nil {
		return port_ledger.MovementOutput{}, err
	}

	existing, err := s.beginOrFetch(ctx, t, HashMovementInput(kind, account, in.Amount, in.Currency))
	if err != nil {
		return port_ledger.MovementOutput{}, err
	}
	if existing != nil {
		return port_ledger.MovementOutput{
			TransferID:    existing.Transfer.ID(),
			Status:        string(existing.Transfer.Status()),
			AlreadyExists: true,
		}, nil
	}

	var entryID uuid.UUID

	txErr := s.uow.WithinTx(ctx, func(txCtx context.Context) error {
		accounts, err := s.accounts.LockForUpdate(txCtx, []uuid.UUID{account})
		if err != nil {
			return err
		}

		delta := t.Amount()
		if direction == domain_ledger.DirectionDebit {
			if !accounts[account].HasSufficientFunds(t.Amount()) {
				return domain_account.ErrInsufficientFunds
			}
			delta = -delta
		}

		transferID := t.ID()

		entryID, err = s.entries.Append(txCtx, port_persistence.AppendEntryParams{
			AccountID:       account,
			RelatedTransfer: &transferID,
			Direction:       direction,
			Amount:          t.Amount(),
			Currency:        t.Currency(),
			Description:     in.Description,
		})
		if err != nil {
			return fmt.Errorf("append %s entry: %w", direction, err)
		}

		if err := s.accounts.ApplyDelta(txCtx, account, delta); err != nil {
			return fmt.Errorf("apply balance delta: %w", err)
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
		return port_ledger.MovementOutput{}, txErr
	}

	return port_ledger.MovementOutput{
		TransferID: t.ID(),
		Status:     string(t.Status()),
		EntryID:    entryID,
	}, nil
}
