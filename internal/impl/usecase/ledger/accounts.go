package impl_ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	domain_account "github.com/PedroCamargo-dev/core-ledger-service/internal/domain/account"
	port_ledger "github.com/PedroCamargo-dev/core-ledger-service/internal/ports/usecase/ledger"
)

const (
	defaultEntryPageSize = 20
	maxEntryPageSize     = 100
)

func (s *LedgerService) CreateAccount(ctx context.Context, in port_ledger.CreateAccountInput) (port_ledger.AccountOutput, error) {
	acc, err := domain_account.New(domain_account.NewParams{
		AccountID: s.ids.NewUUID(),
		OwnerID:   in.OwnerID,
		Currency:  in.Currency,
		Now:       s.clock.Now(),
	})
	if err != nil {
		return port_ledger.AccountOutput{}, err
	}

	if err := s.accounts.Create(ctx, acc); err != nil {
		return port_ledger.AccountOutput{}, fmt.Errorf("create account: %w", err)
	}

	return accountOutput(acc), nil
}

func (s *LedgerService) GetAccount(ctx context.Context, accountID uuid.UUID) (port_ledger.AccountOutput, error) {
	if accountID == uuid.Nil {
		return port_ledger.AccountOutput{}, ErrInvalidInput
	}

	acc, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return port_ledger.AccountOutput{}, err
	}

	return accountOutput(acc), nil
}

func (s *LedgerService) ListEntries(ctx context.Context, in port_ledger.ListEntriesInput) ([]port_ledger.EntryOutput, error) {
	if in.AccountID == uuid.Nil {
		return nil, ErrInvalidInput
	}

	limit := in.Limit
	if limit <= 0 {
		limit = defaultEntryPageSize
	}
	if limit > maxEntryPageSize {
		limit = maxEntryPageSize
	}

	offset := in.Offset
	if offset < 0 {
		offset = 0
	}

	entries, err := s.entries.ListForAccount(ctx, in.AccountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	out := make([]port_ledger.EntryOutput, 0, len(entries))
	for _, e := range entries {
		out = append(out, port_ledger.EntryOutput{
			EntryID:         e.ID,
			AccountID:       e.AccountID,
			RelatedTransfer: e.RelatedTransfer,
			Direction:       string(e.Direction),
			Amount:          e.Amount,
			Currency:        e.Currency,
			Description:     e.Description,
			CreatedAt:       e.CreatedAt,
		})
	}

	return out, nil
}

func accountOutput(acc *domain_account.Account) port_ledger.AccountOutput {
	return port_ledger.AccountOutput{
		AccountID: acc.ID,
		OwnerID:   acc.OwnerID,
		Currency:  acc.Currency,
		Balance:   acc.Balance,
		CreatedAt: acc.CreatedAt,
	}
}
