package port_ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type CreateAccountInput struct {
	OwnerID  *string
	Currency string
}

type AccountOutput struct {
	AccountID uuid.UUID
	OwnerID   *string
	Currency  string
	Balance   int64
	CreatedAt time.Time
}

type ListEntriesInput struct {
	AccountID uuid.UUID
	Limit     int
	Offset    int
}

type EntryOutput struct {
	EntryID         uuid.UUID
	AccountID       uuid.UUID
	RelatedTransfer *uuid.UUID
	Direction       string
	Amount          int64
	Currency        string
	Description     *string
	CreatedAt       time.Time
}

type AccountUseCase interface {
	CreateAccount(ctx context.Context, input CreateAccountInput) (AccountOutput, error)
	GetAccount(ctx context.Context, accountID uuid.UUID) (AccountOutput, error)
	ListEntries(ctx context.Context, input ListEntriesInput) ([]EntryOutput, error)
}
