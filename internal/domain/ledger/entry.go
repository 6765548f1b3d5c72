package domain_ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Direction string

const (
	DirectionCredit Direction = "credit"
	DirectionDebit  Direction = "debit"
)

func (d Direction) Valid() bool {
	return d == DirectionCredit || d == DirectionDebit
}

// Entry is one immutable leg of a money movement. Entries are append
// only: once written they are never updated or deleted, and the account
// balance is always the sum of its entries.
type Entry struct {
	ID              uuid.UUID
	AccountID       uuid.UUID
	RelatedTransfer *uuid.UUID
	Direction       Direction
	Amount          int64
	Currency        string
	Description     *string
	CreatedAt       time.Time
}

type NewParams struct {
	EntryID         uuid.UUID
	AccountID       uuid.UUID
	RelatedTransfer *uuid.UUID
	Direction       Direction
	Amount          int64
	Currency        string
	Description     *string
	Now             time.Time
}

func New(p NewParams) (*Entry, error) {
	if p.EntryID == uuid.Nil || p.AccountID == uuid.Nil {
		return nil, ErrInvalidEntry
	}

	if !p.Direction.Valid() {
		return nil, ErrInvalidDirection
	}

	if p.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	cur := strings.ToUpper(strings.TrimSpace(p.Currency))
	if len(cur) != 3 {
		return nil, ErrInvalidCurrency
	}

	if p.Now.IsZero() {
		p.Now = time.Now().UTC()
	}

	return &Entry{
		ID:              p.EntryID,
		AccountID:       p.AccountID,
		RelatedTransfer: p.RelatedTransfer,
		Direction:       p.Direction,
		Amount:          p.Amount,
		Currency:        cur,
		Description:     p.Description,
		CreatedAt:       p.Now,
	}, nil
}
