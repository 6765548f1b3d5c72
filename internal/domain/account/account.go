package domain_account

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Account holds the current balance for one currency. The balance is
// stored in integer minor units and only changes through balance deltas
// applied inside a unit of work that holds the account's row lock.
type Account struct {
	ID        uuid.UUID
	OwnerID   *string
	Currency  string
	Balance   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type NewParams struct {
	AccountID uuid.UUID
	OwnerID   *string
	Currency  string
	Now       time.Time
}

func New(p NewParams) (*Account, error) {
	if p.AccountID == uuid.Nil {
		return nil, ErrInvalidAccountID
	}

	cur := strings.ToUpper(strings.TrimSpace(p.Currency))
	if len(cur) != 3 {
		return nil, ErrInvalidCurrency
	}

	if p.Now.IsZero() {
		p.Now = time.Now().UTC()
	}

	return &Account{
		ID:        p.AccountID,
		OwnerID:   p.OwnerID,
		Currency:  cur,
		Balance:   0,
		CreatedAt: p.Now,
		UpdatedAt: p.Now,
	}, nil
}

func (a *Account) HasSufficientFunds(amount int64) bool {
	return a.Balance >= amount
}

// Apply adds a signed delta to the balance. Funds must have been
// verified by the caller while holding the account lock; Apply only
// refuses deltas that would break the non-negative invariant outright.
func (a *Account) Apply(delta int64) error {
	if a.Balance+delta < 0 {
		return ErrInsufficientFunds
	}
	a.Balance += delta
	return nil
}
