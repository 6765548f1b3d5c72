package domain_transfer

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Transfer is the record of one money movement attempt. A two-sided
// transfer names both accounts; a deposit leaves the source nil and a
// withdrawal leaves the destination nil. The row is persisted in
// pending state before any balance mutation and reaches exactly one
// terminal state.
type Transfer struct {
	id uuid.UUID

	fromAccountID *uuid.UUID
	toAccountID   *uuid.UUID
	amount        int64
	currency      string

	status         Status
	idempotencyKey string
	failureReason  string

	createdAt time.Time
	updatedAt time.Time

	pendingEvents []DomainEvent
}

type NewParams struct {
	TransferID     uuid.UUID
	FromAccountID  *uuid.UUID
	ToAccountID    *uuid.UUID
	Amount         int64
	Currency       string
	IdempotencyKey string
	Now            time.Time
}

func New(p NewParams) (*Transfer, error) {
	if p.TransferID == uuid.Nil {
		return nil, ErrInvalidTransferID
	}

	if p.FromAccountID == nil && p.ToAccountID == nil {
		return nil, ErrNoAccounts
	}

	if p.FromAccountID != nil && *p.FromAccountID == uuid.Nil {
		return nil, ErrInvalidAccountID
	}

	if p.ToAccountID != nil && *p.ToAccountID == uuid.Nil {
		return nil, ErrInvalidAccountID
	}

	if p.FromAccountID != nil && p.ToAccountID != nil && *p.FromAccountID == *p.ToAccountID {
		return nil, ErrSameAccount
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

	t := &Transfer{
		id:             p.TransferID,
		fromAccountID:  p.FromAccountID,
		toAccountID:    p.ToAccountID,
		amount:         p.Amount,
		currency:       cur,
		status:         StatusPending,
		idempotencyKey: strings.TrimSpace(p.IdempotencyKey),
		createdAt:      p.Now,
		updatedAt:      p.Now,
	}

	t.raise(TransferRequested{
		At:             p.Now,
		TransferID:     t.id,
		FromAccountID:  t.fromAccountID,
		ToAccountID:    t.toAccountID,
		Amount:         t.amount,
		Currency:       t.currency,
		IdempotencyKey: t.idempotencyKey,
	})

	return t, nil
}

// RestoreParams rehydrates a Transfer from storage without raising
// events or re-running creation validation.
type RestoreParams struct {
	TransferID     uuid.UUID
	FromAccountID  *uuid.UUID
	ToAccountID    *uuid.UUID
	Amount         int64
	Currency       string
	Status         Status
	IdempotencyKey string
	FailureReason  string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func Restore(p RestoreParams) *Transfer {
	return &Transfer{
		id:             p.TransferID,
		fromAccountID:  p.FromAccountID,
		toAccountID:    p.ToAccountID,
		amount:         p.Amount,
		currency:       p.Currency,
		status:         p.Status,
		idempotencyKey: p.IdempotencyKey,
		failureReason:  p.FailureReason,
		createdAt:      p.CreatedAt,
		updatedAt:      p.UpdatedAt,
	}
}

func (t *Transfer) Succeed(now time.Time) error {
	if t.status.IsFinal() {
		return ErrAlreadyFinalized
	}

	if t.status != StatusPending {
		return ErrInvalidStateTransition
	}

	if now.IsZero() {
		now = time.Now().UTC()
	}

	t.status = StatusSucceeded
	t.updatedAt = now

	t.raise(TransferSucceeded{
		At:         now,
		TransferID: t.id,
		Amount:     t.amount,
		Currency:   t.currency,
	})

	return nil
}

func (t *Transfer) Fail(failureReason string, now time.Time) error {
	if t.status.IsFinal() {
		return ErrAlreadyFinalized
	}

	if t.status != StatusPending {
		return ErrInvalidStateTransition
	}

	failureReason = strings.TrimSpace(failureReason)
	if failureReason == "" {
		return ErrMissingFailureReason
	}

	if now.IsZero() {
		now = time.Now().UTC()
	}

	t.status = StatusFailed
	t.failureReason = failureReason
	t.updatedAt = now

	t.raise(TransferFailed{
		At:         now,
		TransferID: t.id,
		Reason:     failureReason,
	})

	return nil
}

// IsDeposit reports whether the movement only credits the destination.
func (t *Transfer) IsDeposit() bool { return t.fromAccountID == nil }

// IsWithdrawal reports whether the movement only debits the source.
func (t *Transfer) IsWithdrawal() bool { return t.toAccountID == nil }

func (t *Transfer) PullEvents() []DomainEvent {
	if len(t.pendingEvents) == 0 {
		return nil
	}

	ev := make([]DomainEvent, len(t.pendingEvents))
	copy(ev, t.pendingEvents)

	t.pendingEvents = t.pendingEvents[:0]

	return ev
}

func (t *Transfer) raise(event DomainEvent) {
	t.pendingEvents = append(t.pendingEvents, event)
}

func (t *Transfer) ID() uuid.UUID { return t.id }

func (t *Transfer) FromAccountID() *uuid.UUID { return t.fromAccountID }

func (t *Transfer) ToAccountID() *uuid.UUID { return t.toAccountID }

func (t *Transfer) Amount() int64 { return t.amount }

func (t *Transfer) Currency() string { return t.currency }

func (t *Transfer) Status() Status { return t.status }

func (t *Transfer) IdempotencyKey() string { return t.idempotencyKey }

func (t *Transfer) FailureReason() string { return t.failureReason }

func (t *Transfer) CreatedAt() time.Time { return t.createdAt }

func (t *Transfer) UpdatedAt() time.Time { return t.updatedAt }
