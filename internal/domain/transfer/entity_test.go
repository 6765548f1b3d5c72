package domain_transfer_test

import (
	"errors"
	"testing"
	"time"

	domain_transfer "github.com/PedroCamargo-dev/core-ledger-service/internal/domain/transfer"
	"github.com/google/uuid"
)

func ptr(id uuid.UUID) *uuid.UUID { return &id }

func TestNew(t *testing.T) {
	validID := uuid.New()
	fromAccountID := uuid.New()
	toAccountID := uuid.New()
	now := time.Now().UTC()

	t.Run("creates transfer with valid parameters", func(t *testing.T) {
		transfer, err := domain_transfer.New(domain_transfer.NewParams{
			TransferID:     validID,
			FromAccountID:  ptr(fromAccountID),
			ToAccountID:    ptr(toAccountID),
			Amount:         1000,
			Currency:       "USD",
			IdempotencyKey: "idempotency_key",
			Now:            now,
		})

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if transfer.ID() != validID {
			t.Errorf("expected transfer id %v, got %v", validID, transfer.ID())
		}

		if transfer.FromAccountID() == nil || *transfer.FromAccountID() != fromAccountID {
			t.Errorf("expected from account id %v, got %v", fromAccountID, transfer.FromAccountID())
		}

		if transfer.ToAccountID() == nil || *transfer.ToAccountID() != toAccountID {
			t.Errorf("expected to account id %v, got %v", toAccountID, transfer.ToAccountID())
		}

		if transfer.Amount() != 1000 {
			t.Errorf("expected amount 1000, got %d", transfer.Amount())
		}

		if transfer.Currency() != "USD" {
			t.Errorf("expected currency USD, got %s", transfer.Currency())
		}

		if transfer.Status() != domain_transfer.StatusPending {
			t.Errorf("expected status pending, got %v", transfer.Status())
		}

		if transfer.IdempotencyKey() != "idempotency_key" {
			t.Errorf("expected idempotency key 'idempotency_key', got %s", transfer.IdempotencyKey())
		}

		if !transfer.CreatedAt().Equal(now) {
			t.Errorf("expected created at %v, got %v", now, transfer.CreatedAt())
		}

		if !transfer.UpdatedAt().Equal(now) {
			t.Errorf("expected updated at %v, got %v", now, transfer.UpdatedAt())
		}
	})

	t.Run("normalizes currency to uppercase", func(t *testing.T) {
		transfer, err := domain_transfer.New(domain_transfer.NewParams{
			TransferID:    validID,
			FromAccountID: ptr(fromAccountID),
			ToAccountID:   ptr(toAccountID),
			Amount:        1000,
			Currency:      " usd ",
			Now:           now,
		})

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if transfer.Currency() != "USD" {
			t.Errorf("expected currency USD, got %s", transfer.Currency())
		}
	})

	t.Run("creates deposit with nil source", func(t *testing.T) {
		transfer, err := domain_transfer.New(domain_transfer.NewParams{
			TransferID:  validID,
			ToAccountID: ptr(toAccountID),
			Amount:      500,
			Currency:    "EUR",
			Now:         now,
		})

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !transfer.IsDeposit() {
			t.Error("expected transfer to be a deposit")
		}

		if transfer.IsWithdrawal() {
			t.Error("expected transfer not to be a withdrawal")
		}

		if transfer.FromAccountID() != nil {
			t.Errorf("expected nil from account, got %v", transfer.FromAccountID())
		}
	})

	t.Run("creates withdrawal with nil destination", func(t *testing.T) {
		transfer, err := domain_transfer.New(domain_transfer.NewParams{
			TransferID:    validID,
			FromAccountID: ptr(fromAccountID),
			Amount:        500,
			Currency:      "EUR",
			Now:           now,
		})

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !transfer.IsWithdrawal() {
			t.Error("expected transfer to be a withdrawal")
		}

		if transfer.IsDeposit() {
			t.Error("expected transfer not to be a deposit")
		}
	})

	t.Run("raises transfer requested event", func(t *testing.T) {
		transfer, err := domain_transfer.New(domain_transfer.NewParams{
			TransferID:    validID,
			FromAccountID: ptr(fromAccountID),
			ToAccountID:   ptr(toAccountID),
			Amount:        1000,
			Currency:      "USD",
			Now:           now,
		})

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		events := transfer.PullEvents()
		if len(events) != 1 {
			t.Fatalf("expected 1 event, got %d", len(events))
		}

		requested, ok := events[0].(domain_transfer.TransferRequested)
		if !ok {
			t.Fatalf("expected TransferRequested event, got %T", events[0])
		}

		if requested.EventName() != "transfer.requested" {
			t.Errorf("expected event name transfer.requested, got %s", requested.EventName())
		}

		if requested.AggregateID() != validID {
			t.Errorf("expected aggregate id %v, got %v", validID, requested.AggregateID())
		}

		if requested.Amount != 1000 {
			t.Errorf("expected event amount 1000, got %d", requested.Amount)
		}

		if events := transfer.PullEvents(); events != nil {
			t.Errorf("expected drained events, got %d", len(events))
		}
	})

	errorCases := []struct {
		name    string
		params  domain_transfer.NewParams
		wantErr error
	}{
		{
			name: "rejects nil transfer id",
			params: domain_transfer.NewParams{
				TransferID:    uuid.Nil,
				FromAccountID: ptr(fromAccountID),
				ToAccountID:   ptr(toAccountID),
				Amount:        1000,
				Currency:      "USD",
			},
			wantErr: domain_transfer.ErrInvalidTransferID,
		},
		{
			name: "rejects movement with no accounts",
			params: domain_transfer.NewParams{
				TransferID: validID,
				Amount:     1000,
				Currency:   "USD",
			},
			wantErr: domain_transfer.ErrNoAccounts,
		},
		{
			name: "rejects nil from account id",
			params: domain_transfer.NewParams{
				TransferID:    validID,
				FromAccountID: ptr(uuid.Nil),
				ToAccountID:   ptr(toAccountID),
				Amount:        1000,
				Currency:      "USD",
			},
			wantErr: domain_transfer.ErrInvalidAccountID,
		},
		{
			name: "rejects nil to account id",
			params: domain_transfer.NewParams{
				TransferID:    validID,
				FromAccountID: ptr(fromAccountID),
				ToAccountID:   ptr(uuid.Nil),
				Amount:        1000,
				Currency:      "USD",
			},
			wantErr: domain_transfer.ErrInvalidAccountID,
		},
		{
			name: "rejects transfer to same account",
			params: domain_transfer.NewParams{
				TransferID:    validID,
				FromAccountID: ptr(fromAccountID),
				ToAccountID:   ptr(fromAccountID),
				Amount:        1000,
				Currency:      "USD",
			},
			wantErr: domain_transfer.ErrSameAccount,
		},
		{
			name: "rejects zero amount",
			params: domain_transfer.NewParams{
				TransferID:    validID,
				FromAccountID: ptr(fromAccountID),
				ToAccountID:   ptr(toAccountID),
				Amount:        0,
				Currency:      "USD",
			},
			wantErr: domain_transfer.ErrInvalidAmount,
		},
		{
			name: "rejects negative amount",
			params: domain_transfer.NewParams{
				TransferID:    validID,
				FromAccountID: ptr(fromAccountID),
				ToAccountID:   ptr(toAccountID),
				Amount:        -50,
				Currency:      "USD",
			},
			wantErr: domain_transfer.ErrInvalidAmount,
		},
		{
			name: "rejects malformed currency",
			params: domain_transfer.NewParams{
				TransferID:    validID,
				FromAccountID: ptr(fromAccountID),
				ToAccountID:   ptr(toAccountID),
				Amount:        1000,
				Currency:      "USDX",
			},
			wantErr: domain_transfer.ErrInvalidCurrency,
		},
	}

	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := domain_transfer.New(tc.params)

			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func newPendingTransfer(t *testing.T, now time.Time) *domain_transfer.Transfer {
	t.Helper()

	transfer, err := domain_transfer.New(domain_transfer.NewParams{
		TransferID:    uuid.New(),
		FromAccountID: ptr(uuid.New()),
		ToAccountID:   ptr(uuid.New()),
		Amount:        1000,
		Currency:      "USD",
		Now:           now,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	transfer.PullEvents()
	return transfer
}

func TestSucceed(t *testing.T) {
	now := time.Now().UTC()

	t.Run("moves pending transfer to succeeded", func(t *testing.T) {
		transfer := newPendingTransfer(t, now)
		later := now.Add(time.Second)

		if err := transfer.Succeed(later); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if transfer.Status() != domain_transfer.StatusSucceeded {
			t.Errorf("expected status succeeded, got %v", transfer.Status())
		}

		if !transfer.UpdatedAt().Equal(later) {
			t.Errorf("expected updated at %v, got %v", later, transfer.UpdatedAt())
		}

		events := transfer.PullEvents()
		if len(events) != 1 {
			t.Fatalf("expected 1 event, got %d", len(events))
		}

		if events[0].EventName() != "transfer.succeeded" {
			t.Errorf("expected event name transfer.succeeded, got %s", events[0].EventName())
		}
	})

	t.Run("rejects succeeding twice", func(t *testing.T) {
		transfer := newPendingTransfer(t, now)

		if err := transfer.Succeed(now); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if err := transfer.Succeed(now); !errors.Is(err, domain_transfer.ErrAlreadyFinalized) {
			t.Fatalf("expected ErrAlreadyFinalized, got %v", err)
		}
	})

	t.Run("rejects succeeding a failed transfer", func(t *testing.T) {
		transfer := newPendingTransfer(t, now)

		if err := transfer.Fail("insufficient_funds", now); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if err := transfer.Succeed(now); !errors.Is(err, domain_transfer.ErrAlreadyFinalized) {
			t.Fatalf("expected ErrAlreadyFinalized, got %v", err)
		}
	})
}

func TestFail(t *testing.T) {
	now := time.Now().UTC()

	t.Run("moves pending transfer to failed with reason", func(t *testing.T) {
		transfer := newPendingTransfer(t, now)

		if err := transfer.Fail("insufficient_funds", now); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if transfer.Status() != domain_transfer.StatusFailed {
			t.Errorf("expected status failed, got %v", transfer.Status())
		}

		if transfer.FailureReason() != "insufficient_funds" {
			t.Errorf("expected failure reason insufficient_funds, got %s", transfer.FailureReason())
		}

		events := transfer.PullEvents()
		if len(events) != 1 {
			t.Fatalf("expected 1 event, got %d", len(events))
		}

		failed, ok := events[0].(domain_transfer.TransferFailed)
		if !ok {
			t.Fatalf("expected TransferFailed event, got %T", events[0])
		}

		if failed.Reason != "insufficient_funds" {
			t.Errorf("expected event reason insufficient_funds, got %s", failed.Reason)
		}
	})

	t.Run("rejects empty failure reason", func(t *testing.T) {
		transfer := newPendingTransfer(t, now)

		if err := transfer.Fail("   ", now); !errors.Is(err, domain_transfer.ErrMissingFailureReason) {
			t.Fatalf("expected ErrMissingFailureReason, got %v", err)
		}

		if transfer.Status() != domain_transfer.StatusPending {
			t.Errorf("expected status to stay pending, got %v", transfer.Status())
		}
	})

	t.Run("rejects failing a succeeded transfer", func(t *testing.T) {
		transfer := newPendingTransfer(t, now)

		if err := transfer.Succeed(now); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if err := transfer.Fail("too_late", now); !errors.Is(err, domain_transfer.ErrAlreadyFinalized) {
			t.Fatalf("expected ErrAlreadyFinalized, got %v", err)
		}
	})
}

func TestRestore(t *testing.T) {
	now := time.Now().UTC()
	id := uuid.New()
	from := uuid.New()

	transfer := domain_transfer.Restore(domain_transfer.RestoreParams{
		TransferID:     id,
		FromAccountID:  ptr(from),
		Amount:         250,
		Currency:       "BRL",
		Status:         domain_transfer.StatusSucceeded,
		IdempotencyKey: "key-1",
		CreatedAt:      now,
		UpdatedAt:      now,
	})

	if transfer.ID() != id {
		t.Errorf("expected id %v, got %v", id, transfer.ID())
	}

	if transfer.Status() != domain_transfer.StatusSucceeded {
		t.Errorf("expected status succeeded, got %v", transfer.Status())
	}

	if !transfer.IsWithdrawal() {
		t.Error("expected restored transfer to be a withdrawal")
	}

	if events := transfer.PullEvents(); events != nil {
		t.Errorf("expected no events after restore, got %d", len(events))
	}

	if err := transfer.Succeed(now); !errors.Is(err, domain_transfer.ErrAlreadyFinalized) {
		t.Fatalf("expected ErrAlreadyFinalized on restored final transfer, got %v", err)
	}
}

func TestStatus(t *testing.T) {
	cases := []struct {
		status domain_transfer.Status
		final  bool
		valid  bool
	}{
		{domain_transfer.StatusPending, false, true},
		{domain_transfer.StatusSucceeded, true, true},
		{domain_transfer.StatusFailed, true, true},
		{domain_transfer.Status("unknown"), false, false},
	}

	for _, tc := range cases {
		if got := tc.status.IsFinal(); got != tc.final {
			t.Errorf("status %q: expected IsFinal %v, got %v", tc.status, tc.final, got)
		}

		if got := tc.status.Valid(); got != tc.valid {
			t.Errorf("status %q: expected Valid %v, got %v", tc.status, tc.valid, got)
		}
	}
}
