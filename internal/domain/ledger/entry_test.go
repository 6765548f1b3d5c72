package domain_ledger_test

import (
	"errors"
	"testing"
	"time"

	domain_ledger "github.com/PedroCamargo-dev/core-ledger-service/internal/domain/ledger"
	"github.com/google/uuid"
)

func TestNew(t *testing.T) {
	now := time.Now().UTC()
	transferID := uuid.New()

	t.Run("creates entry with valid parameters", func(t *testing.T) {
		entryID := uuid.New()
		accountID := uuid.New()

		entry, err := domain_ledger.New(domain_ledger.NewParams{
			EntryID:         entryID,
			AccountID:       accountID,
			RelatedTransfer: &transferID,
			Direction:       domain_ledger.DirectionDebit,
			Amount:          250,
			Currency:        "brl",
			Now:             now,
		})

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if entry.ID != entryID {
			t.Errorf("expected id %v, got %v", entryID, entry.ID)
		}

		if entry.AccountID != accountID {
			t.Errorf("expected account id %v, got %v", accountID, entry.AccountID)
		}

		if entry.RelatedTransfer == nil || *entry.RelatedTransfer != transferID {
			t.Errorf("expected related transfer %v, got %v", transferID, entry.RelatedTransfer)
		}

		if entry.Currency != "BRL" {
			t.Errorf("expected normalized currency BRL, got %s", entry.Currency)
		}

		if !entry.CreatedAt.Equal(now) {
			t.Errorf("expected created at %v, got %v", now, entry.CreatedAt)
		}
	})

	errorCases := []struct {
		name    string
		params  domain_ledger.NewParams
		wantErr error
	}{
		{
			name: "rejects nil entry id",
			params: domain_ledger.NewParams{
				EntryID:   uuid.Nil,
				AccountID: uuid.New(),
				Direction: domain_ledger.DirectionCredit,
				Amount:    100,
				Currency:  "USD",
			},
			wantErr: domain_ledger.ErrInvalidEntry,
		},
		{
			name: "rejects nil account id",
			params: domain_ledger.NewParams{
				EntryID:   uuid.New(),
				AccountID: uuid.Nil,
				Direction: domain_ledger.DirectionCredit,
				Amount:    100,
				Currency:  "USD",
			},
			wantErr: domain_ledger.ErrInvalidEntry,
		},
		{
			name: "rejects unknown direction",
			params: domain_ledger.NewParams{
				EntryID:   uuid.New(),
				AccountID: uuid.New(),
				Direction: domain_ledger.Direction("sideways"),
				Amount:    100,
				Currency:  "USD",
			},
			wantErr: domain_ledger.ErrInvalidDirection,
		},
		{
			name: "rejects non-positive amount",
			params: domain_ledger.NewParams{
				EntryID:   uuid.New(),
				AccountID: uuid.New(),
				Direction: domain_ledger.DirectionDebit,
				Amount:    0,
				Currency:  "USD",
			},
			wantErr: domain_ledger.ErrInvalidAmount,
		},
		{
			name: "rejects malformed currency",
			params: domain_ledger.NewParams{
				EntryID:   uuid.New(),
				AccountID: uuid.New(),
				Direction: domain_ledger.DirectionDebit,
				Amount:    100,
				Currency:  "USDC",
			},
			wantErr: domain_ledger.ErrInvalidCurrency,
		},
	}

	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := domain_ledger.New(tc.params)

			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestDirectionValid(t *testing.T) {
	if !domain_ledger.DirectionCredit.Valid() || !domain_ledger.DirectionDebit.Valid() {
		t.Error("expected credit and debit to be valid directions")
	}

	if domain_ledger.Direction("").Valid() {
		t.Error("expected empty direction to be invalid")
	}
}
