package gateway_postgres

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain_account "github.com/PedroCamargo-dev/core-ledger-service/internal/domain/account"
)

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) Create(ctx context.Context, acc *domain_account.Account) error {
	q := queryEngine(ctx, r.pool)

	_, err := q.Exec(ctx, `
		INSERT INTO accounts (id, owner_id, currency, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		acc.ID, acc.OwnerID, acc.Currency, acc.Balance, acc.CreatedAt, acc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}

	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain_account.Account, error) {
	q := queryEngine(ctx, r.pool)

	row := q.QueryRow(ctx, `
		SELECT id, owner_id, currency, balance, created_at, updated_at
		FROM accounts
		WHERE id = $1`,
		id,
	)

	acc, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain_account.ErrNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	return acc, nil
}

// LockForUpdate acquires row locks on the full id set in one statement,
// scanning in id order so concurrent units of work contending for the
// same accounts always wait on the lowest id first.
func (r *AccountRepository) LockForUpdate(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain_account.Account, error) {
	q := queryEngine(ctx, r.pool)

	sorted := make([]uuid.UUID, len(ids))
	copy(sorted, ids)
	slices.SortFunc(sorted, func(a, b uuid.UUID) int {
		return bytes.Compare(a[:], b[:])
	})
	sorted = slices.Compact(sorted)

	keys := make([]string, 0, len(sorted))
	for _, id := range sorted {
		keys = append(keys, id.String())
	}

	rows, err := q.Query(ctx, `
		SELECT id, owner_id, currency, balance, created_at, updated_at
		FROM accounts
		WHERE id = ANY($1::uuid[])
		ORDER BY id
		FOR UPDATE`,
		keys,
	)
	if err != nil {
		return nil, fmt.Errorf("lock accounts: %w", err)
	}
	defer rows.Close()

	locked := make(map[uuid.UUID]*domain_account.Account, len(sorted))
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan locked account: %w", err)
		}
		locked[acc.ID] = acc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("lock accounts: %w", err)
	}

	if len(locked) != len(sorted) {
		return nil, domain_account.ErrNotFound
	}

	return locked, nil
}

func (r *AccountRepository) ApplyDelta(ctx context.Context, id uuid.UUID, delta int64) error {
	q := queryEngine(ctx, r.pool)

	tag, err := q.Exec(ctx, `
		UPDATE accounts
		SET balance = balance + $1, updated_at = now()
		WHERE id = $2`,
		delta, id,
	)
	if err != nil {
		return fmt.Errorf("apply balance delta: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain_account.ErrNotFound
	}

	return nil
}

func scanAccount(row pgx.Row) (*domain_account.Account, error) {
	var acc domain_account.Account
	err := row.Scan(&acc.ID, &acc.OwnerID, &acc.Currency, &acc.Balance, &acc.CreatedAt, &acc.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}
