package gateway_postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	domain_ledger "github.com/PedroCamargo-dev/core-ledger-service/internal/domain/ledger"
	port_persistence "github.com/PedroCamargo-dev/core-ledger-service/internal/ports/gateway/persistence"
)

type EntryRepository struct {
	pool *pgxpool.Pool
}

func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

func (r *EntryRepository) Append(ctx context.Context, p port_persistence.AppendEntryParams) (uuid.UUID, error) {
	q := queryEngine(ctx, r.pool)

	var id uuid.UUID
	err := q.QueryRow(ctx, `
		INSERT INTO ledger_entries (id, account_id, related_transfer, direction, amount, currency, description, created_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, now())
		RETURNING id`,
		p.AccountID, p.RelatedTransfer, string(p.Direction), p.Amount, p.Currency, p.Description,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert ledger entry: %w", err)
	}

	return id, nil
}

func (r *EntryRepository) ListForAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*domain_ledger.Entry, error) {
	q := queryEngine(ctx, r.pool)

	rows, err := q.Query(ctx, `
		SELECT id, account_id, related_transfer, direction, amount, currency, description, created_at
		FROM ledger_entries
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`,
		accountID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain_ledger.Entry
	for rows.Next() {
		var e domain_ledger.Entry
		var direction string
		if err := rows.Scan(&e.ID, &e.AccountID, &e.RelatedTransfer, &direction, &e.Amount, &e.Currency, &e.Description, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		e.Direction = domain_ledger.Direction(direction)
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}

	return entries, nil
}
