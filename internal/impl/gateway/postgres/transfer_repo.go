package gateway_postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domain_transfer "github.com/PedroCamargo-dev/core-ledger-service/internal/domain/transfer"
	port_persistence "github.com/PedroCamargo-dev/core-ledger-service/internal/ports/gateway/persistence"
)

const uniqueViolationCode = "23505"

type TransferRepository struct {
	pool *pgxpool.Pool
}

func NewTransferRepository(pool *pgxpool.Pool) *TransferRepository {
	return &TransferRepository{pool: pool}
}

// Create inserts the pending row. The partial unique index on
// idempotency_key turns a retried request into a unique violation,
// reported as ErrIdempotencyKeyTaken so the caller re-reads the
// winner's row.
func (r *TransferRepository) Create(ctx context.Context, t *domain_transfer.Transfer, requestHash string) error {
	q := queryEngine(ctx, r.pool)

	var key *string
	if k := t.IdempotencyKey(); k != "" {
		key = &k
	}

	_, err := q.Exec(ctx, `
		INSERT INTO transfers (id, from_account_id, to_account_id, amount, currency, status, idempotency_key, request_hash, failure_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, '', $9, $10)`,
		t.ID(), t.FromAccountID(), t.ToAccountID(), t.Amount(), t.Currency(),
		string(t.Status()), key, requestHash, t.CreatedAt(), t.UpdatedAt(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return port_persistence.ErrIdempotencyKeyTaken
		}
		return fmt.Errorf("insert transfer: %w", err)
	}

	return nil
}

func (r *TransferRepository) GetByID(ctx context.Context, transferID uuid.UUID) (*port_persistence.StoredTransfer, error) {
	return r.getBy(ctx, `WHERE id = $1`, transferID)
}

func (r *TransferRepository) GetByIdempotencyKey(ctx context.Context, key string) (*port_persistence.StoredTransfer, error) {
	return r.getBy(ctx, `WHERE idempotency_key = $1`, key)
}

func (r *TransferRepository) getBy(ctx context.Context, where string, arg any) (*port_persistence.StoredTransfer, error) {
	q := queryEngine(ctx, r.pool)

	row := q.QueryRow(ctx, `
		SELECT id, from_account_id, to_account_id, amount, currency, status, idempotency_key, request_hash, failure_reason, created_at, updated_at
		FROM transfers `+where,
		arg,
	)

	var (
		p           domain_transfer.RestoreParams
		status      string
		key         *string
		requestHash string
		createdAt   time.Time
		updatedAt   time.Time
	)
	err := row.Scan(
		&p.TransferID, &p.FromAccountID, &p.ToAccountID, &p.Amount, &p.Currency,
		&status, &key, &requestHash, &p.FailureReason, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, port_persistence.ErrNotFound
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}

	p.Status = domain_transfer.Status(status)
	if key != nil {
		p.IdempotencyKey = *key
	}
	p.CreatedAt = createdAt
	p.UpdatedAt = updatedAt

	return &port_persistence.StoredTransfer{
		Transfer:    domain_transfer.Restore(p),
		RequestHash: requestHash,
	}, nil
}

// Finalize only ever moves a pending row; the status predicate makes a
// double finalization a no-op at the storage level and reports it as
// ErrAlreadyFinalized.
func (r *TransferRepository) Finalize(ctx context.Context, transferID uuid.UUID, status domain_transfer.Status, failureReason string) error {
	if !status.IsFinal() {
		return domain_transfer.ErrInvalidStateTransition
	}

	q := queryEngine(ctx, r.pool)

	tag, err := q.Exec(ctx, `
		UPDATE transfers
		SET status = $2, failure_reason = $3, updated_at = now()
		WHERE id = $1 AND status = $4`,
		transferID, string(status), failureReason, string(domain_transfer.StatusPending),
	)
	if err != nil {
		return fmt.Errorf("finalize transfer: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain_transfer.ErrAlreadyFinalized
	}

	return nil
}
