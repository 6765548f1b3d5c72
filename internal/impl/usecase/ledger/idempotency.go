package impl_ledger

import (
	"context"
	"errors"
	"fmt"

	domain_transfer "github.com/PedroCamargo-dev/core-ledger-service/internal/domain/transfer"
	port_persistence "github.com/PedroCamargo-dev/core-ledger-service/internal/ports/gateway/persistence"
)

// beginOrFetch registers the pending transfer row. When the transfer's
// idempotency key lost the unique-insert race, the winner's stored row
// is returned instead, so the caller replays that outcome rather than
// producing a second effect. With no key, every request is new.
func (s *LedgerService) beginOrFetch(ctx context.Context, t *domain_transfer.Transfer, requestHash string) (*port_persistence.StoredTransfer, error) {
	err := s.transfers.Create(ctx, t, requestHash)
	if err == nil {
		return nil, nil
	}

	if errors.Is(err, port_persistence.ErrIdempotencyKeyTaken) && t.IdempotencyKey() != "" {
		existing, getErr := s.transfers.GetByIdempotencyKey(ctx, t.IdempotencyKey())
		if getErr != nil {
			return nil, fmt.Errorf("fetch transfer for idempotency key: %w", getErr)
		}
		return existing, nil
	}

	return nil, fmt.Errorf("register pending transfer: %w", err)
}

// markFailed is the clean-up path after a rolled-back unit of work. The
// terminal marking is best effort: if the store is unavailable the row
// stays pending and a later retry with the same key observes it once
// the store resolves.
func (s *LedgerService) markFailed(ctx context.Context, t *domain_transfer.Transfer, cause error) {
	reason := failureReason(cause)

	// The entity may already have succeeded in memory when the unit of
	// work broke after Succeed (a finalize or enqueue fault rolled it
	// back). The stored row is still pending either way, so the
	// terminal marking is attempted regardless of the entity's state.
	failErr := t.Fail(reason, s.clock.Now())
	if failErr != nil {
		s.log.Warn().Err(failErr).Str("transfer_id", t.ID().String()).Msg("entity already finalized, marking stored row failed")
	}

	if err := s.transfers.Finalize(ctx, t.ID(), domain_transfer.StatusFailed, reason); err != nil {
		s.log.Error().Err(err).Str("transfer_id", t.ID().String()).Msg("could not mark transfer failed")
		return
	}

	if failErr != nil {
		return
	}

	if err := s.enqueueEvents(ctx, t); err != nil {
		s.log.Error().Err(err).Str("transfer_id", t.ID().String()).Msg("could not enqueue failure event")
	}
}
