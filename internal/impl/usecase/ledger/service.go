package impl_ledger

import (
	"github.com/rs/zerolog"

	port_persistence "github.com/PedroCamargo-dev/core-ledger-service/internal/ports/gateway/persistence"
	port_platform "github.com/PedroCamargo-dev/core-ledger-service/internal/ports/gateway/platform"
	port_ledger "github.com/PedroCamargo-dev/core-ledger-service/internal/ports/usecase/ledger"
)

// LedgerService orchestrates every money movement: it registers the
// pending transfer row, runs the locked double-entry move inside one
// unit of work and finalizes the outcome.
type LedgerService struct {
	uow       port_persistence.UnitOfWork
	accounts  port_persistence.AccountRepository
	entries   port_persistence.EntryRepository
	transfers port_persistence.TransferRepository
	outbox    port_persistence.OutboxRepository
	clock     port_platform.Clock
	ids       port_platform.IDGenerator
	log       zerolog.Logger
}

var (
	_ port_ledger.AccountUseCase  = (*LedgerService)(nil)
	_ port_ledger.MovementUseCase = (*LedgerService)(nil)
)

func NewLedgerService(
	uow port_persistence.UnitOfWork,
	accounts port_persistence.AccountRepository,
	entries port_persistence.EntryRepository,
	transfers port_persistence.TransferRepository,
	outbox port_persistence.OutboxRepository,
	clock port_platform.Clock,
	ids port_platform.IDGenerator,
	log zerolog.Logger,
) *LedgerService {
	return &LedgerService{
		uow:       uow,
		accounts:  accounts,
		entries:   entries,
		transfers: transfers,
		outbox:    outbox,
		clock:     clock,
		ids:       ids,
		log:       log,
	}
}
