package gateway_memory

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	domain_account "github.com/PedroCamargo-dev/core-ledger-service/internal/domain/account"
	domain_ledger "github.com/PedroCamargo-dev/core-ledger-service/internal/domain/ledger"
	domain_transfer "github.com/PedroCamargo-dev/core-ledger-service/internal/domain/transfer"
	port_persistence "github.com/PedroCamargo-dev/core-ledger-service/internal/ports/gateway/persistence"
)

// Store is an in-process implementation of the persistence ports with
// the same locking discipline as the postgres adapter: one mutex per
// account row, acquired in sorted id order inside a unit of work, plus
// staged writes that only become visible on commit. It backs the test
// suite and the STORE=memory run mode.
type Store struct {
	mu        sync.Mutex
	accounts  map[uuid.UUID]*accountRec
	entries   map[uuid.UUID][]*domain_ledger.Entry
	transfers map[uuid.UUID]*transferRec
	byKey     map[string]uuid.UUID
	outbox    []*outboxRec
}

type accountRec struct {
	mu  sync.Mutex
	acc domain_account.Account
}

type transferRec struct {
	params      domain_transfer.RestoreParams
	requestHash string
}

type outboxRec struct {
	msg       port_persistence.OutboxMessage
	published bool
}

var errNoUnitOfWork = errors.New("memory: operation requires an active unit of work")

func NewStore() *Store {
	return &Store{
		accounts:  make(map[uuid.UUID]*accountRec),
		entries:   make(map[uuid.UUID][]*domain_ledger.Entry),
		transfers: make(map[uuid.UUID]*transferRec),
		byKey:     make(map[string]uuid.UUID),
	}
}

// unit of work

type memTxKeyType struct{}

var memTxKey memTxKeyType

type memTx struct {
	locked  []*accountRec
	undo    []func()
	commits []func()
}

func txFrom(ctx context.Context) *memTx {
	tx, _ := ctx.Value(memTxKey).(*memTx)
	return tx
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx := &memTx{}

	err := fn(context.WithValue(ctx, memTxKey, tx))
	if err != nil {
		for i := len(tx.undo) - 1; i >= 0; i-- {
			tx.undo[i]()
		}
		tx.release()
		return err
	}

	s.mu.Lock()
	for _, apply := range tx.commits {
		apply()
	}
	s.mu.Unlock()

	tx.release()
	return nil
}

func (tx *memTx) release() {
	for i := len(tx.locked) - 1; i >= 0; i-- {
		tx.locked[i].mu.Unlock()
	}
	tx.locked = nil
}

// AccountRepository

func (s *Store) createAccount(ctx context.Context, acc *domain_account.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts[acc.ID] = &accountRec{acc: *acc}
	return nil
}

func (s *Store) getAccountByID(ctx context.Context, id uuid.UUID) (*domain_account.Account, error) {
	s.mu.Lock()
	rec, ok := s.accounts[id]
	s.mu.Unlock()

	if !ok {
		return nil, domain_account.ErrNotFound
	}

	// Blocks while a unit of work holds the account, so a read never
	// observes a balance that could still roll back.
	rec.mu.Lock()
	acc := rec.acc
	rec.mu.Unlock()

	return &acc, nil
}

// LockForUpdate acquires the account mutexes in sorted id order and
// parks them on the transaction until commit or rollback.
func (s *Store) lockForUpdate(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain_account.Account, error) {
	tx := txFrom(ctx)
	if tx == nil {
		return nil, errNoUnitOfWork
	}

	sorted := make([]uuid.UUID, len(ids))
	copy(sorted, ids)
	slices.SortFunc(sorted, func(a, b uuid.UUID) int {
		return bytes.Compare(a[:], b[:])
	})
	sorted = slices.Compact(sorted)

	s.mu.Lock()
	recs := make([]*accountRec, 0, len(sorted))
	for _, id := range sorted {
		rec, ok := s.accounts[id]
		if !ok {
			s.mu.Unlock()
			return nil, domain_account.ErrNotFound
		}
		recs = append(recs, rec)
	}
	s.mu.Unlock()

	locked := make(map[uuid.UUID]*domain_account.Account, len(recs))
	for _, rec := range recs {
		rec.mu.Lock()
		tx.locked = append(tx.locked, rec)
		acc := rec.acc
		locked[acc.ID] = &acc
	}

	return locked, nil
}

func (s *Store) applyDelta(ctx context.Context, id uuid.UUID, delta int64) error {
	tx := txFrom(ctx)
	if tx == nil {
		return errNoUnitOfWork
	}

	s.mu.Lock()
	rec, ok := s.accounts[id]
	s.mu.Unlock()

	if !ok {
		return domain_account.ErrNotFound
	}

	previous := rec.acc.Balance
	rec.acc.Balance += delta
	rec.acc.UpdatedAt = time.Now().UTC()

	tx.undo = append(tx.undo, func() {
		rec.acc.Balance = previous
	})

	return nil
}

// EntryRepository

func (s *Store) appendEntry(ctx context.Context, p port_persistence.AppendEntryParams) (uuid.UUID, error) {
	entry, err := domain_ledger.New(domain_ledger.NewParams{
		EntryID:         uuid.New(),
		AccountID:       p.AccountID,
		RelatedTransfer: p.RelatedTransfer,
		Direction:       p.Direction,
		Amount:          p.Amount,
		Currency:        p.Currency,
		Description:     p.Description,
		Now:             time.Now().UTC(),
	})
	if err != nil {
		return uuid.Nil, err
	}

	insert := func() {
		s.entries[entry.AccountID] = append(s.entries[entry.AccountID], entry)
	}

	if tx := txFrom(ctx); tx != nil {
		tx.commits = append(tx.commits, insert)
	} else {
		s.mu.Lock()
		insert()
		s.mu.Unlock()
	}

	return entry.ID, nil
}

func (s *Store) listForAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*domain_ledger.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.entries[accountID]

	// Stored oldest first; the listing contract is newest first.
	var out []*domain_ledger.Entry
	for i := len(all) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		e := *all[i]
		out = append(out, &e)
	}

	return out, nil
}

// TransferRepository

func (s *Store) createTransfer(ctx context.Context, t *domain_transfer.Transfer, requestHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if key := t.IdempotencyKey(); key != "" {
		if _, taken := s.byKey[key]; taken {
			return port_persistence.ErrIdempotencyKeyTaken
		}
		s.byKey[key] = t.ID()
	}

	s.transfers[t.ID()] = &transferRec{
		params:      restoreParams(t),
		requestHash: requestHash,
	}

	return nil
}

func (s *Store) getTransferByID(ctx context.Context, transferID uuid.UUID) (*port_persistence.StoredTransfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.transfers[transferID]
	if !ok {
		return nil, port_persistence.ErrNotFound
	}

	return rec.stored(), nil
}

func (s *Store) getByIdempotencyKey(ctx context.Context, key string) (*port_persistence.StoredTransfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byKey[key]
	if !ok {
		return nil, port_persistence.ErrNotFound
	}

	return s.transfers[id].stored(), nil
}

func (s *Store) finalize(ctx context.Context, transferID uuid.UUID, status domain_transfer.Status, failureReason string) error {
	if !status.IsFinal() {
		return domain_transfer.ErrInvalidStateTransition
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.transfers[transferID]
	if !ok {
		return port_persistence.ErrNotFound
	}

	if rec.params.Status != domain_transfer.StatusPending {
		return domain_transfer.ErrAlreadyFinalized
	}

	apply := func() {
		rec.params.Status = status
		rec.params.FailureReason = failureReason
		rec.params.UpdatedAt = time.Now().UTC()
	}

	if tx := txFrom(ctx); tx != nil {
		tx.commits = append(tx.commits, apply)
	} else {
		apply()
	}

	return nil
}

// OutboxRepository

func (s *Store) enqueue(ctx context.Context, msg port_persistence.OutboxMessage) error {
	insert := func() {
		s.outbox = append(s.outbox, &outboxRec{msg: msg})
	}

	if tx := txFrom(ctx); tx != nil {
		tx.commits = append(tx.commits, insert)
		return nil
	}

	s.mu.Lock()
	insert()
	s.mu.Unlock()
	return nil
}

func (s *Store) dequeueBatch(ctx context.Context, limit int) ([]port_persistence.OutboxMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var batch []port_persistence.OutboxMessage
	for _, rec := range s.outbox {
		if rec.published {
			continue
		}
		batch = append(batch, rec.msg)
		if len(batch) == limit {
			break
		}
	}

	return batch, nil
}

func (s *Store) markPublished(ctx context.Context, messageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.outbox {
		if rec.msg.MessageID == messageID {
			rec.published = true
			return nil
		}
	}

	return port_persistence.ErrNotFound
}

func (rec *transferRec) stored() *port_persistence.StoredTransfer {
	return &port_persistence.StoredTransfer{
		Transfer:    domain_transfer.Restore(rec.params),
		RequestHash: rec.requestHash,
	}
}

func restoreParams(t *domain_transfer.Transfer) domain_transfer.RestoreParams {
	return domain_transfer.RestoreParams{
		TransferID:     t.ID(),
		FromAccountID:  t.FromAccountID(),
		ToAccountID:    t.ToAccountID(),
		Amount:         t.Amount(),
		Currency:       t.Currency(),
		Status:         t.Status(),
		IdempotencyKey: t.IdempotencyKey(),
		FailureReason:  t.FailureReason(),
		CreatedAt:      t.CreatedAt(),
		UpdatedAt:      t.UpdatedAt(),
	}
}
