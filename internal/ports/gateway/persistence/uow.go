package port_persistence

import "context"

// UnitOfWork runs a function inside one atomic unit against the store.
// Every read/write issued through the derived context becomes visible
// together on commit or not at all; a non-nil error from fn rolls the
// whole unit back.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
