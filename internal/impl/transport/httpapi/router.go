package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	port_cache "github.com/PedroCamargo-dev/core-ledger-service/internal/ports/gateway/cache"
	port_ledger "github.com/PedroCamargo-dev/core-ledger-service/internal/ports/usecase/ledger"
)

type RouterDeps struct {
	Accounts  port_ledger.AccountUseCase
	Movements port_ledger.MovementUseCase

	// ResponseCache is optional; when nil the replay middleware is
	// skipped and deduplication relies on the transfers table alone.
	ResponseCache port_cache.ResponseCache
}

func NewRouter(deps RouterDeps) http.Handler {
	accountHandler := NewAccountHandler(deps.Accounts)
	movementHandler := NewMovementHandler(deps.Movements)
	transferHandler := NewTransferHandler(deps.Movements)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	if deps.ResponseCache != nil {
		r.Use(IdempotencyReplay(deps.ResponseCache))
	}

	r.Post("/accounts", accountHandler.Create)
	r.Get("/accounts/{id}", accountHandler.Get)
	r.Get("/accounts/{id}/transactions", accountHandler.ListTransactions)

	r.Post("/transactions", movementHandler.Create)
	r.Post("/transfers", transferHandler.Create)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
