package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/PedroCamargo-dev/core-ledger-service/internal/config"
	gateway_memory "github.com/PedroCamargo-dev/core-ledger-service/internal/impl/gateway/memory"
	gateway_platform "github.com/PedroCamargo-dev/core-ledger-service/internal/impl/gateway/platform"
	gateway_postgres "github.com/PedroCamargo-dev/core-ledger-service/internal/impl/gateway/postgres"
	gateway_rediscache "github.com/PedroCamargo-dev/core-ledger-service/internal/impl/gateway/rediscache"
	"github.com/PedroCamargo-dev/core-ledger-service/internal/impl/transport/httpapi"
	impl_ledger "github.com/PedroCamargo-dev/core-ledger-service/internal/impl/usecase/ledger"
	port_cache "github.com/PedroCamargo-dev/core-ledger-service/internal/ports/gateway/cache"
	port_persistence "github.com/PedroCamargo-dev/core-ledger-service/internal/ports/gateway/persistence"
)

func main() {
	cfg := config.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	logger := log.With().Str("service", "ledger-api").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		uow       port_persistence.UnitOfWork
		accounts  port_persistence.AccountRepository
		entries   port_persistence.EntryRepository
		transfers port_persistence.TransferRepository
		outbox    port_persistence.OutboxRepository
	)

	switch cfg.Store {
	case "memory":
		store := gateway_memory.NewStore()
		uow = store.UnitOfWork()
		accounts = store.Accounts()
		entries = store.Entries()
		transfers = store.Transfers()
		outbox = store.Outbox()
		logger.Warn().Msg("using in-memory store, data will not survive a restart")
	default:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create postgres pool")
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to reach postgres")
		}
		uow = gateway_postgres.NewUow(pool)
		accounts = gateway_postgres.NewAccountRepository(pool)
		entries = gateway_postgres.NewEntryRepository(pool)
		transfers = gateway_postgres.NewTransferRepository(pool)
		outbox = gateway_postgres.NewOutboxRepository(pool)
	}

	var responseCache port_cache.ResponseCache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn().Err(err).Msg("redis unreachable, replay cache disabled")
		} else {
			responseCache = gateway_rediscache.NewResponseCache(client)
			defer client.Close()
		}
	}

	service := impl_ledger.NewLedgerService(
		uow,
		accounts,
		entries,
		transfers,
		outbox,
		gateway_platform.UTCClock{},
		gateway_platform.UUIDGenerator{},
		logger,
	)

	handler := httpapi.NewRouter(httpapi.RouterDeps{
		Accounts:      service,
		Movements:     service,
		ResponseCache: responseCache,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("ledger api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	logger.Info().Msg("ledger api stopped")
}
