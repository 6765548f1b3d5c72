package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/PedroCamargo-dev/core-ledger-service/internal/config"
	gateway_postgres "github.com/PedroCamargo-dev/core-ledger-service/internal/impl/gateway/postgres"
	gateway_rabbitmq "github.com/PedroCamargo-dev/core-ledger-service/internal/impl/gateway/rabbitmq"
	port_messaging "github.com/PedroCamargo-dev/core-ledger-service/internal/ports/gateway/messaging"
	port_persistence "github.com/PedroCamargo-dev/core-ledger-service/internal/ports/gateway/persistence"
)

const eventsExchange = "ledger.events"

func main() {
	cfg := config.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	logger := log.With().Str("service", "ledger-outbox-worker").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create postgres pool")
	}
	defer pool.Close()

	conn, err := amqp.Dial(cfg.RabbitURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to rabbitmq")
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open rabbitmq channel")
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(eventsExchange, "topic", true, false, false, false, nil); err != nil {
		logger.Fatal().Err(err).Msg("failed to declare events exchange")
	}

	relay := &outboxRelay{
		uow:       gateway_postgres.NewUow(pool),
		outbox:    gateway_postgres.NewOutboxRepository(pool),
		publisher: gateway_rabbitmq.NewPublisher(ch),
		batchSize: cfg.OutboxBatchSize,
		interval:  cfg.OutboxInterval,
		log:       logger,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return relay.run(gctx) })

	logger.Info().
		Dur("interval", cfg.OutboxInterval).
		Int("batch_size", cfg.OutboxBatchSize).
		Msg("outbox worker started")

	if err := g.Wait(); err != nil && err != context.Canceled {
		logger.Fatal().Err(err).Msg("outbox worker failed")
	}
	logger.Info().Msg("outbox worker stopped")
}

// outboxRelay drains pending outbox rows to the broker. Each drain
// runs inside one unit of work so the SKIP LOCKED claim holds until
// the marks commit and concurrent workers skip each other's batches.
// Rows are marked published only after the broker accepted them, so a
// crash between publish and commit yields at-least-once delivery.
type outboxRelay struct {
	uow       port_persistence.UnitOfWork
	outbox    port_persistence.OutboxRepository
	publisher port_messaging.Publisher
	batchSize int
	interval  time.Duration
	log       zerolog.Logger
}

func (r *outboxRelay) run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.drainOnce(ctx); err != nil {
				r.log.Error().Err(err).Msg("outbox drain failed")
			}
		}
	}
}

func (r *outboxRelay) drainOnce(ctx context.Context) error {
	return r.uow.WithinTx(ctx, func(txCtx context.Context) error {
		msgs, err := r.outbox.DequeueBatch(txCtx, r.batchSize)
		if err != nil {
			return err
		}

		for _, msg := range msgs {
			headers := map[string]string{
				"message_id": msg.MessageID,
				"event_type": msg.EventType,
			}
			if err := r.publisher.Publish(txCtx, eventsExchange, msg.EventType, msg.Payload, headers); err != nil {
				r.log.Error().Err(err).Str("message_id", msg.MessageID).Msg("publish failed, message stays queued")
				continue
			}
			if err := r.outbox.MarkPublished(txCtx, msg.MessageID); err != nil {
				r.log.Error().Err(err).Str("message_id", msg.MessageID).Msg("mark published failed")
				continue
			}
			r.log.Debug().Str("message_id", msg.MessageID).Str("event_type", msg.EventType).Msg("event published")
		}

		return nil
	})
}
