// Package mocks provides mock implementations for testing purposes.
package mocks

//go:generate mockgen -destination=mock_persistence.go -package=mocks github.com/PedroCamargo-dev/core-ledger-service/internal/ports/gateway/persistence AccountRepository,EntryRepository,TransferRepository,OutboxRepository,UnitOfWork
//go:generate mockgen -destination=mock_messaging.go -package=mocks github.com/PedroCamargo-dev/core-ledger-service/internal/ports/gateway/messaging Publisher
//go:generate mockgen -destination=mock_platform.go -package=mocks github.com/PedroCamargo-dev/core-ledger-service/internal/ports/gateway/platform Clock,IDGenerator
