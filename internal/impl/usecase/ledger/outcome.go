package impl_ledger

import (
	"errors"

	domain_account "github.com/PedroCamargo-dev/core-ledger-service/internal/domain/account"
)

// IsBusinessFailure reports whether the error is an expected terminal
// outcome rather than a store fault. Business failures always leave the
// transfer failed and balances untouched; anything else is transient
// and safe to retry with the same idempotency key.
func IsBusinessFailure(err error) bool {
	return errors.Is(err, domain_account.ErrNotFound) ||
		errors.Is(err, domain_account.ErrInsufficientFunds)
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain_account.ErrNotFound):
		return reasonAccountNotFound
	case errors.Is(err, domain_account.ErrInsufficientFunds):
		return reasonInsufficientFunds
	default:
		return reasonInternalError
	}
}
