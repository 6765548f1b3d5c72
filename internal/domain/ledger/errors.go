package domain_ledger

import "errors"

var (
	ErrInvalidEntry     = errors.New("ledger: invalid entry identifiers")
	ErrInvalidDirection = errors.New("ledger: direction must be credit or debit")
	ErrInvalidAmount    = errors.New("ledger: amount must be > 0")
	ErrInvalidCurrency  = errors.New("ledger: currency must be 3-letter ISO-like code")
)
