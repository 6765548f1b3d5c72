package domain_account

import "errors"

var (
	ErrInvalidAccountID  = errors.New("account: invalid account_id")
	ErrInvalidCurrency   = errors.New("account: currency must be 3-letter ISO-like code")
	ErrNotFound          = errors.New("account: account not found")
	ErrInsufficientFunds = errors.New("account: insufficient funds")
)
