package impl_ledger

import "errors"

var ErrInvalidInput = errors.New("ledger: invalid input data")

const (
	reasonAccountNotFound   = "account_not_found"
	reasonInsufficientFunds = "insufficient_funds"
	reasonInternalError     = "internal_error"
)
