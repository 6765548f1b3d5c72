package domain_transfer

import "errors"

var (
	ErrInvalidTransferID = errors.New("transfer: invalid transfer_id")
	ErrInvalidAccountID  = errors.New("transfer: invalid account_id")
	ErrNoAccounts        = errors.New("transfer: at least one of from_account_id/to_account_id is required")
	ErrSameAccount       = errors.New("transfer: from_account_id equals to_account_id")
	ErrInvalidAmount     = errors.New("transfer: amount must be > 0")
	ErrInvalidCurrency   = errors.New("transfer: currency must be 3-letter ISO-like code")

	ErrInvalidStateTransition = errors.New("transfer: invalid state transition")
	ErrAlreadyFinalized       = errors.New("transfer: transfer already finalized")
	ErrMissingFailureReason   = errors.New("transfer: failure_reason is required to fail transfer")
)
