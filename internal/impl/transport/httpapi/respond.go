package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	domain_account "github.com/PedroCamargo-dev/core-ledger-service/internal/domain/account"
	domain_transfer "github.com/PedroCamargo-dev/core-ledger-service/internal/domain/transfer"
	impl_ledger "github.com/PedroCamargo-dev/core-ledger-service/internal/impl/usecase/ledger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("write response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// respondUseCaseError maps the orchestrator's typed outcomes onto HTTP
// statuses. Anything outside the business taxonomy is a transient store
// fault the client may retry with the same idempotency key.
func respondUseCaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain_account.ErrNotFound):
		respondError(w, http.StatusNotFound, "account_not_found")
	case errors.Is(err, domain_account.ErrInsufficientFunds):
		respondError(w, http.StatusBadRequest, "insufficient_funds")
	case isValidationError(err):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Msg("request failed")
		respondError(w, http.StatusInternalServerError, "transient_store_error")
	}
}

func isValidationError(err error) bool {
	for _, target := range []error{
		impl_ledger.ErrInvalidInput,
		domain_transfer.ErrInvalidAmount,
		domain_transfer.ErrInvalidCurrency,
		domain_transfer.ErrSameAccount,
		domain_transfer.ErrNoAccounts,
		domain_transfer.ErrInvalidAccountID,
		domain_account.ErrInvalidCurrency,
		domain_account.ErrInvalidAccountID,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
