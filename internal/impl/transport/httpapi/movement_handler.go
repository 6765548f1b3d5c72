package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	port_ledger "github.com/PedroCamargo-dev/core-ledger-service/internal/ports/usecase/ledger"
)

const idempotencyKeyHeader = "Idempotency-Key"

type MovementHandler struct {
	movements port_ledger.MovementUseCase
}

func NewMovementHandler(movements port_ledger.MovementUseCase) *MovementHandler {
	return &MovementHandler{movements: movements}
}

type createMovementRequest struct {
	AccountID   uuid.UUID       `json:"account_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description *string         `json:"description"`
}

type movementResponse struct {
	Success  bool      `json:"success"`
	LedgerID uuid.UUID `json:"ledger_id"`
}

type alreadyExistsResponse struct {
	AlreadyExists bool             `json:"already_exists"`
	Transfer      transferSnapshot `json:"transfer"`
}

type transferSnapshot struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

// Create handles POST /transactions: a credit deposits into the
// account, a debit withdraws from it.
func (h *MovementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if req.AccountID == uuid.Nil || req.Currency == "" {
		respondError(w, http.StatusBadRequest, "missing_fields")
		return
	}

	input := port_ledger.MovementInput{
		AccountID:      req.AccountID,
		Amount:         ToMinorUnits(req.Amount),
		Currency:       req.Currency,
		Description:    req.Description,
		IdempotencyKey: r.Header.Get(idempotencyKeyHeader),
	}

	var (
		out port_ledger.MovementOutput
		err error
	)
	switch req.Type {
	case "credit":
		out, err = h.movements.Deposit(r.Context(), input)
	case "debit":
		out, err = h.movements.Withdraw(r.Context(), input)
	default:
		respondError(w, http.StatusBadRequest, "invalid_type")
		return
	}
	if err != nil {
		respondUseCaseError(w, err)
		return
	}

	if out.AlreadyExists {
		respondJSON(w, http.StatusOK, alreadyExistsResponse{
			AlreadyExists: true,
			Transfer:      transferSnapshot{ID: out.TransferID, Status: out.Status},
		})
		return
	}

	respondJSON(w, http.StatusCreated, movementResponse{
		Success:  true,
		LedgerID: out.EntryID,
	})
}
