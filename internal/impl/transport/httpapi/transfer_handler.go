package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	port_ledger "github.com/PedroCamargo-dev/core-ledger-service/internal/ports/usecase/ledger"
)

type TransferHandler struct {
	movements port_ledger.MovementUseCase
}

func NewTransferHandler(movements port_ledger.MovementUseCase) *TransferHandler {
	return &TransferHandler{movements: movements}
}

type createTransferRequest struct {
	FromAccountID uuid.UUID       `json:"from_account_id"`
	ToAccountID   uuid.UUID       `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
}

type transferResponse struct {
	Success        bool      `json:"success"`
	TransferID     uuid.UUID `json:"transfer_id"`
	DebitLedgerID  uuid.UUID `json:"debit_ledger_id"`
	CreditLedgerID uuid.UUID `json:"credit_ledger_id"`
}

func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if req.FromAccountID == uuid.Nil || req.ToAccountID == uuid.Nil || req.Currency == "" {
		respondError(w, http.StatusBadRequest, "missing_fields")
		return
	}

	out, err := h.movements.Transfer(r.Context(), port_ledger.TransferInput{
		FromAccountID:  req.FromAccountID,
		ToAccountID:    req.ToAccountID,
		Amount:         ToMinorUnits(req.Amount),
		Currency:       req.Currency,
		IdempotencyKey: r.Header.Get(idempotencyKeyHeader),
	})
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

	respondJSON(w, http.StatusCreated, transferResponse{
		Success:        true,
		TransferID:     out.TransferID,
		DebitLedgerID:  out.DebitEntryID,
		CreditLedgerID: out.CreditEntryID,
	})
}
