package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	port_ledger "github.com/PedroCamargo-dev/core-ledger-service/internal/ports/usecase/ledger"
)

type AccountHandler struct {
	accounts port_ledger.AccountUseCase
}

func NewAccountHandler(accounts port_ledger.AccountUseCase) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type createAccountRequest struct {
	OwnerID  *string `json:"owner_id"`
	Currency string  `json:"currency"`
}

type accountResponse struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   *string   `json:"owner_id"`
	Currency  string    `json:"currency"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if req.Currency == "" {
		respondError(w, http.StatusBadRequest, "currency required")
		return
	}

	out, err := h.accounts.CreateAccount(r.Context(), port_ledger.CreateAccountInput{
		OwnerID:  req.OwnerID,
		Currency: req.Currency,
	})
	if err != nil {
		respondUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, accountResponseFrom(out))
}

func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	out, err := h.accounts.GetAccount(r.Context(), id)
	if err != nil {
		respondUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, accountResponseFrom(out))
}

type entryResponse struct {
	ID              uuid.UUID  `json:"id"`
	AccountID       uuid.UUID  `json:"account_id"`
	RelatedTransfer *uuid.UUID `json:"related_transfer"`
	Direction       string     `json:"type"`
	Amount          int64      `json:"amount"`
	Currency        string     `json:"currency"`
	Description     *string    `json:"description"`
	CreatedAt       time.Time  `json:"created_at"`
}

type listEntriesResponse struct {
	Page         int             `json:"page"`
	Limit        int             `json:"limit"`
	Transactions []entryResponse `json:"transactions"`
}

func (h *AccountHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	limit := queryInt(r, "limit", 20)

	entries, err := h.accounts.ListEntries(r.Context(), port_ledger.ListEntriesInput{
		AccountID: id,
		Limit:     limit,
		Offset:    (page - 1) * limit,
	})
	if err != nil {
		respondUseCaseError(w, err)
		return
	}

	resp := listEntriesResponse{
		Page:         page,
		Limit:        limit,
		Transactions: make([]entryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Transactions = append(resp.Transactions, entryResponse{
			ID:              e.EntryID,
			AccountID:       e.AccountID,
			RelatedTransfer: e.RelatedTransfer,
			Direction:       e.Direction,
			Amount:          e.Amount,
			Currency:        e.Currency,
			Description:     e.Description,
			CreatedAt:       e.CreatedAt,
		})
	}

	respondJSON(w, http.StatusOK, resp)
}

func accountResponseFrom(out port_ledger.AccountOutput) accountResponse {
	return accountResponse{
		ID:        out.AccountID,
		OwnerID:   out.OwnerID,
		Currency:  out.Currency,
		Balance:   out.Balance,
		CreatedAt: out.CreatedAt,
	}
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
