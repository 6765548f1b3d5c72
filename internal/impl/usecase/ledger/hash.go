package impl_ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"

	port_ledger "github.com/PedroCamargo-dev/core-ledger-service/internal/ports/usecase/ledger"
)

// Request hashes are stored alongside the transfer row so a reused
// idempotency key carrying a different payload can be spotted in the
// data. The kind discriminator keeps deposit/withdraw/transfer payloads
// from colliding.

func HashTransferInput(in port_ledger.TransferInput) string {
	payload := fmt.Sprintf("transfer|%s|%s|%d|%s",
		in.FromAccountID, in.ToAccountID, in.Amount, normCurrency(in.Currency))
	return hashPayload(payload)
}

func HashMovementInput(kind string, accountID uuid.UUID, amount int64, currency string) string {
	payload := fmt.Sprintf("%s|%s|%d|%s", kind, accountID, amount, normCurrency(currency))
	return hashPayload(payload)
}

func normCurrency(currency string) string {
	return strings.ToUpper(strings.TrimSpace(currency))
}

func hashPayload(payload string) string {
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}
