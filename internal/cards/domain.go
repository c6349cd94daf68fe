package cards

import (
	"time"

	"github.com/shopspring/decimal"
)

// Card represents a payment card and its current balance. The balance never
// goes negative after a committed operation; the ledger enforces that.
type Card struct {
	CardNumber string          `json:"cardNumber"`
	HolderName string          `json:"holderName"`
	Balance    decimal.Decimal `json:"balance"`
	CreatedAt  time.Time       `json:"createdAt"`
}
