package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type tags a ledger transaction.
type Type string

const (
	TypeWithdrawal Type = "withdrawal"
	TypeDeposit    Type = "deposit"
)

// Transaction is one immutable record in the append-only log. One record is
// written per committed withdrawal or deposit.
type Transaction struct {
	ID         uuid.UUID       `json:"transactionId"`
	CardNumber string          `json:"cardNumber"`
	Amount     decimal.Decimal `json:"amount"`
	BranchID   string          `json:"branchId"`
	Type       Type            `json:"type"`
	Timestamp  time.Time       `json:"timestamp"`
}

// Actor identifies the employee attempting an operation and the permissions
// their session token carries.
type Actor struct {
	EmployeeID  string
	Permissions []string
}

// Receipt is returned after a committed balance mutation.
type Receipt struct {
	NewBalance    decimal.Decimal `json:"newBalance"`
	TransactionID uuid.UUID       `json:"transactionId"`
}
