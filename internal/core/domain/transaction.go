package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind indicates whether a transaction credits or debits the wallet.
type TransactionKind string

const (
	TopUp  TransactionKind = "TOP_UP"
	Charge TransactionKind = "CHARGE"
)

// Valid reports whether k is one of the known transaction kinds.
func (k TransactionKind) Valid() bool {
	return k == TopUp || k == Charge
}

// DefaultDescription returns the description synthesized for records
// created without one.
func (k TransactionKind) DefaultDescription() string {
	if k == TopUp {
		return "Top-up transaction"
	}
	return "Charge transaction"
}

// Transaction is an immutable audit entry of one balance change.
// Records are append-only: once persisted they are never updated or deleted.
type Transaction struct {
	TransactionID int64           `json:"transactionID"` // Store-assigned, monotonic
	AccountID     string          `json:"accountID"`     // FK -> Account.accountID (Not Null)
	Kind          TransactionKind `json:"kind"`          // TOP_UP or CHARGE (Not Null)
	Amount        decimal.Decimal `json:"amount"`        // Positive value, scale 2
	Reference     string          `json:"reference"`     // Caller-supplied idempotency key, globally unique
	Description   string          `json:"description"`   // Defaulted from Kind when empty
	CreatedAt     time.Time       `json:"createdAt"`     // Assigned at persistence time
}

// SignedAmount returns the amount with the sign it contributes to the
// account balance: positive for top-ups, negative for charges.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Kind == Charge {
		return t.Amount.Neg()
	}
	return t.Amount
}
