package domain

import (
	"github.com/shopspring/decimal"
)

// Account represents a wallet account within the core domain.
// This is the primary representation used by services.
type Account struct {
	AccountID string          `json:"accountID"` // Primary Key (UUID)
	Name      string          `json:"name"`      // Owner display name (profile field, not owned by the ledger)
	Email     string          `json:"email"`     // Owner contact (profile field, not owned by the ledger)
	Balance   decimal.Decimal `json:"balance"`   // Current balance, scale 2, never negative
	AuditFields
}
