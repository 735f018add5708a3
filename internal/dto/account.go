package dto

import (
	"time"

	"github.com/walletcore/wallet-ledger/internal/core/domain"
)

// CreateAccountRequest defines the data needed to provision a wallet account.
type CreateAccountRequest struct {
	Name  string `json:"name" binding:"required,max=255"`
	Email string `json:"email" binding:"required,email,max=255"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID string    `json:"account_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Balance   string    `json:"balance"` // Formatted to 2 places
	CreatedAt time.Time `json:"created_at"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID: acc.AccountID,
		Name:      acc.Name,
		Email:     acc.Email,
		Balance:   acc.Balance.StringFixed(2),
		CreatedAt: acc.CreatedAt,
	}
}
