package dto

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/walletcore/wallet-ledger/internal/core/domain"
	portssvc "github.com/walletcore/wallet-ledger/internal/core/ports/services"
	"github.com/walletcore/wallet-ledger/internal/utils/pagination"
)

// RegisterValidations adds the wallet-specific binding rules to gin's
// validator engine. "walletamount" accepts amounts that are positive and
// within range after scale-2 normalization.
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation("walletamount", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		if !ok {
			return false
		}
		d = domain.NormalizeAmount(d)
		return d.IsPositive() && d.LessThanOrEqual(domain.MaxAmount)
	})
}

// TopUpRequest defines the data needed to credit an account.
type TopUpRequest struct {
	AccountID   string          `json:"account_id" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required,walletamount"`
	Reference   string          `json:"reference" binding:"required,max=255"`
	Description string          `json:"description" binding:"omitempty,max=255"` // Optional
}

// ChargeRequest defines the data needed to debit an account.
type ChargeRequest struct {
	AccountID   string          `json:"account_id" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required,walletamount"`
	Reference   string          `json:"reference" binding:"required,max=255"`
	Description string          `json:"description" binding:"omitempty,max=255"` // Optional
}

// ProcessResponse is returned for a committed top-up or charge.
type ProcessResponse struct {
	TransactionID int64  `json:"transaction_id"`
	AccountID     string `json:"account_id"`
	Kind          string `json:"kind"`
	Amount        string `json:"amount"`      // Formatted to 2 places
	NewBalance    string `json:"new_balance"` // Formatted to 2 places
	Reference     string `json:"reference"`
}

// ToProcessResponse converts a service result to its response DTO.
func ToProcessResponse(res *portssvc.ProcessResult) ProcessResponse {
	return ProcessResponse{
		TransactionID: res.Transaction.TransactionID,
		AccountID:     res.Account.AccountID,
		Kind:          string(res.Transaction.Kind),
		Amount:        res.Transaction.Amount.StringFixed(2),
		NewBalance:    res.Account.Balance.StringFixed(2),
		Reference:     res.Transaction.Reference,
	}
}

// InsufficientBalanceData carries the amounts of a rejected charge as JSON
// numbers, so clients compare values instead of parsing message text.
type InsufficientBalanceData struct {
	CurrentBalance  json.Number `json:"current_balance"`
	RequestedAmount json.Number `json:"requested_amount"`
}

// NewInsufficientBalanceData builds the payload from the structured error.
func NewInsufficientBalanceData(current, requested decimal.Decimal) InsufficientBalanceData {
	return InsufficientBalanceData{
		CurrentBalance:  json.Number(current.StringFixed(2)),
		RequestedAmount: json.Number(requested.StringFixed(2)),
	}
}

// TransactionResponse is one record in a transaction listing.
type TransactionResponse struct {
	TransactionID int64     `json:"transaction_id"`
	Kind          string    `json:"kind"`
	Amount        string    `json:"amount"`
	Reference     string    `json:"reference"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToTransactionResponse converts a domain record to its response DTO.
func ToTransactionResponse(txn domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		Kind:          string(txn.Kind),
		Amount:        txn.Amount.StringFixed(2),
		Reference:     txn.Reference,
		Description:   txn.Description,
		CreatedAt:     txn.CreatedAt,
	}
}

// ListTransactionsResponse wraps one page of an account's history.
type ListTransactionsResponse struct {
	AccountID    string                `json:"account_id"`
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   pagination.Info       `json:"pagination"`
}

// ToListTransactionsResponse converts a service listing to its response DTO.
func ToListTransactionsResponse(listing *portssvc.TransactionListing) ListTransactionsResponse {
	transactions := make([]TransactionResponse, len(listing.Transactions))
	for i, txn := range listing.Transactions {
		transactions[i] = ToTransactionResponse(txn)
	}
	return ListTransactionsResponse{
		AccountID:    listing.Account.AccountID,
		Transactions: transactions,
		Pagination:   pagination.NewInfo(listing.Page, listing.PerPage, listing.Total),
	}
}
