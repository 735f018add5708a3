package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/walletcore/wallet-ledger/internal/core/domain"
)

// ProcessResult is the outcome of one committed wallet operation.
type ProcessResult struct {
	Account     domain.Account
	Transaction domain.Transaction
}

// TransactionListing is one page of an account's transaction history.
type TransactionListing struct {
	Account      domain.Account
	Transactions []domain.Transaction
	Page         int
	PerPage      int
	Total        int64
}

// WalletSvcFacade is the Transaction Processor: it validates a requested
// operation, computes the new balance under a per-account serialization
// guarantee and records the transaction atomically with the balance update.
type WalletSvcFacade interface {
	Process(ctx context.Context, accountID string, amount decimal.Decimal, reference string, kind domain.TransactionKind, description string) (*ProcessResult, error)
	GetBalance(ctx context.Context, accountID string) (*domain.Account, error)
	ListTransactions(ctx context.Context, accountID string, page, perPage int) (*TransactionListing, error)
}

// AccountSvcFacade provisions wallet accounts. Accounts start at 0.00 and
// are only ever mutated by the Transaction Processor afterwards.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, name, email string) (*domain.Account, error)
}
