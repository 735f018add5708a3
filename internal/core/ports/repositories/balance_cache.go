package repositories

import (
	"context"

	"github.com/walletcore/wallet-ledger/internal/core/domain"
)

// BalanceCache is an optional read cache in front of account lookups.
// Correctness never depends on it: entries are dropped after every
// committed mutation and misses fall through to the ledger store.
type BalanceCache interface {
	// GetAccount returns the cached account, or (nil, nil) on a miss.
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
	SetAccount(ctx context.Context, account domain.Account) error
	InvalidateAccount(ctx context.Context, accountID string) error
}
