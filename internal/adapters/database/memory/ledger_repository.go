// Package memory implements the Ledger Store in process memory. It backs
// dev mode (no PGSQL_URL configured) and the concurrency tests, and honors
// the same contract as the postgres store: per-account exclusive locks,
// atomic units with rollback, an append-only transaction log and a global
// uniqueness invariant on references.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/walletcore/wallet-ledger/internal/apperrors"
	"github.com/walletcore/wallet-ledger/internal/core/domain"
	portsrepo "github.com/walletcore/wallet-ledger/internal/core/ports/repositories"
)

// MemoryLedgerRepository holds all state behind one mutex guarding the maps
// plus one channel-based lock per account. The channel form (capacity 1)
// lets LockAccount select against ctx.Done(), so a caller that times out
// waiting aborts cleanly without ever holding the lock.
type MemoryLedgerRepository struct {
	mu           sync.Mutex
	accounts     map[string]domain.Account
	transactions map[string][]domain.Transaction // per account, commit order
	references   map[string]bool                 // reference -> committed (false = reserved by an in-flight unit)
	locks        map[string]chan struct{}
	nextTxnID    int64
}

// NewLedgerRepository creates an empty in-memory ledger store.
func NewLedgerRepository() *MemoryLedgerRepository {
	return &MemoryLedgerRepository{
		accounts:     make(map[string]domain.Account),
		transactions: make(map[string][]domain.Transaction),
		references:   make(map[string]bool),
		locks:        make(map[string]chan struct{}),
	}
}

var _ portsrepo.LedgerRepository = (*MemoryLedgerRepository)(nil)

// RunAtomic executes fn as one unit. Staged writes are applied only when fn
// returns nil; on error or panic everything staged is discarded, reserved
// references are freed and held locks are released.
func (r *MemoryLedgerRepository) RunAtomic(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) (err error) {
	unit := &memoryLedgerTx{
		repo:     r,
		held:     make(map[string]chan struct{}),
		balances: make(map[string]balanceUpdate),
	}
	committed := false
	defer unit.finish(&committed)

	if err := fn(ctx, unit); err != nil {
		return err
	}

	unit.commit()
	committed = true
	return nil
}

// SaveAccount inserts a newly provisioned account.
func (r *MemoryLedgerRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[account.AccountID]; exists {
		return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, account.AccountID)
	}
	for _, existing := range r.accounts {
		if existing.Email == account.Email {
			return fmt.Errorf("%w: email %s already registered", apperrors.ErrDuplicate, account.Email)
		}
	}
	r.accounts[account.AccountID] = account
	return nil
}

// FindAccountByID returns a snapshot of the account's committed state.
func (r *MemoryLedgerRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.accountSnapshot(accountID)
}

// FindTransactionsByAccountID returns one page, newest first. Records are
// stored in commit order with monotonic ids, so newest-first is simply the
// reverse of the stored order.
func (r *MemoryLedgerRepository) FindTransactionsByAccountID(ctx context.Context, accountID string, limit, offset int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	all := r.transactions[accountID]
	page := []domain.Transaction{}
	for i := len(all) - 1 - offset; i >= 0 && len(page) < limit; i-- {
		page = append(page, all[i])
	}
	return page, nil
}

// CountTransactionsByAccountID returns the committed record count.
func (r *MemoryLedgerRepository) CountTransactionsByAccountID(ctx context.Context, accountID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.transactions[accountID])), nil
}

// accountSnapshot returns a copy so callers never alias internal state.
// Caller must hold r.mu.
func (r *MemoryLedgerRepository) accountSnapshot(accountID string) (*domain.Account, error) {
	account, ok := r.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	cp := account
	return &cp, nil
}

// accountLock returns the lock channel for an account, creating it on first
// use. Caller must hold r.mu.
func (r *MemoryLedgerRepository) accountLock(accountID string) chan struct{} {
	ch, ok := r.locks[accountID]
	if !ok {
		ch = make(chan struct{}, 1)
		r.locks[accountID] = ch
	}
	return ch
}
