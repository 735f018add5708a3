package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/walletcore/wallet-ledger/internal/apperrors"
	"github.com/walletcore/wallet-ledger/internal/core/domain"
	portsrepo "github.com/walletcore/wallet-ledger/internal/core/ports/repositories"
)

type balanceUpdate struct {
	balance decimal.Decimal
	now     time.Time
}

// memoryLedgerTx stages the writes of one atomic unit. Nothing it stages is
// visible to other units before commit; references are reserved eagerly so
// two in-flight units can never both stage the same one.
type memoryLedgerTx struct {
	repo     *MemoryLedgerRepository
	held     map[string]chan struct{}
	staged   []domain.Transaction
	balances map[string]balanceUpdate
	reserved []string
}

var _ portsrepo.LedgerTx = (*memoryLedgerTx)(nil)

// LockAccount acquires the account's exclusive lock, blocking while another
// unit holds it. Selecting against ctx.Done() means a cancelled caller
// aborts without side effects and without leaking the lock.
func (t *memoryLedgerTx) LockAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	t.repo.mu.Lock()
	if _, ok := t.repo.accounts[accountID]; !ok {
		t.repo.mu.Unlock()
		return nil, apperrors.ErrAccountNotFound
	}
	lock := t.repo.accountLock(accountID)
	t.repo.mu.Unlock()

	if _, already := t.held[accountID]; !already {
		select {
		case lock <- struct{}{}:
			t.held[accountID] = lock
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: waiting for account lock: %v", apperrors.ErrStoreUnavailable, ctx.Err())
		}
	}

	// Re-read after acquiring: the state may have moved while we waited.
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	return t.repo.accountSnapshot(accountID)
}

// SaveTransaction reserves the reference and stages the record, assigning
// the monotonic id and persistence timestamp.
func (t *memoryLedgerTx) SaveTransaction(ctx context.Context, txn *domain.Transaction) error {
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()

	if _, taken := t.repo.references[txn.Reference]; taken {
		return fmt.Errorf("%w: reference %q", apperrors.ErrDuplicateReference, txn.Reference)
	}
	t.repo.references[txn.Reference] = false // reserved, not yet committed
	t.reserved = append(t.reserved, txn.Reference)

	t.repo.nextTxnID++
	txn.TransactionID = t.repo.nextTxnID
	txn.CreatedAt = time.Now().UTC()

	t.staged = append(t.staged, *txn)
	return nil
}

// UpdateAccountBalance stages the new balance for an account this unit has
// locked.
func (t *memoryLedgerTx) UpdateAccountBalance(ctx context.Context, accountID string, newBalance decimal.Decimal, now time.Time) error {
	if _, locked := t.held[accountID]; !locked {
		return fmt.Errorf("account %s is not locked by this unit", accountID)
	}
	t.balances[accountID] = balanceUpdate{balance: newBalance, now: now}
	return nil
}

// commit applies all staged writes in one critical section.
func (t *memoryLedgerTx) commit() {
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()

	for _, ref := range t.reserved {
		t.repo.references[ref] = true
	}
	for _, txn := range t.staged {
		t.repo.transactions[txn.AccountID] = append(t.repo.transactions[txn.AccountID], txn)
	}
	for accountID, upd := range t.balances {
		account := t.repo.accounts[accountID]
		account.Balance = upd.balance
		account.LastUpdatedAt = upd.now
		t.repo.accounts[accountID] = account
	}
}

// finish releases held locks and, when the unit aborted, frees the
// references it had reserved. Runs on every exit path, panics included.
func (t *memoryLedgerTx) finish(committed *bool) {
	t.repo.mu.Lock()
	if !*committed {
		for _, ref := range t.reserved {
			delete(t.repo.references, ref)
		}
	}
	t.repo.mu.Unlock()

	for _, lock := range t.held {
		<-lock
	}
}
