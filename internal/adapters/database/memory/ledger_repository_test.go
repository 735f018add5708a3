package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walletcore/wallet-ledger/internal/adapters/database/memory"
	"github.com/walletcore/wallet-ledger/internal/apperrors"
	"github.com/walletcore/wallet-ledger/internal/core/domain"
	portsrepo "github.com/walletcore/wallet-ledger/internal/core/ports/repositories"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedAccount(t *testing.T, repo *memory.MemoryLedgerRepository, id, balance string) {
	t.Helper()
	err := repo.SaveAccount(context.Background(), domain.Account{
		AccountID: id,
		Name:      "Test User",
		Email:     id + "@example.com",
		Balance:   dec(balance),
	})
	require.NoError(t, err)
}

func TestSaveAccount_RejectsDuplicates(t *testing.T) {
	repo := memory.NewLedgerRepository()
	seedAccount(t, repo, "acc-1", "0.00")

	err := repo.SaveAccount(context.Background(), domain.Account{AccountID: "acc-1", Email: "other@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	err = repo.SaveAccount(context.Background(), domain.Account{AccountID: "acc-2", Email: "acc-1@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestRunAtomic_CommitAppliesStagedWrites(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewLedgerRepository()
	seedAccount(t, repo, "acc-1", "0.00")

	err := repo.RunAtomic(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		account, err := tx.LockAccount(ctx, "acc-1")
		if err != nil {
			return err
		}
		txn := domain.Transaction{AccountID: "acc-1", Kind: domain.TopUp, Amount: dec("10.00"), Reference: "ref-1"}
		if err := tx.SaveTransaction(ctx, &txn); err != nil {
			return err
		}
		return tx.UpdateAccountBalance(ctx, "acc-1", account.Balance.Add(txn.Amount), time.Now().UTC())
	})
	require.NoError(t, err)

	account, err := repo.FindAccountByID(ctx, "acc-1")
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(dec("10.00")))

	total, err := repo.CountTransactionsByAccountID(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestRunAtomic_AbortDiscardsStagedWrites(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewLedgerRepository()
	seedAccount(t, repo, "acc-1", "0.00")

	boom := errors.New("boom")
	err := repo.RunAtomic(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		if _, err := tx.LockAccount(ctx, "acc-1"); err != nil {
			return err
		}
		txn := domain.Transaction{AccountID: "acc-1", Kind: domain.TopUp, Amount: dec("10.00"), Reference: "ref-1"}
		if err := tx.SaveTransaction(ctx, &txn); err != nil {
			return err
		}
		if err := tx.UpdateAccountBalance(ctx, "acc-1", dec("10.00"), time.Now().UTC()); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	account, err := repo.FindAccountByID(ctx, "acc-1")
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(dec("0.00")))

	total, err := repo.CountTransactionsByAccountID(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	// The aborted unit's reference reservation is released.
	err = repo.RunAtomic(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		if _, err := tx.LockAccount(ctx, "acc-1"); err != nil {
			return err
		}
		txn := domain.Transaction{AccountID: "acc-1", Kind: domain.TopUp, Amount: dec("5.00"), Reference: "ref-1"}
		return tx.SaveTransaction(ctx, &txn)
	})
	assert.NoError(t, err)
}

func TestSaveTransaction_AssignsMonotonicIDs(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewLedgerRepository()
	seedAccount(t, repo, "acc-1", "0.00")

	var ids []int64
	for i, ref := range []string{"ref-1", "ref-2", "ref-3"} {
		err := repo.RunAtomic(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
			if _, err := tx.LockAccount(ctx, "acc-1"); err != nil {
				return err
			}
			txn := domain.Transaction{AccountID: "acc-1", Kind: domain.TopUp, Amount: dec("1.00"), Reference: ref}
			if err := tx.SaveTransaction(ctx, &txn); err != nil {
				return err
			}
			ids = append(ids, txn.TransactionID)
			return tx.UpdateAccountBalance(ctx, "acc-1", dec("1.00").Mul(decimal.NewFromInt(int64(i+1))), time.Now().UTC())
		})
		require.NoError(t, err)
	}

	require.Len(t, ids, 3)
	assert.Less(t, ids[0], ids[1])
	assert.Less(t, ids[1], ids[2])
}

func TestSaveTransaction_DuplicateReference(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewLedgerRepository()
	seedAccount(t, repo, "acc-1", "0.00")
	seedAccount(t, repo, "acc-2", "0.00")

	save := func(accountID string) error {
		return repo.RunAtomic(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
			if _, err := tx.LockAccount(ctx, accountID); err != nil {
				return err
			}
			txn := domain.Transaction{AccountID: accountID, Kind: domain.TopUp, Amount: dec("1.00"), Reference: "ref-shared"}
			return tx.SaveTransaction(ctx, &txn)
		})
	}

	require.NoError(t, save("acc-1"))
	// Uniqueness is global, not per account.
	assert.ErrorIs(t, save("acc-2"), apperrors.ErrDuplicateReference)
}

func TestLockAccount_NotFound(t *testing.T) {
	repo := memory.NewLedgerRepository()

	err := repo.RunAtomic(context.Background(), func(ctx context.Context, tx portsrepo.LedgerTx) error {
		_, err := tx.LockAccount(ctx, "missing")
		return err
	})
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
}

func TestLockAccount_CancelledWhileWaiting(t *testing.T) {
	repo := memory.NewLedgerRepository()
	seedAccount(t, repo, "acc-1", "0.00")

	holding := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = repo.RunAtomic(context.Background(), func(ctx context.Context, tx portsrepo.LedgerTx) error {
			if _, err := tx.LockAccount(ctx, "acc-1"); err != nil {
				return err
			}
			close(holding)
			<-release
			return nil
		})
	}()
	<-holding

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := repo.RunAtomic(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		_, err := tx.LockAccount(ctx, "acc-1")
		return err
	})
	require.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
	close(release)

	// The lock is free again once the holder finishes.
	err = repo.RunAtomic(context.Background(), func(ctx context.Context, tx portsrepo.LedgerTx) error {
		_, err := tx.LockAccount(ctx, "acc-1")
		return err
	})
	assert.NoError(t, err)
}

func TestLockAccount_DifferentAccountsDoNotBlock(t *testing.T) {
	repo := memory.NewLedgerRepository()
	seedAccount(t, repo, "acc-1", "0.00")
	seedAccount(t, repo, "acc-2", "0.00")

	holding := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = repo.RunAtomic(context.Background(), func(ctx context.Context, tx portsrepo.LedgerTx) error {
			if _, err := tx.LockAccount(ctx, "acc-1"); err != nil {
				return err
			}
			close(holding)
			<-release
			return nil
		})
	}()
	<-holding
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err := repo.RunAtomic(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		_, err := tx.LockAccount(ctx, "acc-2")
		return err
	})
	assert.NoError(t, err)
}

func TestFindTransactionsByAccountID_NewestFirstPaging(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewLedgerRepository()
	seedAccount(t, repo, "acc-1", "0.00")

	for _, ref := range []string{"ref-1", "ref-2", "ref-3", "ref-4", "ref-5"} {
		err := repo.RunAtomic(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
			if _, err := tx.LockAccount(ctx, "acc-1"); err != nil {
				return err
			}
			txn := domain.Transaction{AccountID: "acc-1", Kind: domain.TopUp, Amount: dec("1.00"), Reference: ref}
			return tx.SaveTransaction(ctx, &txn)
		})
		require.NoError(t, err)
	}

	page, err := repo.FindTransactionsByAccountID(ctx, "acc-1", 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "ref-5", page[0].Reference)
	assert.Equal(t, "ref-4", page[1].Reference)

	page, err = repo.FindTransactionsByAccountID(ctx, "acc-1", 2, 4)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "ref-1", page[0].Reference)

	page, err = repo.FindTransactionsByAccountID(ctx, "acc-1", 2, 10)
	require.NoError(t, err)
	assert.Empty(t, page)
}
