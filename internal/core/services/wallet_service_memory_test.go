package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/walletcore/wallet-ledger/internal/adapters/database/memory"
	"github.com/walletcore/wallet-ledger/internal/apperrors"
	"github.com/walletcore/wallet-ledger/internal/core/domain"
	portssvc "github.com/walletcore/wallet-ledger/internal/core/ports/services"
	"github.com/walletcore/wallet-ledger/internal/core/services"
)

// WalletServiceMemoryTestSuite runs the processor against the real in-memory
// store, exercising the full atomic path including locking and rollback.
type WalletServiceMemoryTestSuite struct {
	suite.Suite
	repo    *memory.MemoryLedgerRepository
	service portssvc.WalletSvcFacade
}

func (suite *WalletServiceMemoryTestSuite) SetupTest() {
	suite.repo = memory.NewLedgerRepository()
	suite.service = services.NewWalletService(suite.repo, nil)
}

func (suite *WalletServiceMemoryTestSuite) seedAccount(id string) {
	err := suite.repo.SaveAccount(context.Background(), domain.Account{
		AccountID: id,
		Name:      "Test User",
		Email:     id + "@example.com",
		Balance:   decimal.Zero,
	})
	suite.Require().NoError(err)
}

func (suite *WalletServiceMemoryTestSuite) balance(id string) decimal.Decimal {
	account, err := suite.repo.FindAccountByID(context.Background(), id)
	suite.Require().NoError(err)
	return account.Balance
}

func (suite *WalletServiceMemoryTestSuite) TestTopUpThenChargeThenOverdraft() {
	ctx := context.Background()
	suite.seedAccount("acc-1")

	topUp, err := suite.service.Process(ctx, "acc-1", dec("100.00"), "ref-a", domain.TopUp, "")
	suite.Require().NoError(err)
	suite.True(topUp.Account.Balance.Equal(dec("100.00")))

	charge, err := suite.service.Process(ctx, "acc-1", dec("30.00"), "ref-b", domain.Charge, "")
	suite.Require().NoError(err)
	suite.True(charge.Account.Balance.Equal(dec("70.00")))
	suite.Greater(charge.Transaction.TransactionID, topUp.Transaction.TransactionID)

	// Overdraft attempt fails with the structured payload and changes nothing.
	_, err = suite.service.Process(ctx, "acc-1", dec("100.00"), "ref-c", domain.Charge, "")
	suite.Require().Error(err)
	ibe, ok := apperrors.AsInsufficientBalance(err)
	suite.Require().True(ok)
	suite.True(ibe.CurrentBalance.Equal(dec("70.00")))
	suite.True(ibe.RequestedAmount.Equal(dec("100.00")))
	suite.True(suite.balance("acc-1").Equal(dec("70.00")))

	total, err := suite.repo.CountTransactionsByAccountID(ctx, "acc-1")
	suite.Require().NoError(err)
	suite.Equal(int64(2), total)

	// The failed unit released its reference reservation.
	retry, err := suite.service.Process(ctx, "acc-1", dec("5.00"), "ref-c", domain.Charge, "")
	suite.Require().NoError(err)
	suite.True(retry.Account.Balance.Equal(dec("65.00")))
}

func (suite *WalletServiceMemoryTestSuite) TestConcurrentTopUpsLoseNoUpdates() {
	ctx := context.Background()
	suite.seedAccount("acc-1")

	const workers = 50
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := suite.service.Process(ctx, "acc-1", dec("1.50"), fmt.Sprintf("ref-%d", i), domain.TopUp, "")
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		suite.Require().NoError(err)
	}

	suite.True(suite.balance("acc-1").Equal(dec("75.00")), "got %s", suite.balance("acc-1"))

	total, err := suite.repo.CountTransactionsByAccountID(ctx, "acc-1")
	suite.Require().NoError(err)
	suite.Equal(int64(workers), total)
}

func (suite *WalletServiceMemoryTestSuite) TestConcurrentSameReferenceCommitsOnce() {
	ctx := context.Background()
	suite.seedAccount("acc-1")

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.service.Process(ctx, "acc-1", dec("10.00"), "ref-shared", domain.TopUp, "")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded, duplicates := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, apperrors.ErrDuplicateReference):
			duplicates++
		default:
			suite.Failf("unexpected error", "%v", err)
		}
	}
	suite.Equal(1, succeeded)
	suite.Equal(workers-1, duplicates)
	suite.True(suite.balance("acc-1").Equal(dec("10.00")))
}

func (suite *WalletServiceMemoryTestSuite) TestListTransactionsNewestFirstAcrossPages() {
	ctx := context.Background()
	suite.seedAccount("acc-1")

	for i := 1; i <= 12; i++ {
		_, err := suite.service.Process(ctx, "acc-1", dec("1.00"), fmt.Sprintf("ref-%d", i), domain.TopUp, "")
		suite.Require().NoError(err)
	}

	first, err := suite.service.ListTransactions(ctx, "acc-1", 1, 10)
	suite.Require().NoError(err)
	suite.Equal(int64(12), first.Total)
	suite.Require().Len(first.Transactions, 10)
	for i := 1; i < len(first.Transactions); i++ {
		suite.Greater(first.Transactions[i-1].TransactionID, first.Transactions[i].TransactionID)
	}

	second, err := suite.service.ListTransactions(ctx, "acc-1", 2, 10)
	suite.Require().NoError(err)
	suite.Require().Len(second.Transactions, 2)
	suite.Greater(first.Transactions[len(first.Transactions)-1].TransactionID, second.Transactions[0].TransactionID)

	empty, err := suite.service.ListTransactions(ctx, "acc-1", 3, 10)
	suite.Require().NoError(err)
	suite.Empty(empty.Transactions)
	suite.Equal(int64(12), empty.Total)
}

func TestWalletServiceMemoryTestSuite(t *testing.T) {
	suite.Run(t, new(WalletServiceMemoryTestSuite))
}
