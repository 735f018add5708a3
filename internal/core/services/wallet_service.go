package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/walletcore/wallet-ledger/internal/apperrors"
	"github.com/walletcore/wallet-ledger/internal/core/domain"
	portsrepo "github.com/walletcore/wallet-ledger/internal/core/ports/repositories"
	portssvc "github.com/walletcore/wallet-ledger/internal/core/ports/services"
	"github.com/walletcore/wallet-ledger/internal/middleware"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
	maxReferenceLen = 255
)

// walletService is the Transaction Processor. All balance mutations go
// through Process, which runs as one atomic unit against the ledger store.
type walletService struct {
	ledgerRepo portsrepo.LedgerRepository
	cache      portsrepo.BalanceCache // optional, may be nil
}

// NewWalletService creates a new wallet service. cache may be nil to run
// without a balance cache.
func NewWalletService(ledgerRepo portsrepo.LedgerRepository, cache portsrepo.BalanceCache) portssvc.WalletSvcFacade {
	return &walletService{
		ledgerRepo: ledgerRepo,
		cache:      cache,
	}
}

// Ensure walletService implements the facade.
var _ portssvc.WalletSvcFacade = (*walletService)(nil)

// Process applies one top-up or charge to an account.
//
// The whole operation runs inside RunAtomic: lock the account row, validate
// the balance precondition, append the transaction record and persist the
// new balance. Any failure rolls the unit back, so no record is ever left
// without its matching balance update. Reference uniqueness is enforced by
// the store atomically with the insert; it is deliberately not pre-checked
// here to avoid a check-then-act race.
func (s *walletService) Process(ctx context.Context, accountID string, amount decimal.Decimal, reference string, kind domain.TransactionKind, description string) (*portssvc.ProcessResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown transaction kind %q", apperrors.ErrValidation, kind)
	}
	if reference == "" || len(reference) > maxReferenceLen {
		return nil, fmt.Errorf("%w: reference must be non-empty and at most %d characters", apperrors.ErrValidation, maxReferenceLen)
	}

	// Normalize once; arithmetic and storage below both see the rounded value.
	amount = domain.NormalizeAmount(amount)
	if !amount.IsPositive() || amount.GreaterThan(domain.MaxAmount) {
		return nil, fmt.Errorf("%w: amount must be between 0.01 and %s", apperrors.ErrInvalidAmount, domain.MaxAmount.StringFixed(2))
	}

	if description == "" {
		description = kind.DefaultDescription()
	}

	var result portssvc.ProcessResult
	err := s.ledgerRepo.RunAtomic(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		account, err := tx.LockAccount(ctx, accountID)
		if err != nil {
			return err
		}

		if kind == domain.Charge && account.Balance.LessThan(amount) {
			return &apperrors.InsufficientBalanceError{
				CurrentBalance:  account.Balance,
				RequestedAmount: amount,
			}
		}

		txn := domain.Transaction{
			AccountID:   accountID,
			Kind:        kind,
			Amount:      amount,
			Reference:   reference,
			Description: description,
		}
		if err := tx.SaveTransaction(ctx, &txn); err != nil {
			return err
		}

		now := time.Now().UTC()
		newBalance := account.Balance.Add(txn.SignedAmount())
		if err := tx.UpdateAccountBalance(ctx, accountID, newBalance, now); err != nil {
			return err
		}

		account.Balance = newBalance
		account.LastUpdatedAt = now
		result = portssvc.ProcessResult{Account: *account, Transaction: txn}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The unit is committed; the cached balance is now stale.
	s.invalidateCache(ctx, accountID, logger)

	logger.Info("Wallet operation committed",
		slog.String("account_id", accountID),
		slog.String("kind", string(kind)),
		slog.String("amount", amount.StringFixed(2)),
		slog.Int64("transaction_id", result.Transaction.TransactionID),
	)
	return &result, nil
}

// GetBalance retrieves the current account state, via the balance cache
// when one is configured.
func (s *walletService) GetBalance(ctx context.Context, accountID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.cache != nil {
		cached, err := s.cache.GetAccount(ctx, accountID)
		if err != nil {
			logger.Warn("Balance cache read failed", slog.String("account_id", accountID), slog.String("error", err.Error()))
		} else if cached != nil {
			return cached, nil
		}
	}

	account, err := s.ledgerRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetAccount(ctx, *account); err != nil {
			logger.Warn("Balance cache write failed", slog.String("account_id", accountID), slog.String("error", err.Error()))
		}
	}
	return account, nil
}

// ListTransactions returns one page of an account's history, newest first.
func (s *walletService) ListTransactions(ctx context.Context, accountID string, page, perPage int) (*portssvc.TransactionListing, error) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	account, err := s.ledgerRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	total, err := s.ledgerRepo.CountTransactionsByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * perPage
	transactions, err := s.ledgerRepo.FindTransactionsByAccountID(ctx, accountID, perPage, offset)
	if err != nil {
		return nil, err
	}

	return &portssvc.TransactionListing{
		Account:      *account,
		Transactions: transactions,
		Page:         page,
		PerPage:      perPage,
		Total:        total,
	}, nil
}

func (s *walletService) invalidateCache(ctx context.Context, accountID string, logger *slog.Logger) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAccount(ctx, accountID); err != nil {
		// The entry expires by TTL anyway; reads may briefly see a stale balance.
		logger.Warn("Balance cache invalidation failed", slog.String("account_id", accountID), slog.String("error", err.Error()))
	}
}
