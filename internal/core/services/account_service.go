package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/walletcore/wallet-ledger/internal/apperrors"
	"github.com/walletcore/wallet-ledger/internal/core/domain"
	portsrepo "github.com/walletcore/wallet-ledger/internal/core/ports/repositories"
	portssvc "github.com/walletcore/wallet-ledger/internal/core/ports/services"
	"github.com/walletcore/wallet-ledger/internal/middleware"
)

// accountService provisions wallet accounts. It never touches balances
// after creation; that is the wallet service's job.
type accountService struct {
	ledgerRepo portsrepo.LedgerRepository
}

// NewAccountService creates a new account service.
func NewAccountService(ledgerRepo portsrepo.LedgerRepository) portssvc.AccountSvcFacade {
	return &accountService{ledgerRepo: ledgerRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount provisions a new account with a zero balance.
func (s *accountService) CreateAccount(ctx context.Context, name, email string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID: uuid.NewString(),
		Name:      name,
		Email:     email,
		Balance:   decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.ledgerRepo.SaveAccount(ctx, account); err != nil {
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID))
	return &account, nil
}
