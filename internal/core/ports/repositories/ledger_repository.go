package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/walletcore/wallet-ledger/internal/core/domain"
)

// LedgerTx is the transaction-scoped view of the ledger store handed to a
// unit of work by RunAtomic. Writes made through it are invisible to other
// units until the enclosing unit commits.
type LedgerTx interface {
	// LockAccount acquires exclusive access to one account for the rest of
	// the unit and returns its current state. It blocks while another
	// in-flight unit holds the same account; units touching other accounts
	// are unaffected. Returns apperrors.ErrAccountNotFound if absent.
	LockAccount(ctx context.Context, accountID string) (*domain.Account, error)

	// SaveTransaction appends a new transaction record, filling in the
	// store-assigned TransactionID and CreatedAt. Returns
	// apperrors.ErrDuplicateReference if the reference is already taken;
	// the check is atomic with the insert.
	SaveTransaction(ctx context.Context, txn *domain.Transaction) error

	// UpdateAccountBalance persists the new balance for an account already
	// locked by this unit.
	UpdateAccountBalance(ctx context.Context, accountID string, newBalance decimal.Decimal, now time.Time) error
}

// LedgerRepository is the Ledger Store port: durable accounts plus an
// append-only transaction log with atomic read-modify-write support.
type LedgerRepository interface {
	// RunAtomic executes fn inside one atomic unit. Every store operation
	// fn performs through the LedgerTx either all takes effect or none
	// does: the unit commits when fn returns nil and rolls back when fn
	// returns an error or panics.
	RunAtomic(ctx context.Context, fn func(ctx context.Context, tx LedgerTx) error) error

	// SaveAccount inserts a newly provisioned account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// FindAccountByID retrieves an account without locking it.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindTransactionsByAccountID retrieves one page of an account's
	// transactions ordered by creation time, newest first.
	FindTransactionsByAccountID(ctx context.Context, accountID string, limit, offset int) ([]domain.Transaction, error)

	// CountTransactionsByAccountID returns the total number of transaction
	// records for an account.
	CountTransactionsByAccountID(ctx context.Context, accountID string) (int64, error)
}
