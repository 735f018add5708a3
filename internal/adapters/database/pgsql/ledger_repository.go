package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/walletcore/wallet-ledger/internal/apperrors"
	"github.com/walletcore/wallet-ledger/internal/core/domain"
	portsrepo "github.com/walletcore/wallet-ledger/internal/core/ports/repositories"
)

// PgxLedgerRepository is the postgres implementation of the Ledger Store.
// Per-account exclusive access is a SELECT ... FOR UPDATE row lock and the
// reference uniqueness invariant is a unique index checked by the insert
// itself, so there is no window between check and write.
type PgxLedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new repository for accounts and transactions.
func NewLedgerRepository(pool *pgxpool.Pool) *PgxLedgerRepository {
	return &PgxLedgerRepository{pool: pool}
}

// Ensure PgxLedgerRepository implements the port.
var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

// RunAtomic executes fn inside one database transaction. The transaction is
// rolled back on error or panic and committed otherwise; the deferred
// rollback is a no-op after a successful commit.
func (r *PgxLedgerRepository) RunAtomic(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrapStoreErr(err, "failed to begin transaction")
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := fn(ctx, &pgxLedgerTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return wrapStoreErr(err, "failed to commit transaction")
	}
	return nil
}

// SaveAccount inserts a newly provisioned account.
func (r *PgxLedgerRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (account_id, name, email, balance, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.pool.Exec(ctx, query,
		account.AccountID,
		account.Name,
		account.Email,
		account.Balance,
		account.CreatedAt,
		account.LastUpdatedAt,
	)
	if err != nil {
		if uniqueViolation(err, "") {
			return fmt.Errorf("%w: account with this id or email already exists", apperrors.ErrDuplicate)
		}
		return wrapStoreErr(err, "failed to save account %s", account.AccountID)
	}
	return nil
}

// FindAccountByID retrieves an account without locking it.
func (r *PgxLedgerRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `
		SELECT account_id, name, email, balance, created_at, last_updated_at
		FROM accounts
		WHERE account_id = $1;
	`
	return scanAccount(r.pool.QueryRow(ctx, query, accountID), accountID)
}

// FindTransactionsByAccountID retrieves one page of an account's
// transactions, newest first. The transaction id breaks created_at ties so
// ordering stays deterministic.
func (r *PgxLedgerRepository) FindTransactionsByAccountID(ctx context.Context, accountID string, limit, offset int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT transaction_id, account_id, kind, amount, reference, description, created_at
		FROM transactions
		WHERE account_id = $1
		ORDER BY created_at DESC, transaction_id DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, wrapStoreErr(err, "failed to query transactions for account %s", accountID)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		var txn domain.Transaction
		var description sql.NullString
		if err := rows.Scan(
			&txn.TransactionID,
			&txn.AccountID,
			&txn.Kind,
			&txn.Amount,
			&txn.Reference,
			&description,
			&txn.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row for account %s: %w", accountID, err)
		}
		txn.Description = description.String
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr(err, "error iterating transaction rows for account %s", accountID)
	}

	return transactions, nil
}

// CountTransactionsByAccountID returns the total number of records for an account.
func (r *PgxLedgerRepository) CountTransactionsByAccountID(ctx context.Context, accountID string) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE account_id = $1;`, accountID).Scan(&total)
	if err != nil {
		return 0, wrapStoreErr(err, "failed to count transactions for account %s", accountID)
	}
	return total, nil
}

// scanAccount scans one account row, mapping pgx.ErrNoRows to the
// application-level not-found error.
func scanAccount(row pgx.Row, accountID string) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(
		&account.AccountID,
		&account.Name,
		&account.Email,
		&account.Balance,
		&account.CreatedAt,
		&account.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, wrapStoreErr(err, "failed to find account %s", accountID)
	}
	return &account, nil
}
