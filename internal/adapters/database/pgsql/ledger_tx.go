package pgsql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/walletcore/wallet-ledger/internal/apperrors"
	"github.com/walletcore/wallet-ledger/internal/core/domain"
	portsrepo "github.com/walletcore/wallet-ledger/internal/core/ports/repositories"
)

// pgxLedgerTx is the transaction-scoped view of the store. It only exists
// for the duration of one RunAtomic unit.
type pgxLedgerTx struct {
	tx pgx.Tx
}

var _ portsrepo.LedgerTx = (*pgxLedgerTx)(nil)

// LockAccount locks the account row for the rest of the transaction and
// returns its current state. Concurrent units locking the same account
// block here until the holder commits or rolls back; rows for other
// accounts are not affected.
func (t *pgxLedgerTx) LockAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `
		SELECT account_id, name, email, balance, created_at, last_updated_at
		FROM accounts
		WHERE account_id = $1
		FOR UPDATE;
	`
	return scanAccount(t.tx.QueryRow(ctx, query, accountID), accountID)
}

// SaveTransaction appends a transaction record. The unique index on
// reference makes the duplicate check atomic with the insert; created_at
// and the monotonic transaction_id are assigned by the database.
func (t *pgxLedgerTx) SaveTransaction(ctx context.Context, txn *domain.Transaction) error {
	query := `
		INSERT INTO transactions (account_id, kind, amount, reference, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING transaction_id, created_at;
	`
	var description sql.NullString
	if txn.Description != "" {
		description = sql.NullString{String: txn.Description, Valid: true}
	}

	err := t.tx.QueryRow(ctx, query,
		txn.AccountID,
		txn.Kind,
		txn.Amount,
		txn.Reference,
		description,
	).Scan(&txn.TransactionID, &txn.CreatedAt)
	if err != nil {
		if uniqueViolation(err, "transactions_reference_key") {
			return fmt.Errorf("%w: reference %q", apperrors.ErrDuplicateReference, txn.Reference)
		}
		return wrapStoreErr(err, "failed to save transaction with reference %q", txn.Reference)
	}
	return nil
}

// UpdateAccountBalance persists the new balance for an account this unit
// has already locked.
func (t *pgxLedgerTx) UpdateAccountBalance(ctx context.Context, accountID string, newBalance decimal.Decimal, now time.Time) error {
	query := `
		UPDATE accounts
		SET balance = $2, last_updated_at = $3
		WHERE account_id = $1;
	`
	cmdTag, err := t.tx.Exec(ctx, query, accountID, newBalance, now)
	if err != nil {
		return wrapStoreErr(err, "failed to update balance for account %s", accountID)
	}
	if cmdTag.RowsAffected() == 0 {
		// Cannot happen for an account locked by this unit.
		return apperrors.ErrAccountNotFound
	}
	return nil
}
