package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/walletcore/wallet-ledger/internal/apperrors"
)

// uniqueViolation reports whether err is a postgres unique-constraint
// violation on the named constraint. An empty constraint matches any.
func uniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != "23505" { // unique_violation
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// wrapStoreErr wraps a low-level database error, classifying transient
// infrastructure faults (broken connections, timeouts) as
// apperrors.ErrStoreUnavailable so callers know the operation is safe to
// retry in full.
func wrapStoreErr(err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %v", apperrors.ErrStoreUnavailable, msg, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
