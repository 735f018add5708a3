package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrAccountNotFound indicates the referenced wallet account does not exist.
var ErrAccountNotFound = fmt.Errorf("%w: account not found", ErrNotFound)

// ErrDuplicateReference indicates the transaction reference has already been
// used. The caller must retry with a fresh reference.
var ErrDuplicateReference = fmt.Errorf("%w: transaction reference already used", ErrDuplicate)

// ErrInvalidAmount indicates the amount is not a positive value representable
// at 2 decimal places within the supported range.
var ErrInvalidAmount = fmt.Errorf("%w: invalid amount", ErrValidation)

// ErrInsufficientBalance indicates a charge exceeded the current balance.
// Concrete occurrences are InsufficientBalanceError values so callers can
// read the amounts involved; match with errors.Is against this sentinel.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrStoreUnavailable indicates a transient infrastructure fault. The whole
// operation is safe to retry: nothing is committed before this surfaces.
var ErrStoreUnavailable = errors.New("ledger store unavailable")

// InsufficientBalanceError carries the numbers a caller needs to act on a
// rejected charge. It is a structured value, never a message to be parsed.
type InsufficientBalanceError struct {
	CurrentBalance  decimal.Decimal
	RequestedAmount decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: current %s, requested %s",
		e.CurrentBalance.StringFixed(2), e.RequestedAmount.StringFixed(2))
}

// Is lets errors.Is(err, ErrInsufficientBalance) match wrapped occurrences.
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// AsInsufficientBalance extracts the structured payload from an error chain.
func AsInsufficientBalance(err error) (*InsufficientBalanceError, bool) {
	var ibe *InsufficientBalanceError
	if errors.As(err, &ibe) {
		return ibe, true
	}
	return nil, false
}
