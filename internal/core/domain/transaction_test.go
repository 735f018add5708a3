package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/walletcore/wallet-ledger/internal/core/domain"
)

func TestTransactionKind_Valid(t *testing.T) {
	assert.True(t, domain.TopUp.Valid())
	assert.True(t, domain.Charge.Valid())
	assert.False(t, domain.TransactionKind("REFUND").Valid())
	assert.False(t, domain.TransactionKind("").Valid())
}

func TestTransactionKind_DefaultDescription(t *testing.T) {
	assert.Equal(t, "Top-up transaction", domain.TopUp.DefaultDescription())
	assert.Equal(t, "Charge transaction", domain.Charge.DefaultDescription())
}

func TestTransaction_SignedAmount(t *testing.T) {
	tests := []struct {
		name        string
		transaction domain.Transaction
		want        string
	}{
		{
			name:        "top-up contributes positively",
			transaction: domain.Transaction{Kind: domain.TopUp, Amount: decimal.RequireFromString("100.00")},
			want:        "100.00",
		},
		{
			name:        "charge contributes negatively",
			transaction: domain.Transaction{Kind: domain.Charge, Amount: decimal.RequireFromString("30.00")},
			want:        "-30.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.transaction.SignedAmount().StringFixed(2))
		})
	}
}
