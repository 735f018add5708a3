package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/walletcore/wallet-ledger/internal/utils/pagination"
)

func TestNewInfo(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		perPage  int
		total    int64
		lastPage int
	}{
		{name: "empty collection still has one page", page: 1, perPage: 10, total: 0, lastPage: 1},
		{name: "exactly one page", page: 1, perPage: 10, total: 10, lastPage: 1},
		{name: "one item spills to next page", page: 1, perPage: 10, total: 11, lastPage: 2},
		{name: "multiple full pages", page: 2, perPage: 5, total: 20, lastPage: 4},
		{name: "single item", page: 1, perPage: 10, total: 1, lastPage: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := pagination.NewInfo(tt.page, tt.perPage, tt.total)
			assert.Equal(t, tt.page, info.CurrentPage)
			assert.Equal(t, tt.perPage, info.PerPage)
			assert.Equal(t, tt.total, info.Total)
			assert.Equal(t, tt.lastPage, info.LastPage)
		})
	}
}
