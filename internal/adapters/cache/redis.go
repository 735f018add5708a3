package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/walletcore/wallet-ledger/internal/core/domain"
	portsrepo "github.com/walletcore/wallet-ledger/internal/core/ports/repositories"
)

const accountKeyPrefix = "wallet:account:"

// RedisBalanceCache caches account state in redis as JSON with a TTL.
// Entries are invalidated after every committed mutation, so staleness is
// bounded by the invalidation window, not the TTL.
type RedisBalanceCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisBalanceCache creates a balance cache on the given client.
func NewRedisBalanceCache(client *redis.Client, ttl time.Duration) *RedisBalanceCache {
	return &RedisBalanceCache{client: client, ttl: ttl}
}

var _ portsrepo.BalanceCache = (*RedisBalanceCache)(nil)

func accountKey(accountID string) string {
	return accountKeyPrefix + accountID
}

// GetAccount retrieves a cached account; (nil, nil) on a miss.
func (c *RedisBalanceCache) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	data, err := c.client.Get(ctx, accountKey(accountID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached account %s: %w", accountID, err)
	}

	var account domain.Account
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, fmt.Errorf("failed to decode cached account %s: %w", accountID, err)
	}
	return &account, nil
}

// SetAccount stores an account with the configured TTL.
func (c *RedisBalanceCache) SetAccount(ctx context.Context, account domain.Account) error {
	data, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("failed to encode account %s for cache: %w", account.AccountID, err)
	}
	return c.client.Set(ctx, accountKey(account.AccountID), data, c.ttl).Err()
}

// InvalidateAccount drops the cached entry.
func (c *RedisBalanceCache) InvalidateAccount(ctx context.Context, accountID string) error {
	return c.client.Del(ctx, accountKey(accountID)).Err()
}
