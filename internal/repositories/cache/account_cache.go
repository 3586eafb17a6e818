package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/redis/go-redis/v9"
)

const defaultAccountTTL = 5 * time.Minute

// KeyValue is the subset of the Redis client the cache needs.
type KeyValue interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// AccountCache is a read-through cache of each organization's chart of accounts.
// Lookups by code and name are answered from the cached list; writes go to the
// wrapped repository and drop the organization's key.
type AccountCache struct {
	next   portsrepo.AccountRepositoryFacade
	client KeyValue
	ttl    time.Duration
	prefix string
}

// AccountCacheOption is a functional option for configuring the cache
type AccountCacheOption func(*AccountCache)

// WithTTL sets how long a cached chart stays valid.
func WithTTL(ttl time.Duration) AccountCacheOption {
	return func(c *AccountCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithKeyPrefix namespaces cache keys.
func WithKeyPrefix(prefix string) AccountCacheOption {
	return func(c *AccountCache) {
		c.prefix = prefix
	}
}

// NewAccountCache wraps next with a Redis cache.
func NewAccountCache(next portsrepo.AccountRepositoryFacade, client KeyValue, opts ...AccountCacheOption) *AccountCache {
	c := &AccountCache{
		next:   next,
		client: client,
		ttl:    defaultAccountTTL,
		prefix: "ledger",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ portsrepo.AccountRepositoryFacade = (*AccountCache)(nil)

func (c *AccountCache) key(organizationID string) string {
	return fmt.Sprintf("%s:accounts:%s", c.prefix, organizationID)
}

// ListAccounts serves the chart from Redis when present. Redis failures fall back
// to the wrapped repository.
func (c *AccountCache) ListAccounts(ctx context.Context, organizationID string) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	key := c.key(organizationID)

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var accounts []domain.Account
		if err := json.Unmarshal(data, &accounts); err == nil {
			logger.Debug("Account cache hit", slog.String("organization_id", organizationID))
			return accounts, nil
		}
		logger.Warn("Dropping corrupted account cache entry", slog.String("key", key))
		_ = c.client.Del(ctx, key).Err()
	case errors.Is(err, redis.Nil):
		logger.Debug("Account cache miss", slog.String("organization_id", organizationID))
	default:
		logger.Warn("Account cache unavailable", slog.String("error", err.Error()))
	}

	accounts, err := c.next.ListAccounts(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if payload, err := json.Marshal(accounts); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			logger.Warn("Failed to populate account cache", slog.String("error", err.Error()))
		}
	}
	return accounts, nil
}

func (c *AccountCache) ResolveAccount(ctx context.Context, organizationID, nameOrCode string) (*domain.Account, error) {
	accounts, err := c.ListAccounts(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return domain.MatchAccountReference(accounts, nameOrCode)
}

func (c *AccountCache) FindAccountByCode(ctx context.Context, organizationID, code string) (*domain.Account, error) {
	accounts, err := c.ListAccounts(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		if a.Code == code {
			return &a, nil
		}
	}
	return nil, apperrors.NewNotFoundError("account", code)
}

// FindAccountByID is not cached: the organization is unknown until the row is read.
func (c *AccountCache) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return c.next.FindAccountByID(ctx, accountID)
}

func (c *AccountCache) SaveAccount(ctx context.Context, account domain.Account) error {
	if err := c.next.SaveAccount(ctx, account); err != nil {
		return err
	}
	c.invalidate(ctx, account.OrganizationID)
	return nil
}

func (c *AccountCache) DeactivateAccount(ctx context.Context, accountID, userID string, now time.Time) error {
	account, err := c.next.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if err := c.next.DeactivateAccount(ctx, accountID, userID, now); err != nil {
		return err
	}
	c.invalidate(ctx, account.OrganizationID)
	return nil
}

func (c *AccountCache) invalidate(ctx context.Context, organizationID string) {
	if err := c.client.Del(ctx, c.key(organizationID)).Err(); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to invalidate account cache",
			slog.String("organization_id", organizationID),
			slog.String("error", err.Error()))
	}
}
