package cache_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/repositories/cache"
	"github.com/SscSPs/ledger_engine/internal/repositories/memory"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis is an in-process stand-in for the Redis commands the cache uses.
type fakeRedis struct {
	mu   sync.Mutex
	data map[string]string
	down bool
}

func newFakeRedis() *fakeRedis { return &fakeRedis{data: make(map[string]string)} }

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return redis.NewStringResult("", errors.New("connection refused"))
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return redis.NewStatusResult("", errors.New("connection refused"))
	}
	f.data[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func seed(t *testing.T, repo *memory.AccountRepository) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, repo.SaveAccount(ctx, domain.Account{AccountID: "cash", OrganizationID: "org", Code: "1100", Name: "Cash", AccountType: domain.Asset, IsActive: true}))
	require.NoError(t, repo.SaveAccount(ctx, domain.Account{AccountID: "sales", OrganizationID: "org", Code: "4000", Name: "Sales", AccountType: domain.Revenue, IsActive: true}))
}

func TestAccountCache_ReadThrough(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAccountRepository(memory.NewStore())
	seed(t, repo)
	rdb := newFakeRedis()
	c := cache.NewAccountCache(repo, rdb, cache.WithKeyPrefix("test"))

	first, err := c.ListAccounts(ctx, "org")
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Contains(t, rdb.data, "test:accounts:org")

	// Served from the cache even though the underlying store changed behind its back.
	require.NoError(t, repo.SaveAccount(ctx, domain.Account{AccountID: "rent", OrganizationID: "org", Code: "5300", Name: "Rent", AccountType: domain.Expense, IsActive: true}))
	second, err := c.ListAccounts(ctx, "org")
	require.NoError(t, err)
	assert.Len(t, second, 2)

	acc, err := c.ResolveAccount(ctx, "org", "sales")
	require.NoError(t, err)
	assert.Equal(t, "sales", acc.AccountID)

	_, err = c.ResolveAccount(ctx, "org", "Rent")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAccountCache_ResolveAmbiguousName(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAccountRepository(memory.NewStore())
	seed(t, repo)
	require.NoError(t, repo.SaveAccount(ctx, domain.Account{AccountID: "petty", OrganizationID: "org", Code: "1050", Name: "CASH", AccountType: domain.Asset, IsActive: true}))
	c := cache.NewAccountCache(repo, newFakeRedis())

	_, err := c.ResolveAccount(ctx, "org", "cash")
	assert.ErrorIs(t, err, domain.ErrAmbiguousAccount)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	acc, err := c.ResolveAccount(ctx, "org", "1100")
	require.NoError(t, err)
	assert.Equal(t, "cash", acc.AccountID)
}

func TestAccountCache_WritesInvalidate(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAccountRepository(memory.NewStore())
	seed(t, repo)
	rdb := newFakeRedis()
	c := cache.NewAccountCache(repo, rdb)

	_, err := c.ListAccounts(ctx, "org")
	require.NoError(t, err)

	require.NoError(t, c.SaveAccount(ctx, domain.Account{AccountID: "rent", OrganizationID: "org", Code: "5300", Name: "Rent", AccountType: domain.Expense, IsActive: true}))
	assert.NotContains(t, rdb.data, "ledger:accounts:org")

	acc, err := c.FindAccountByCode(ctx, "org", "5300")
	require.NoError(t, err)
	assert.Equal(t, "rent", acc.AccountID)

	require.NoError(t, c.DeactivateAccount(ctx, "rent", "u", time.Now()))
	acc, err = c.ResolveAccount(ctx, "org", "5300")
	require.NoError(t, err)
	assert.False(t, acc.IsActive)
}

func TestAccountCache_FallsBackWhenRedisIsDown(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAccountRepository(memory.NewStore())
	seed(t, repo)
	rdb := newFakeRedis()
	rdb.down = true
	c := cache.NewAccountCache(repo, rdb)

	accounts, err := c.ListAccounts(ctx, "org")
	require.NoError(t, err)
	assert.Len(t, accounts, 2)
	assert.Empty(t, rdb.data)
}

func TestAccountCache_CorruptedEntryIsDropped(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAccountRepository(memory.NewStore())
	seed(t, repo)
	rdb := newFakeRedis()
	rdb.data["ledger:accounts:org"] = "{not json"
	c := cache.NewAccountCache(repo, rdb)

	accounts, err := c.ListAccounts(ctx, "org")
	require.NoError(t, err)
	assert.Len(t, accounts, 2)
	assert.JSONEq(t, mustJSON(t, accounts), rdb.data["ledger:accounts:org"])
}
