// Package app assembles repositories, caches, event sinks and services from configuration.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ledger_engine/internal/adapters/events"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/platform/classification"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/SscSPs/ledger_engine/internal/repositories/cache"
	"github.com/SscSPs/ledger_engine/internal/repositories/database/pgsql"
	"github.com/SscSPs/ledger_engine/internal/repositories/memory"
	"github.com/SscSPs/ledger_engine/pkg/database"
	"github.com/redis/go-redis/v9"
)

// App is a fully wired service container plus the resources it holds open.
type App struct {
	Services *portssvc.ServiceContainer

	closers []func()
}

// Close releases database pools and Redis clients in reverse order of creation.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// Options tunes Build.
type Options struct {
	// RunMigrations applies pending migrations before the pool is used.
	RunMigrations bool
	// Store backs the memory storage driver. Nil creates an empty one.
	Store *memory.Store
}

// Build creates the storage selected by cfg.StorageBackend, wraps the account
// repository with the Redis cache and enables the event publisher when Redis is
// configured, loads the classification file and creates every service.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts Options) (*App, error) {
	a := &App{}

	settings, err := classification.Load(cfg.ClassificationFile)
	if err != nil {
		return nil, err
	}
	if len(settings.CashAccountNames) > 0 {
		cfg.CashAccountNames = mergeNames(cfg.CashAccountNames, settings.CashAccountNames)
	}

	var repos portsrepo.RepositoryProvider
	switch cfg.StorageBackend {
	case config.StorageMemory:
		store := opts.Store
		if store == nil {
			store = memory.NewStore()
		}
		repos = memory.NewRepositoryProvider(store)
		logger.Info("Using in-memory storage")
	default:
		if opts.RunMigrations {
			if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
				return nil, err
			}
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		repos = pgsql.NewRepositoryProvider(pool)
		logger.Info("Database connection pool established.")
	}

	var publisher portssvc.EntryEventPublisher
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		a.closers = append(a.closers, func() {
			if err := rdb.Close(); err != nil {
				logger.Error("Error closing redis client", slog.String("error", err.Error()))
			}
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			// The cache falls back to storage and publishing is best effort.
			logger.Warn("Redis is unreachable", slog.String("addr", cfg.RedisAddr), slog.String("error", err.Error()))
		}
		repos.AccountRepo = cache.NewAccountCache(repos.AccountRepo, rdb, cache.WithTTL(cfg.AccountCacheTTL))
		publisher = events.NewRedisEntryPublisher(rdb, cfg.EventsChannel)
		logger.Info("Redis account cache and entry events enabled", slog.String("channel", cfg.EventsChannel))
	}

	a.Services = services.NewServiceContainer(cfg, repos, settings.Classification, publisher)
	return a, nil
}

func mergeNames(base, extra []string) []string {
	seen := make(map[string]bool, len(base))
	out := make([]string, 0, len(base)+len(extra))
	for _, n := range append(append([]string{}, base...), extra...) {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
