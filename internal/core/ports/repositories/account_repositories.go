package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// AccountRegistry is the read side of the chart of accounts consumed by the engine.
type AccountRegistry interface {
	// ListAccounts returns every account of the organization, active or not.
	ListAccounts(ctx context.Context, organizationID string) ([]domain.Account, error)

	// ResolveAccount finds an account by code first and by case-insensitive name second.
	// It returns an apperrors.NotFoundError when neither matches and a
	// domain.ErrAmbiguousAccount when a name matches several accounts.
	ResolveAccount(ctx context.Context, organizationID, nameOrCode string) (*domain.Account, error)

	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its code within an organization.
	FindAccountByCode(ctx context.Context, organizationID, code string) (*domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. A code already used in the organization
	// yields apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive. Accounts are never hard deleted.
	DeactivateAccount(ctx context.Context, accountID, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountRegistry
	AccountWriter
}
