package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
)

// AccountRepository keeps the chart of accounts in memory.
type AccountRepository struct {
	store *Store
}

// NewAccountRepository creates an account repository over store.
func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

var _ portsrepo.AccountRepositoryFacade = (*AccountRepository)(nil)

func (r *AccountRepository) ListAccounts(ctx context.Context, organizationID string) ([]domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []domain.Account
	for _, a := range r.store.accounts {
		if a.OrganizationID == organizationID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *AccountRepository) ResolveAccount(ctx context.Context, organizationID, nameOrCode string) (*domain.Account, error) {
	accounts, _ := r.ListAccounts(ctx, organizationID)
	return domain.MatchAccountReference(accounts, nameOrCode)
}

func (r *AccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	a, ok := r.store.accounts[accountID]
	if !ok {
		return nil, apperrors.NewNotFoundError("account", accountID)
	}
	return &a, nil
}

func (r *AccountRepository) FindAccountByCode(ctx context.Context, organizationID, code string) (*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, a := range r.store.accounts {
		if a.OrganizationID == organizationID && a.Code == code {
			return &a, nil
		}
	}
	return nil, apperrors.NewNotFoundError("account", code)
}

func (r *AccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.accounts[account.AccountID]; ok {
		return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, account.AccountID)
	}
	for _, a := range r.store.accounts {
		if a.OrganizationID == account.OrganizationID && a.Code == account.Code {
			return fmt.Errorf("%w: account code %s already exists", apperrors.ErrDuplicate, account.Code)
		}
	}
	r.store.accounts[account.AccountID] = account
	return nil
}

func (r *AccountRepository) DeactivateAccount(ctx context.Context, accountID, userID string, now time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, ok := r.store.accounts[accountID]
	if !ok {
		return apperrors.NewNotFoundError("account", accountID)
	}
	a.IsActive = false
	a.LastUpdatedAt = now
	a.LastUpdatedBy = userID
	r.store.accounts[accountID] = a
	return nil
}
