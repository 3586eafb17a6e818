package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/core/ledger"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/google/uuid"
)

type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountClock overrides the clock used for audit fields.
func WithAccountClock(clock func() time.Time) AccountServiceOption {
	return func(s *accountService) {
		s.clock = clock
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{accountRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new account after checking the code and parent.
func (s *accountService) CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	code := strings.TrimSpace(req.Code)
	name := strings.TrimSpace(req.Name)
	if code == "" {
		return nil, apperrors.NewValidationError("code", req.Code, "account code is required")
	}
	if name == "" {
		return nil, apperrors.NewValidationError("name", req.Name, "account name is required")
	}
	if !req.AccountType.IsValid() {
		return nil, apperrors.NewValidationError("accountType", string(req.AccountType), "unknown account type")
	}

	if existing, err := s.accountRepo.FindAccountByCode(ctx, organizationID, code); err == nil && existing != nil {
		return nil, fmt.Errorf("account code %s: %w", code, apperrors.ErrDuplicate)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check account code", slog.String("organization_id", organizationID), slog.String("code", code))
		return nil, fmt.Errorf("failed to check account code: %w", err)
	}

	if req.ParentAccountID != "" {
		parent, err := s.accountRepo.FindAccountByID(ctx, req.ParentAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidationError("parentAccountID", req.ParentAccountID, "parent account does not exist")
			}
			return nil, fmt.Errorf("failed to load parent account: %w", err)
		}
		if parent.OrganizationID != organizationID {
			return nil, apperrors.NewValidationError("parentAccountID", req.ParentAccountID, "parent account belongs to another organization")
		}
		if parent.AccountType != req.AccountType {
			s.LogInfo(ctx, "Account parent has a different type",
				slog.String("parent_type", string(parent.AccountType)),
				slog.String("account_type", string(req.AccountType)))
		}
	}

	account := domain.Account{
		AccountID:       uuid.NewString(),
		OrganizationID:  organizationID,
		Code:            code,
		Name:            name,
		AccountType:     req.AccountType,
		ParentAccountID: req.ParentAccountID,
		Description:     req.Description,
		IsActive:        true,
		AuditFields:     domain.NewAuditFields(userID, s.Now()),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("code", code))
	return &account, nil
}

// GetAccountByID retrieves an account of the organization.
func (s *accountService) GetAccountByID(ctx context.Context, organizationID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	if account.OrganizationID != organizationID {
		return nil, apperrors.NewNotFoundError("account", accountID)
	}
	return account, nil
}

// ListAccounts retrieves the chart of accounts ordered by code.
func (s *accountService) ListAccounts(ctx context.Context, organizationID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	sort.SliceStable(accounts, func(i, j int) bool {
		return ledger.CompareCodes(accounts[i].Code, accounts[j].Code) < 0
	})
	s.LogDebug(ctx, "Accounts listed", slog.Int("count", len(accounts)))
	return accounts, nil
}

// DeactivateAccount soft-deletes an account. Lines already posted to it keep
// counting in reports.
func (s *accountService) DeactivateAccount(ctx context.Context, organizationID, accountID, userID string) error {
	account, err := s.GetAccountByID(ctx, organizationID, accountID)
	if err != nil {
		return err
	}
	if !account.IsActive {
		return &apperrors.StateError{Resource: "account", ID: accountID, State: "inactive", Message: "account is already inactive"}
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, s.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return err
	}
	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}
