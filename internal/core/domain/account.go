package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
)

// ErrAmbiguousAccount is returned when a name reference matches more than one account.
var ErrAmbiguousAccount = errors.New("ambiguous account reference")

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// AccountTypes lists every account type in statement order.
var AccountTypes = []AccountType{Asset, Liability, Equity, Revenue, Expense}

// IsValid reports whether t is one of the five account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// IsDebitNormal reports whether debits increase the balance of accounts of this type.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// Account represents a ledger account within an organization's chart of accounts.
type Account struct {
	AccountID       string      `json:"accountID"`       // Primary Key (UUID)
	OrganizationID  string      `json:"organizationID"`  // Owning organization (NON-NULL)
	Code            string      `json:"code"`            // Unique per organization, numeric-looking
	Name            string      `json:"name"`            // User-defined name
	AccountType     AccountType `json:"accountType"`     // ASSET, LIABILITY, etc.
	ParentAccountID string      `json:"parentAccountID"` // Optional parent in the same organization
	Description     string      `json:"description"`     // Nullable user description
	IsActive        bool        `json:"isActive"`        // Soft delete flag; accounts are never hard-deleted
	AuditFields
}

// MatchAccountReference resolves ref against accounts by exact code first, then by
// case-insensitive name. A name shared by several accounts is an ErrAmbiguousAccount.
func MatchAccountReference(accounts []Account, ref string) (*Account, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, apperrors.NewNotFoundError("account", ref)
	}
	for i := range accounts {
		if accounts[i].Code == ref {
			acc := accounts[i]
			return &acc, nil
		}
	}
	var matches []Account
	for _, a := range accounts {
		if strings.EqualFold(a.Name, ref) {
			matches = append(matches, a)
		}
	}
	switch len(matches) {
	case 0:
		return nil, apperrors.NewNotFoundError("account", ref)
	case 1:
		return &matches[0], nil
	}
	codes := make([]string, len(matches))
	for i, m := range matches {
		codes[i] = m.Code
	}
	msg := fmt.Sprintf("name matches accounts %s", strings.Join(codes, ", "))
	return nil, fmt.Errorf("%w: %w", ErrAmbiguousAccount, apperrors.NewValidationError("account", ref, msg))
}
