package ledger

import (
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
)

// Balances maps account IDs to signed net balances. A missing account has a zero balance.
type Balances map[string]domain.Money

// Get returns the balance of accountID, zero when absent.
func (b Balances) Get(accountID string) domain.Money {
	return b[accountID]
}

// SumOfType adds up the balances of every account of type t.
func (b Balances) SumOfType(types AccountTypeLookup, t domain.AccountType) domain.Money {
	total := domain.ZeroMoney
	for id, amount := range b {
		if at, ok := types.TypeOf(id); ok && at == t {
			total = total.Add(amount)
		}
	}
	return total
}

// AccountTypeLookup resolves the type of an account. *Hierarchy implements it.
type AccountTypeLookup interface {
	TypeOf(accountID string) (domain.AccountType, bool)
}

// ComputeBalances nets every line of every posted entry matching filter into a
// per-account signed balance. Draft and cancelled entries never contribute.
func ComputeBalances(entries []domain.JournalEntry, types AccountTypeLookup, filter domain.DateFilter) (Balances, error) {
	balances := make(Balances)
	for _, entry := range entries {
		if !entry.Status.IsPosted() || !filter.Matches(entry.EntryDate) {
			continue
		}
		for _, line := range entry.Lines {
			accountType, ok := types.TypeOf(line.AccountID)
			if !ok {
				return nil, fmt.Errorf("entry %s line %d: %w", entry.EntryNumber, line.LineNumber, apperrors.NewNotFoundError("account", line.AccountID))
			}
			signed, err := accounting.SignedAmount(line, accountType)
			if err != nil {
				return nil, fmt.Errorf("entry %s line %d: %w", entry.EntryNumber, line.LineNumber, err)
			}
			balances[line.AccountID] = balances[line.AccountID].Add(signed)
		}
	}
	return balances, nil
}
