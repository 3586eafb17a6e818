package ledger_test

import (
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/core/ledger"
	"github.com/stretchr/testify/require"
)

func acct(id, code, name string, t domain.AccountType, parent string) domain.Account {
	return domain.Account{
		AccountID:       id,
		OrganizationID:  "org-1",
		Code:            code,
		Name:            name,
		AccountType:     t,
		ParentAccountID: parent,
		IsActive:        true,
	}
}

// chartOfAccounts is a small chart with a two-level asset, liability and expense tree.
func chartOfAccounts() []domain.Account {
	return []domain.Account{
		acct("assets", "1000", "Assets", domain.Asset, ""),
		acct("cash", "1100", "Cash", domain.Asset, "assets"),
		acct("petty", "1110", "Petty Cash", domain.Asset, "cash"),
		acct("ar", "1200", "Receivables", domain.Asset, "assets"),
		acct("inventory", "1300", "Inventory", domain.Asset, "assets"),
		acct("equipment", "1500", "Equipment", domain.Asset, "assets"),
		acct("liabilities", "2000", "Liabilities", domain.Liability, ""),
		acct("ap", "2100", "Payables", domain.Liability, "liabilities"),
		acct("loan", "2500", "Bank Loan", domain.Liability, "liabilities"),
		acct("capital", "3000", "Capital", domain.Equity, ""),
		acct("sales", "4000", "Sales", domain.Revenue, ""),
		acct("expenses", "5000", "Expenses", domain.Expense, ""),
		acct("cogs", "5100", "Cost of Goods Sold", domain.Expense, "expenses"),
		acct("interest", "5200", "Interest", domain.Expense, "expenses"),
		acct("rent", "5300", "Rent", domain.Expense, "expenses"),
	}
}

func newHierarchy(t *testing.T) *ledger.Hierarchy {
	t.Helper()
	h, err := ledger.NewHierarchy(chartOfAccounts())
	require.NoError(t, err)
	return h
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func debit(accountID string, minor int64) domain.JournalEntryLine {
	return domain.JournalEntryLine{AccountID: accountID, DebitAmount: domain.NewMoney(minor)}
}

func credit(accountID string, minor int64) domain.JournalEntryLine {
	return domain.JournalEntryLine{AccountID: accountID, CreditAmount: domain.NewMoney(minor)}
}

func entry(number, day string, status domain.JournalStatus, lines ...domain.JournalEntryLine) domain.JournalEntry {
	for i := range lines {
		lines[i].LineNumber = i + 1
		lines[i].EntryID = "je-" + number
	}
	return domain.JournalEntry{
		EntryID:        "je-" + number,
		OrganizationID: "org-1",
		EntryNumber:    number,
		EntryDate:      date(day),
		Description:    "entry " + number,
		Status:         status,
		Lines:          lines,
	}
}

func balancesOf(t *testing.T, h *ledger.Hierarchy, entries []domain.JournalEntry, filter domain.DateFilter) ledger.Balances {
	t.Helper()
	b, err := ledger.ComputeBalances(entries, h, filter)
	require.NoError(t, err)
	return b
}
