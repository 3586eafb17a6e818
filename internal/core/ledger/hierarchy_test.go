package ledger_test

import (
	"errors"
	"testing"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/core/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(accounts []domain.Account) []string {
	out := make([]string, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.AccountID)
	}
	return out
}

func TestHierarchy_Navigation(t *testing.T) {
	h := newHierarchy(t)

	assert.Equal(t, []string{"assets", "cash", "petty", "ar", "inventory", "equipment"}, ids(h.Subtree("assets")))
	assert.Equal(t, []string{"cash", "ar", "inventory", "equipment"}, ids(h.Children("assets", domain.Asset)))
	assert.Equal(t, []string{"liabilities"}, ids(h.Children("", domain.Liability)))
	assert.Empty(t, h.Children("assets", domain.Liability))
	assert.Nil(t, h.Subtree("missing"))

	assert.True(t, h.IsDescendant("petty", "assets"))
	assert.True(t, h.IsDescendant("petty", "cash"))
	assert.False(t, h.IsDescendant("assets", "petty"))
	assert.False(t, h.IsDescendant("cash", "cash"))
	assert.False(t, h.IsDescendant("ap", "assets"))

	assert.Equal(t, []string{"cash", "assets"}, ids(h.Ancestors("petty")))

	acc, ok := h.ByCode("2500")
	require.True(t, ok)
	assert.Equal(t, "loan", acc.AccountID)
	assert.Equal(t, []string{"cash"}, ids(h.ByName("  cash ")))
}

func TestNewHierarchy_Errors(t *testing.T) {
	tests := []struct {
		name     string
		accounts []domain.Account
		target   error
	}{
		{
			name: "duplicate id",
			accounts: []domain.Account{
				acct("a", "1", "A", domain.Asset, ""),
				acct("a", "2", "B", domain.Asset, ""),
			},
			target: apperrors.ErrValidation,
		},
		{
			name:     "unknown type",
			accounts: []domain.Account{acct("a", "1", "A", domain.AccountType("STOCK"), "")},
			target:   apperrors.ErrValidation,
		},
		{
			name:     "missing parent",
			accounts: []domain.Account{acct("a", "1", "A", domain.Asset, "ghost")},
			target:   apperrors.ErrNotFound,
		},
		{
			name: "cycle",
			accounts: []domain.Account{
				acct("a", "1", "A", domain.Asset, "b"),
				acct("b", "2", "B", domain.Asset, "a"),
			},
			target: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ledger.NewHierarchy(tt.accounts)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
		})
	}
}

func TestHierarchy_TreeTotalsAndPruning(t *testing.T) {
	h := newHierarchy(t)
	balances := ledger.Balances{
		"assets":    domain.NewMoney(100),
		"petty":     domain.NewMoney(2500),
		"equipment": domain.NewMoney(-300),
	}

	full, total := h.Tree(domain.Asset, balances, ledger.TreeOptions{})
	require.Len(t, full, 1)
	assert.Equal(t, domain.NewMoney(2300), total)
	assert.Equal(t, domain.NewMoney(100), full[0].OwnBalance)
	assert.Equal(t, domain.NewMoney(2300), full[0].Total)
	assert.Len(t, full[0].Children, 4)
	assert.Equal(t, h.SubtreeTotal("assets", balances), full[0].Total)

	pruned, prunedTotal := h.Tree(domain.Asset, balances, ledger.TreeOptions{PruneZero: true})
	assert.Equal(t, total, prunedTotal)
	require.Len(t, pruned, 1)
	assert.Equal(t, []string{"cash", "equipment"}, nodeIDs(pruned[0].Children))
	assert.Equal(t, domain.NewMoney(2500), pruned[0].Children[0].Total)
	assert.Equal(t, 1, pruned[0].Children[0].Depth)

	flat, flatTotal := h.Tree(domain.Asset, balances, ledger.TreeOptions{PruneZero: true, Flat: true})
	assert.Equal(t, total, flatTotal)
	assert.Equal(t, []string{"assets", "cash", "petty", "equipment"}, nodeIDs(flat))
	for _, n := range flat {
		assert.Empty(t, n.Children)
	}
}

func TestHierarchy_SubtreeTotalMatchesOwnBalances(t *testing.T) {
	h := newHierarchy(t)
	balances := ledger.Balances{}
	for i, acc := range chartOfAccounts() {
		balances[acc.AccountID] = domain.NewMoney(int64((i + 1) * 137))
	}
	for _, root := range []string{"assets", "liabilities", "expenses"} {
		sum := domain.ZeroMoney
		for _, acc := range h.Subtree(root) {
			sum = sum.Add(balances[acc.AccountID])
		}
		assert.Equal(t, sum, h.SubtreeTotal(root, balances), root)
	}
}

func TestCompareCodes(t *testing.T) {
	assert.Equal(t, -1, ledger.CompareCodes("150", "1000"))
	assert.Equal(t, 1, ledger.CompareCodes("1000", "150"))
	assert.Equal(t, -1, ledger.CompareCodes("1100", "1200"))
	assert.Equal(t, 0, ledger.CompareCodes("1100", "1100"))
	assert.Equal(t, -1, ledger.CompareCodes("A-10", "B-1"))
}

func nodeIDs(nodes []domain.ReportNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.AccountID)
	}
	return out
}
