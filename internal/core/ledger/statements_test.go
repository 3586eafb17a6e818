package ledger_test

import (
	"encoding/json"
	"errors"
	"math/rand"
	"testing"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/core/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func salesEntries() []domain.JournalEntry {
	return []domain.JournalEntry{
		entry("2024010001", "2024-01-15", domain.Approved, debit("cash", 100000), credit("sales", 100000)),
	}
}

func TestComputeBalances_SignConvention(t *testing.T) {
	h := newHierarchy(t)
	entries := []domain.JournalEntry{
		entry("2024010001", "2024-01-02", domain.Approved, debit("cash", 50000), credit("capital", 50000)),
		entry("2024010002", "2024-01-03", domain.Locked, debit("rent", 1200), credit("cash", 1200)),
		entry("2024010003", "2024-01-04", domain.Approved, debit("equipment", 9000), credit("ap", 9000)),
		entry("2024010004", "2024-01-05", domain.Draft, debit("cash", 777), credit("sales", 777)),
		entry("2024010005", "2024-01-06", domain.Cancelled, debit("cash", 888), credit("sales", 888)),
		entry("2024020001", "2024-02-01", domain.Approved, debit("ap", 4000), credit("cash", 4000)),
	}

	got := balancesOf(t, h, entries, domain.AsOf(date("2024-01-31")))
	assert.Equal(t, ledger.Balances{
		"cash":      domain.NewMoney(48800),
		"capital":   domain.NewMoney(50000),
		"rent":      domain.NewMoney(1200),
		"equipment": domain.NewMoney(9000),
		"ap":        domain.NewMoney(9000),
	}, got)
	_, present := got["sales"]
	assert.False(t, present, "draft and cancelled entries must not contribute")

	feb := balancesOf(t, h, entries, domain.DateRange(date("2024-02-01"), date("2024-02-29")))
	assert.Equal(t, domain.NewMoney(-4000), feb.Get("cash"))
	assert.Equal(t, domain.NewMoney(-4000), feb.Get("ap"))

	before := balancesOf(t, h, entries, domain.Before(date("2024-01-03")))
	assert.Equal(t, domain.NewMoney(50000), before.Get("cash"))
	assert.True(t, before.Get("rent").IsZero())
}

func TestComputeBalances_UnknownAccount(t *testing.T) {
	h := newHierarchy(t)
	entries := []domain.JournalEntry{
		entry("2024010001", "2024-01-02", domain.Approved, debit("ghost", 10), credit("cash", 10)),
	}
	_, err := ledger.ComputeBalances(entries, h, domain.AsOf(date("2024-12-31")))
	require.Error(t, err)
	var nf *apperrors.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "ghost", nf.Key)
}

func TestAssembleBalanceSheet_SingleSale(t *testing.T) {
	h := newHierarchy(t)
	asOf := date("2024-01-31")
	report := ledger.AssembleBalanceSheet(h, balancesOf(t, h, salesEntries(), domain.AsOf(asOf)), asOf, ledger.TreeOptions{PruneZero: true})

	assert.Equal(t, domain.NewMoney(100000), report.TotalAssets)
	assert.Equal(t, domain.ZeroMoney, report.TotalLiabilities)
	assert.Equal(t, domain.ZeroMoney, report.TotalEquity)
	assert.Equal(t, domain.NewMoney(100000), report.NetIncome)
	assert.Equal(t, domain.NewMoney(100000), report.AdjustedTotalEquity)
	assert.Equal(t, domain.NewMoney(100000), report.TotalLiabilitiesAndEquity)
	assert.True(t, report.IsBalanced)

	require.Len(t, report.Assets.Accounts, 1)
	assert.Equal(t, []string{"cash"}, nodeIDs(report.Assets.Accounts[0].Children))
	assert.Empty(t, report.Liabilities.Accounts)
}

func TestAssembleIncomeStatement_SingleSale(t *testing.T) {
	h := newHierarchy(t)
	start, end := date("2024-01-01"), date("2024-01-31")
	report := ledger.AssembleIncomeStatement(h, balancesOf(t, h, salesEntries(), domain.DateRange(start, end)), start, end, ledger.TreeOptions{PruneZero: true})

	assert.Equal(t, domain.NewMoney(100000), report.Revenue.Total)
	assert.Equal(t, domain.ZeroMoney, report.Expenses.Total)
	assert.Equal(t, domain.NewMoney(100000), report.TotalRevenue)
	assert.Equal(t, domain.NewMoney(100000), report.GrossProfit)
	assert.Equal(t, domain.NewMoney(100000), report.NetIncome)
}

func TestAssembleTrialBalance(t *testing.T) {
	h := newHierarchy(t)
	entries := []domain.JournalEntry{
		entry("2024010001", "2024-01-02", domain.Approved, debit("cash", 50000), credit("capital", 50000)),
		entry("2024010002", "2024-01-03", domain.Approved, debit("rent", 1200), credit("cash", 1200)),
		entry("2024010003", "2024-01-04", domain.Approved, debit("ap", 300), credit("cash", 300)),
	}
	report, err := ledger.AssembleTrialBalance(h, balancesOf(t, h, entries, domain.AsOf(date("2024-01-31"))), date("2024-01-31"))
	require.NoError(t, err)

	require.Len(t, report.Rows, 4)
	assert.Equal(t, []string{"1100", "2100", "3000", "5300"}, []string{report.Rows[0].Code, report.Rows[1].Code, report.Rows[2].Code, report.Rows[3].Code})
	assert.Equal(t, domain.NewMoney(48500), report.Rows[0].Debit)
	// Overdrawn payable shows on the debit side.
	assert.Equal(t, domain.NewMoney(300), report.Rows[1].Debit)
	assert.Equal(t, domain.NewMoney(50000), report.Rows[2].Credit)
	assert.Equal(t, domain.NewMoney(1200), report.Rows[3].Debit)
	assert.Equal(t, domain.NewMoney(50000), report.TotalDebit)
	assert.Equal(t, domain.NewMoney(50000), report.TotalCredit)
	assert.True(t, report.IsBalanced)
}

func TestAssembleTrialBalance_UnknownAccount(t *testing.T) {
	h := newHierarchy(t)
	balances := ledger.Balances{"cash": domain.NewMoney(500), "ghost": domain.NewMoney(-500)}

	_, err := ledger.AssembleTrialBalance(h, balances, date("2024-01-31"))
	var notFound *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "ghost", notFound.Key)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// randomEntries builds balanced entries across every account in the chart.
func randomEntries(seed int64, n int) []domain.JournalEntry {
	rng := rand.New(rand.NewSource(seed))
	accounts := chartOfAccounts()
	statuses := []domain.JournalStatus{domain.Approved, domain.Approved, domain.Locked, domain.Draft, domain.Cancelled}
	days := []string{"2024-01-05", "2024-02-10", "2024-03-15", "2024-04-20", "2024-06-30"}

	out := make([]domain.JournalEntry, 0, n)
	for i := 0; i < n; i++ {
		a := accounts[rng.Intn(len(accounts))].AccountID
		b := accounts[rng.Intn(len(accounts))].AccountID
		for b == a {
			b = accounts[rng.Intn(len(accounts))].AccountID
		}
		amount := rng.Int63n(1_000_000) + 1
		split := amount / 3
		lines := []domain.JournalEntryLine{debit(a, amount), credit(b, amount-split)}
		if split > 0 {
			lines = append(lines, credit(accounts[rng.Intn(len(accounts))].AccountID, split))
		}
		out = append(out, entry(ledger.FormatEntryNumber("202401", i+1), days[rng.Intn(len(days))], statuses[rng.Intn(len(statuses))], lines...))
	}
	return out
}

func TestAssembleBalanceSheet_AlwaysBalances(t *testing.T) {
	h := newHierarchy(t)
	for seed := int64(1); seed <= 20; seed++ {
		entries := randomEntries(seed, 60)
		for _, day := range []string{"2023-12-31", "2024-02-15", "2024-04-20", "2024-12-31"} {
			asOf := date(day)
			report := ledger.AssembleBalanceSheet(h, balancesOf(t, h, entries, domain.AsOf(asOf)), asOf, ledger.TreeOptions{PruneZero: true})
			assert.True(t, report.IsBalanced, "seed %d as of %s: assets %s, liabilities+equity %s", seed, day, report.TotalAssets, report.TotalLiabilitiesAndEquity)
			assert.Equal(t, report.TotalAssets, report.TotalLiabilities.Add(report.AdjustedTotalEquity))

			tb, err := ledger.AssembleTrialBalance(h, balancesOf(t, h, entries, domain.AsOf(asOf)), asOf)
			require.NoError(t, err)
			assert.True(t, tb.IsBalanced)
		}
	}
}

func TestAssemblers_AreIdempotent(t *testing.T) {
	h := newHierarchy(t)
	entries := randomEntries(42, 80)
	asOf := date("2024-06-30")
	start := date("2024-01-01")

	render := func() []byte {
		asOfBalances := balancesOf(t, h, entries, domain.AsOf(asOf))
		rangeBalances := balancesOf(t, h, entries, domain.DateRange(start, asOf))
		cf, err := ledger.AssembleCashFlow(h, entries, []string{"cash"}, nil, start, asOf)
		require.NoError(t, err)
		tb, err := ledger.AssembleTrialBalance(h, asOfBalances, asOf)
		require.NoError(t, err)
		out, err := json.Marshal([]any{
			ledger.AssembleBalanceSheet(h, asOfBalances, asOf, ledger.TreeOptions{PruneZero: true}),
			ledger.AssembleIncomeStatement(h, rangeBalances, start, asOf, ledger.TreeOptions{}),
			tb,
			cf,
			ledger.ComputeRatios(h, asOfBalances, rangeBalances, ledger.Classification{}, asOf),
		})
		require.NoError(t, err)
		return out
	}

	assert.Equal(t, string(render()), string(render()))
}
