package ledger_test

import (
	"testing"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/core/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func assertDecimal(t *testing.T, want string, got decimal.Decimal, name string) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "%s: want %s, got %s", name, want, got)
}

func TestComputeRatios(t *testing.T) {
	h := newHierarchy(t)
	entries := []domain.JournalEntry{
		entry("2024010001", "2024-01-02", domain.Approved, debit("cash", 100000), credit("capital", 100000)),
		entry("2024010002", "2024-01-03", domain.Approved, debit("cash", 50000), credit("loan", 50000)),
		entry("2024010003", "2024-01-04", domain.Approved, debit("inventory", 40000), credit("ap", 40000)),
		entry("2024020001", "2024-02-01", domain.Approved, debit("ar", 60000), credit("sales", 60000)),
		entry("2024020002", "2024-02-01", domain.Approved, debit("cogs", 30000), credit("inventory", 30000)),
		entry("2024030001", "2024-03-01", domain.Approved, debit("interest", 5000), credit("cash", 5000)),
		entry("2024030002", "2024-03-02", domain.Approved, debit("equipment", 20000), credit("cash", 20000)),
	}
	classification := ledger.Classification{
		Ranges: map[ledger.Category][]ledger.CodeRange{
			ledger.CurrentAsset: {{From: "1100", To: "1399"}},
		},
		Accounts: map[string][]ledger.Category{
			"1100": {ledger.Cash},
			"1200": {ledger.Receivable},
			"1300": {ledger.Inventory},
			"2100": {ledger.CurrentLiability},
			"5100": {ledger.CostOfSales},
			"5200": {ledger.InterestExpense},
		},
	}

	asOf := date("2024-06-30")
	asOfBalances := balancesOf(t, h, entries, domain.AsOf(asOf))
	ytd := balancesOf(t, h, entries, domain.DateRange(ledger.YearStart(asOf), asOf))
	report := ledger.ComputeRatios(h, asOfBalances, ytd, classification, asOf)

	assertDecimal(t, "4.875", report.Liquidity.CurrentRatio, "current")
	assertDecimal(t, "4.625", report.Liquidity.QuickRatio, "quick")
	assertDecimal(t, "3.125", report.Liquidity.CashRatio, "cash")

	assertDecimal(t, "0.5", report.Profitability.GrossMargin, "gross margin")
	assertDecimal(t, "0.4167", report.Profitability.NetMargin, "net margin")
	assertDecimal(t, "0.1163", report.Profitability.ReturnOnAssets, "roa")
	assertDecimal(t, "0.2", report.Profitability.ReturnOnEquity, "roe")

	assertDecimal(t, "0.2791", report.Efficiency.AssetTurnover, "asset turnover")
	assertDecimal(t, "1", report.Efficiency.ReceivablesTurnover, "receivables turnover")
	assertDecimal(t, "3", report.Efficiency.InventoryTurnover, "inventory turnover")

	assertDecimal(t, "0.72", report.Leverage.DebtToEquity, "debt to equity")
	assertDecimal(t, "0.4186", report.Leverage.DebtToAssets, "debt to assets")
	assertDecimal(t, "6", report.Leverage.InterestCoverage, "interest coverage")
}

func TestComputeRatios_ZeroDenominators(t *testing.T) {
	h := newHierarchy(t)
	report := ledger.ComputeRatios(h, ledger.Balances{}, ledger.Balances{}, ledger.Classification{}, date("2024-06-30"))

	for name, v := range map[string]decimal.Decimal{
		"current":           report.Liquidity.CurrentRatio,
		"quick":             report.Liquidity.QuickRatio,
		"net margin":        report.Profitability.NetMargin,
		"roe":               report.Profitability.ReturnOnEquity,
		"inventory":         report.Efficiency.InventoryTurnover,
		"debt to equity":    report.Leverage.DebtToEquity,
		"interest coverage": report.Leverage.InterestCoverage,
	} {
		assert.True(t, v.IsZero(), name)
	}
}

func TestClassification_InheritsFromAncestors(t *testing.T) {
	h := newHierarchy(t)
	c := ledger.Classification{Accounts: map[string][]ledger.Category{"1100": {ledger.Cash}}}

	assert.True(t, c.Has(h, "petty", ledger.Cash))
	assert.False(t, c.Has(h, "ar", ledger.Cash))
	assert.Equal(t, domain.NewMoney(700), c.Sum(h, ledger.Balances{"cash": 500, "petty": 200, "ar": 900}, ledger.Cash))
	assert.Equal(t, date("2024-01-01"), ledger.YearStart(date("2024-06-30")))
}
