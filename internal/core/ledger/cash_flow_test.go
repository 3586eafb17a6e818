package ledger_test

import (
	"testing"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/core/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cashFlowEntries() []domain.JournalEntry {
	return []domain.JournalEntry{
		entry("2023120001", "2023-12-20", domain.Approved, debit("cash", 100000), credit("capital", 100000)),
		entry("2024010001", "2024-01-05", domain.Approved, debit("cash", 30000), credit("sales", 30000)),
		entry("2024010002", "2024-01-10", domain.Approved, debit("equipment", 20000), credit("petty", 20000)),
		entry("2024010003", "2024-01-15", domain.Approved, debit("cash", 50000), credit("loan", 50000)),
		entry("2024010004", "2024-01-20", domain.Locked, debit("rent", 5000), credit("cash", 5000)),
		entry("2024010005", "2024-01-25", domain.Approved, debit("petty", 1000), credit("cash", 1000)),
		entry("2024010006", "2024-01-26", domain.Draft, debit("cash", 999), credit("sales", 999)),
		entry("2024020001", "2024-02-01", domain.Approved, debit("cash", 7000), credit("sales", 7000)),
	}
}

func TestAssembleCashFlow_WithClassification(t *testing.T) {
	h := newHierarchy(t)
	classification := ledger.Classification{
		CashFlow: map[string]domain.CashFlowActivity{
			"1500": domain.Investing,
			"2500": domain.Financing,
		},
	}

	report, err := ledger.AssembleCashFlow(h, cashFlowEntries(), []string{"cash"}, classification.Classifier(h), date("2024-01-01"), date("2024-01-31"))
	require.NoError(t, err)

	assert.Equal(t, domain.NewMoney(100000), report.BeginningCash)
	assert.Equal(t, domain.NewMoney(25000), report.Operating)
	assert.Equal(t, domain.NewMoney(-20000), report.Investing)
	assert.Equal(t, domain.NewMoney(50000), report.Financing)
	assert.Equal(t, domain.NewMoney(55000), report.NetCashFlow)
	assert.Equal(t, domain.NewMoney(155000), report.EndingCash)
	assert.Len(t, report.Items, 6)
	assert.Equal(t, "2024010001", report.Items[0].EntryNumber)
	assert.Equal(t, domain.Investing, report.Items[1].Activity)
	assert.Equal(t, "petty", report.Items[1].AccountID)
}

func TestAssembleCashFlow_DefaultsToOperating(t *testing.T) {
	h := newHierarchy(t)
	report, err := ledger.AssembleCashFlow(h, cashFlowEntries(), []string{"cash"}, nil, date("2024-01-01"), date("2024-01-31"))
	require.NoError(t, err)

	assert.Equal(t, domain.NewMoney(55000), report.Operating)
	assert.True(t, report.Investing.IsZero())
	assert.True(t, report.Financing.IsZero())
	assert.Equal(t, report.BeginningCash.Add(report.NetCashFlow), report.EndingCash)
}

func TestAssembleCashFlow_NoCashAccounts(t *testing.T) {
	h := newHierarchy(t)
	report, err := ledger.AssembleCashFlow(h, cashFlowEntries(), nil, nil, date("2024-01-01"), date("2024-01-31"))
	require.NoError(t, err)
	assert.True(t, report.EndingCash.IsZero())
	assert.Empty(t, report.Items)
}
