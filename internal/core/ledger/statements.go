package ledger

import (
	"sort"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// section renders one account type as a statement section.
func section(h *Hierarchy, label string, t domain.AccountType, balances Balances, opts TreeOptions) domain.StatementSection {
	nodes, total := h.Tree(t, balances, opts)
	return domain.StatementSection{Label: label, Accounts: nodes, Total: total}
}

// AssembleBalanceSheet builds the balance sheet from as-of balances. Net income to
// date (revenue minus expenses) is rolled into equity as unclosed retained earnings.
func AssembleBalanceSheet(h *Hierarchy, balances Balances, asOf time.Time, opts TreeOptions) domain.BalanceSheetReport {
	report := domain.BalanceSheetReport{
		AsOf:        domain.TruncateDate(asOf),
		Assets:      section(h, "Assets", domain.Asset, balances, opts),
		Liabilities: section(h, "Liabilities", domain.Liability, balances, opts),
		Equity:      section(h, "Equity", domain.Equity, balances, opts),
	}

	_, revenue := h.Tree(domain.Revenue, balances, TreeOptions{})
	_, expenses := h.Tree(domain.Expense, balances, TreeOptions{})

	report.TotalAssets = report.Assets.Total
	report.TotalLiabilities = report.Liabilities.Total
	report.TotalEquity = report.Equity.Total
	report.NetIncome = revenue.Sub(expenses)
	report.AdjustedTotalEquity = report.TotalEquity.Add(report.NetIncome)
	report.TotalLiabilitiesAndEquity = report.TotalLiabilities.Add(report.AdjustedTotalEquity)
	report.IsBalanced = report.TotalAssets.ApproxEqual(report.TotalLiabilitiesAndEquity)
	return report
}

// AssembleIncomeStatement builds the income statement from range-scoped balances.
// Both sections are reported in their increase direction, so a normal revenue or
// expense balance is positive.
func AssembleIncomeStatement(h *Hierarchy, balances Balances, start, end time.Time, opts TreeOptions) domain.IncomeStatementReport {
	report := domain.IncomeStatementReport{
		StartDate: domain.TruncateDate(start),
		EndDate:   domain.TruncateDate(end),
		Revenue:   section(h, "Revenue", domain.Revenue, balances, opts),
		Expenses:  section(h, "Expenses", domain.Expense, balances, opts),
	}
	report.TotalRevenue = report.Revenue.Total
	report.TotalExpenses = report.Expenses.Total
	// No cost-of-goods separation at this layer.
	report.GrossProfit = report.TotalRevenue
	report.NetIncome = report.TotalRevenue.Sub(report.TotalExpenses)
	return report
}

// AssembleTrialBalance lists every account with a non-zero balance in the debit or
// credit column according to the side its net balance falls on. A balance for an
// account missing from h is an apperrors.NotFoundError.
func AssembleTrialBalance(h *Hierarchy, balances Balances, asOf time.Time) (domain.TrialBalanceReport, error) {
	report := domain.TrialBalanceReport{
		AsOf: domain.TruncateDate(asOf),
		Rows: make([]domain.TrialBalanceRow, 0, len(balances)),
	}

	for id, signed := range balances {
		if signed.IsZero() {
			continue
		}
		acc, ok := h.Account(id)
		if !ok {
			return domain.TrialBalanceReport{}, apperrors.NewNotFoundError("account", id)
		}
		row := domain.TrialBalanceRow{
			AccountID:   acc.AccountID,
			Code:        acc.Code,
			AccountName: acc.Name,
			AccountType: acc.AccountType,
		}
		// Convert back to a net-debit figure before splitting into columns.
		netDebit := signed
		if !acc.AccountType.IsDebitNormal() {
			netDebit = signed.Neg()
		}
		if netDebit.IsPositive() {
			row.Debit = netDebit
		} else {
			row.Credit = netDebit.Neg()
		}
		report.TotalDebit = report.TotalDebit.Add(row.Debit)
		report.TotalCredit = report.TotalCredit.Add(row.Credit)
		report.Rows = append(report.Rows, row)
	}

	sort.Slice(report.Rows, func(i, j int) bool {
		if c := CompareCodes(report.Rows[i].Code, report.Rows[j].Code); c != 0 {
			return c < 0
		}
		return report.Rows[i].AccountID < report.Rows[j].AccountID
	})
	report.IsBalanced = report.TotalDebit.ApproxEqual(report.TotalCredit)
	return report, nil
}
