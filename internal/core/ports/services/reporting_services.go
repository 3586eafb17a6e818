package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/core/ledger"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// ComputeBalanceSheet generates a balance sheet as of a specific date.
	ComputeBalanceSheet(ctx context.Context, organizationID string, asOf time.Time, opts ledger.TreeOptions) (*domain.BalanceSheetReport, error)

	// ComputeIncomeStatement generates an income statement for [start, end].
	ComputeIncomeStatement(ctx context.Context, organizationID string, start, end time.Time, opts ledger.TreeOptions) (*domain.IncomeStatementReport, error)

	// ComputeCashFlow generates a cash flow statement for [start, end]. A nil
	// classifier falls back to the configured classification.
	ComputeCashFlow(ctx context.Context, organizationID string, start, end time.Time, classifier ledger.CashFlowClassifier) (*domain.CashFlowReport, error)

	// ComputeTrialBalance generates a trial balance as of a specific date.
	ComputeTrialBalance(ctx context.Context, organizationID string, asOf time.Time) (*domain.TrialBalanceReport, error)

	// ComputeFinancialRatios derives ratios as of a date using a year-to-date income
	// statement. A nil classification falls back to the configured one.
	ComputeFinancialRatios(ctx context.Context, organizationID string, asOf time.Time, classification *ledger.Classification) (*domain.RatiosReport, error)

	// GenerateLedgerBook lists one account's posted lines over [start, end].
	GenerateLedgerBook(ctx context.Context, organizationID, accountCode string, start, end time.Time) (*domain.LedgerBook, error)
}
