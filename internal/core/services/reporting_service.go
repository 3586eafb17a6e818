package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/core/ledger"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"golang.org/x/sync/errgroup"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	accounts         portsrepo.AccountRegistry
	entries          portsrepo.EntryReader
	classification   ledger.Classification
	cashAccountNames []string
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithClassification sets the default classification used by ratios and cash flow.
func WithClassification(c ledger.Classification) ReportingServiceOption {
	return func(s *reportingService) {
		s.classification = c
	}
}

// WithCashAccountNames designates the cash accounts by name. Their descendants count as cash too.
func WithCashAccountNames(names ...string) ReportingServiceOption {
	return func(s *reportingService) {
		s.cashAccountNames = append(s.cashAccountNames, names...)
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(accounts portsrepo.AccountRegistry, entries portsrepo.EntryReader, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		accounts: accounts,
		entries:  entries,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// load fetches the chart of accounts and the posted entries matching filter concurrently.
func (s *reportingService) load(ctx context.Context, organizationID string, filter domain.DateFilter) (*ledger.Hierarchy, []domain.JournalEntry, error) {
	var (
		h       *ledger.Hierarchy
		entries []domain.JournalEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		accounts, err := s.accounts.ListAccounts(gctx, organizationID)
		if err != nil {
			return fmt.Errorf("failed to list accounts: %w", err)
		}
		h, err = ledger.NewHierarchy(accounts)
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = s.entries.ListApprovedEntries(gctx, organizationID, filter)
		if err != nil {
			return fmt.Errorf("failed to list posted entries: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to load report data", slog.String("organization_id", organizationID))
		return nil, nil, err
	}
	return h, entries, nil
}

func checkRange(start, end time.Time) error {
	if domain.TruncateDate(start).After(domain.TruncateDate(end)) {
		return apperrors.NewValidationError("from", start.Format(dto.DateLayout), "start date must not be after end date")
	}
	return nil
}

// ComputeBalanceSheet generates a balance sheet as of a specific date
func (s *reportingService) ComputeBalanceSheet(ctx context.Context, organizationID string, asOf time.Time, opts ledger.TreeOptions) (*domain.BalanceSheetReport, error) {
	filter := domain.AsOf(asOf)
	h, entries, err := s.load(ctx, organizationID, filter)
	if err != nil {
		return nil, err
	}
	balances, err := ledger.ComputeBalances(entries, h, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to compute balances: %w", err)
	}
	report := ledger.AssembleBalanceSheet(h, balances, asOf, opts)
	if !report.IsBalanced {
		s.LogError(ctx, apperrors.ErrUnbalanced, "Balance sheet does not balance",
			slog.String("organization_id", organizationID),
			slog.String("total_assets", report.TotalAssets.String()),
			slog.String("total_liabilities_and_equity", report.TotalLiabilitiesAndEquity.String()))
	}
	s.LogInfo(ctx, "Balance sheet generated",
		slog.String("organization_id", organizationID),
		slog.String("as_of", asOf.Format(dto.DateLayout)))
	return &report, nil
}

// ComputeIncomeStatement generates an income statement for [start, end]
func (s *reportingService) ComputeIncomeStatement(ctx context.Context, organizationID string, start, end time.Time, opts ledger.TreeOptions) (*domain.IncomeStatementReport, error) {
	if err := checkRange(start, end); err != nil {
		return nil, err
	}
	filter := domain.DateRange(start, end)
	h, entries, err := s.load(ctx, organizationID, filter)
	if err != nil {
		return nil, err
	}
	balances, err := ledger.ComputeBalances(entries, h, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to compute balances: %w", err)
	}
	report := ledger.AssembleIncomeStatement(h, balances, start, end, opts)
	s.LogInfo(ctx, "Income statement generated",
		slog.String("organization_id", organizationID),
		slog.String("from", start.Format(dto.DateLayout)),
		slog.String("to", end.Format(dto.DateLayout)))
	return &report, nil
}

// cashAccountIDs resolves the designated cash accounts: configured names plus any
// account classified as CASH.
func (s *reportingService) cashAccountIDs(h *ledger.Hierarchy) []string {
	seen := make(map[string]bool)
	var ids []string
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, name := range s.cashAccountNames {
		for _, acc := range h.ByName(name) {
			add(acc.AccountID)
		}
	}
	for _, acc := range h.Roots(domain.Asset) {
		for _, sub := range h.Subtree(acc.AccountID) {
			if s.classification.Has(h, sub.AccountID, ledger.Cash) {
				add(sub.AccountID)
			}
		}
	}
	return ids
}

// ComputeCashFlow generates a cash flow statement for [start, end]
func (s *reportingService) ComputeCashFlow(ctx context.Context, organizationID string, start, end time.Time, classifier ledger.CashFlowClassifier) (*domain.CashFlowReport, error) {
	if err := checkRange(start, end); err != nil {
		return nil, err
	}
	// Everything up to end: entries before start seed the beginning balance.
	h, entries, err := s.load(ctx, organizationID, domain.AsOf(end))
	if err != nil {
		return nil, err
	}
	cash := s.cashAccountIDs(h)
	if len(cash) == 0 {
		return nil, apperrors.NewValidationError("cashAccounts", "", "no cash accounts are configured for this organization")
	}
	if classifier == nil {
		classifier = s.classification.Classifier(h)
	}
	report, err := ledger.AssembleCashFlow(h, entries, cash, classifier, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble cash flow: %w", err)
	}
	s.LogInfo(ctx, "Cash flow generated",
		slog.String("organization_id", organizationID),
		slog.Int("cash_accounts", len(cash)),
		slog.Int("items", len(report.Items)))
	return &report, nil
}

// ComputeTrialBalance generates a trial balance as of a specific date
func (s *reportingService) ComputeTrialBalance(ctx context.Context, organizationID string, asOf time.Time) (*domain.TrialBalanceReport, error) {
	filter := domain.AsOf(asOf)
	h, entries, err := s.load(ctx, organizationID, filter)
	if err != nil {
		return nil, err
	}
	balances, err := ledger.ComputeBalances(entries, h, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to compute balances: %w", err)
	}
	report, err := ledger.AssembleTrialBalance(h, balances, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble trial balance: %w", err)
	}
	s.LogInfo(ctx, "Trial balance generated",
		slog.String("organization_id", organizationID),
		slog.Int("row_count", len(report.Rows)),
		slog.Bool("balanced", report.IsBalanced))
	return &report, nil
}

// ComputeFinancialRatios derives ratios from as-of balances and a year-to-date income statement
func (s *reportingService) ComputeFinancialRatios(ctx context.Context, organizationID string, asOf time.Time, classification *ledger.Classification) (*domain.RatiosReport, error) {
	h, entries, err := s.load(ctx, organizationID, domain.AsOf(asOf))
	if err != nil {
		return nil, err
	}
	c := s.classification
	if classification != nil {
		c = *classification
	}

	var asOfBalances, ytdBalances ledger.Balances
	g := new(errgroup.Group)
	g.Go(func() error {
		var err error
		asOfBalances, err = ledger.ComputeBalances(entries, h, domain.AsOf(asOf))
		return err
	})
	g.Go(func() error {
		var err error
		ytdBalances, err = ledger.ComputeBalances(entries, h, domain.DateRange(ledger.YearStart(asOf), asOf))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to compute balances: %w", err)
	}

	report := ledger.ComputeRatios(h, asOfBalances, ytdBalances, c, asOf)
	s.LogInfo(ctx, "Financial ratios generated",
		slog.String("organization_id", organizationID),
		slog.String("as_of", asOf.Format(dto.DateLayout)))
	return &report, nil
}

// GenerateLedgerBook lists one account's posted lines over [start, end]
func (s *reportingService) GenerateLedgerBook(ctx context.Context, organizationID, accountCode string, start, end time.Time) (*domain.LedgerBook, error) {
	if err := checkRange(start, end); err != nil {
		return nil, err
	}
	h, entries, err := s.load(ctx, organizationID, domain.AsOf(end))
	if err != nil {
		return nil, err
	}
	acc, ok := h.ByCode(accountCode)
	if !ok {
		return nil, apperrors.NewNotFoundError("account", accountCode)
	}
	book, err := ledger.GenerateLedgerBook(h, entries, acc.AccountID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ledger book: %w", err)
	}
	s.LogInfo(ctx, "Ledger book generated",
		slog.String("organization_id", organizationID),
		slog.String("account_code", accountCode),
		slog.Int("entries", len(book.Entries)))
	return &book, nil
}
