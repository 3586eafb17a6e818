package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/core/ledger"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/repositories/memory"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	orgID  = "org-1"
	userID = "user-1"
)

var fixedNow = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// MockPublisher is a mock type for the EntryEventPublisher interface
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishEntriesCommitted(ctx context.Context, organizationID string, entries []domain.JournalEntry) error {
	args := m.Called(ctx, organizationID, entries)
	return args.Error(0)
}

var _ portssvc.EntryEventPublisher = (*MockPublisher)(nil)

// fixture wires every service over one in-memory store with a seeded chart of
// accounts and an active FY2024 period.
type fixture struct {
	t        *testing.T
	ctx      context.Context
	repos    portsrepo.RepositoryProvider
	accounts portssvc.AccountSvcFacade
	periods  portssvc.PeriodSvcFacade
	journal  portssvc.JournalSvcFacade
	imports  portssvc.ImportSvc
	ids      map[string]string // account code -> account ID
}

var chart = []dto.CreateAccountRequest{
	{Code: "1000", Name: "Cash", AccountType: domain.Asset},
	{Code: "1200", Name: "Receivables", AccountType: domain.Asset},
	{Code: "1500", Name: "Equipment", AccountType: domain.Asset},
	{Code: "2000", Name: "Payables", AccountType: domain.Liability},
	{Code: "2500", Name: "Loan", AccountType: domain.Liability},
	{Code: "3000", Name: "Capital", AccountType: domain.Equity},
	{Code: "4000", Name: "Sales", AccountType: domain.Revenue},
	{Code: "5000", Name: "Rent", AccountType: domain.Expense},
}

func newFixture(t *testing.T, publisher portssvc.EntryEventPublisher) *fixture {
	t.Helper()
	repos := memory.NewRepositoryProvider(memory.NewStore())

	journalOpts := []services.JournalServiceOption{services.WithJournalClock(fixedClock)}
	importOpts := []services.ImportServiceOption{services.WithImportClock(fixedClock)}
	if publisher != nil {
		journalOpts = append(journalOpts, services.WithJournalEventPublisher(publisher))
		importOpts = append(importOpts, services.WithImportEventPublisher(publisher))
	}

	f := &fixture{
		t:        t,
		ctx:      context.Background(),
		repos:    repos,
		accounts: services.NewAccountService(repos.AccountRepo, services.WithAccountClock(fixedClock)),
		periods:  services.NewPeriodService(repos.PeriodRepo, repos.EntryRepo, services.WithPeriodClock(fixedClock)),
		journal:  services.NewJournalService(repos.AccountRepo, repos.PeriodRepo, repos.EntryRepo, journalOpts...),
		imports:  services.NewImportService(repos.AccountRepo, repos.PeriodRepo, repos.EntryRepo, importOpts...),
		ids:      make(map[string]string),
	}

	for _, req := range chart {
		acc, err := f.accounts.CreateAccount(f.ctx, orgID, req, userID)
		require.NoError(t, err)
		f.ids[req.Code] = acc.AccountID
	}
	_, err := f.periods.CreatePeriod(f.ctx, orgID, dto.CreatePeriodRequest{
		Name: "FY2024", StartDate: "2024-01-01", EndDate: "2024-12-31", IsActive: true,
	}, userID)
	require.NoError(t, err)
	return f
}

func (f *fixture) reporting(opts ...services.ReportingServiceOption) portssvc.ReportingService {
	return services.NewReportingService(f.repos.AccountRepo, f.repos.EntryRepo, opts...)
}

func entryRequest(date string, status domain.JournalStatus, debitAccountID, creditAccountID, amount string) dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		EntryDate: date,
		Status:    status,
		Lines: []dto.CreateEntryLineRequest{
			{AccountID: debitAccountID, Debit: amount},
			{AccountID: creditAccountID, Credit: amount},
		},
	}
}

// post records a two-line entry between the accounts with the given codes.
func (f *fixture) post(date, debitCode, creditCode, amount string, status domain.JournalStatus) *domain.JournalEntry {
	f.t.Helper()
	entry, err := f.journal.CreateEntry(f.ctx, orgID, entryRequest(date, status, f.ids[debitCode], f.ids[creditCode], amount), userID)
	require.NoError(f.t, err)
	return entry
}

func date(s string) time.Time {
	d, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

var testClassification = ledger.Classification{
	Ranges: map[ledger.Category][]ledger.CodeRange{
		ledger.CurrentAsset:     {{From: "1000", To: "1499"}},
		ledger.CurrentLiability: {{From: "2000", To: "2499"}},
	},
	Accounts: map[string][]ledger.Category{
		"1000": {ledger.Cash},
		"1200": {ledger.Receivable},
	},
	CashFlow: map[string]domain.CashFlowActivity{
		"1500": domain.Investing,
		"2500": domain.Financing,
		"3000": domain.Financing,
	},
}
