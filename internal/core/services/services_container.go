package services

import (
	"github.com/SscSPs/ledger_engine/internal/core/ledger"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// publisher may be nil when no event sink is configured.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, classification ledger.Classification, publisher portssvc.EntryEventPublisher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Period = NewPeriodService(repos.PeriodRepo, repos.EntryRepo)

	journalOpts := []JournalServiceOption{}
	importOpts := []ImportServiceOption{}
	if publisher != nil {
		journalOpts = append(journalOpts, WithJournalEventPublisher(publisher))
		importOpts = append(importOpts, WithImportEventPublisher(publisher))
	}
	container.Journal = NewJournalService(repos.AccountRepo, repos.PeriodRepo, repos.EntryRepo, journalOpts...)
	container.Import = NewImportService(repos.AccountRepo, repos.PeriodRepo, repos.EntryRepo, importOpts...)

	container.Reporting = NewReportingService(
		repos.AccountRepo,
		repos.EntryRepo,
		WithClassification(classification),
		WithCashAccountNames(cfg.CashAccountNames...),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade = (*accountService)(nil)
	_ portssvc.PeriodSvcFacade  = (*periodService)(nil)
	_ portssvc.JournalSvcFacade = (*journalService)(nil)
	_ portssvc.ImportSvc        = (*importService)(nil)
	_ portssvc.ReportingService = (*reportingService)(nil)
)
