package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/google/uuid"
)

type importService struct {
	BaseService
	accounts  portsrepo.AccountRegistry
	periods   portsrepo.PeriodRegistry
	entries   portsrepo.EntryWriter
	publisher portssvc.EntryEventPublisher
}

// ImportServiceOption is a functional option for configuring the import service
type ImportServiceOption func(*importService)

// WithImportEventPublisher announces committed batches.
func WithImportEventPublisher(publisher portssvc.EntryEventPublisher) ImportServiceOption {
	return func(s *importService) {
		s.publisher = publisher
	}
}

// WithImportClock overrides the clock used for audit fields.
func WithImportClock(clock func() time.Time) ImportServiceOption {
	return func(s *importService) {
		s.clock = clock
	}
}

// NewImportService creates a new import service with the provided options
func NewImportService(accounts portsrepo.AccountRegistry, periods portsrepo.PeriodRegistry, entries portsrepo.EntryWriter, options ...ImportServiceOption) portssvc.ImportSvc {
	svc := &importService{accounts: accounts, periods: periods, entries: entries}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ImportSvc = (*importService)(nil)

// importResolver memoizes registry lookups for one batch.
type importResolver struct {
	ctx            context.Context
	organizationID string
	accounts       portsrepo.AccountRegistry
	periods        portsrepo.PeriodRegistry
	accountCache   map[string]accountLookup
	periodCache    map[time.Time]*domain.AccountingPeriod
}

type accountLookup struct {
	account *domain.Account
	reason  string
}

// account returns a nil account and the reason without error when the reference
// does not resolve to exactly one account.
func (r *importResolver) account(ref string) (*domain.Account, string, error) {
	key := strings.ToLower(strings.TrimSpace(ref))
	if hit, ok := r.accountCache[key]; ok {
		return hit.account, hit.reason, nil
	}
	acc, err := r.accounts.ResolveAccount(r.ctx, r.organizationID, strings.TrimSpace(ref))
	var hit accountLookup
	switch {
	case err == nil:
		hit.account = acc
	case errors.Is(err, apperrors.ErrNotFound):
		hit.reason = "account not found"
	case errors.Is(err, domain.ErrAmbiguousAccount):
		hit.reason = "ambiguous account reference"
		var ve *apperrors.ValidationError
		if errors.As(err, &ve) {
			hit.reason += ": " + ve.Message
		}
	default:
		return nil, "", err
	}
	r.accountCache[key] = hit
	return hit.account, hit.reason, nil
}

func (r *importResolver) period(date time.Time) (*domain.AccountingPeriod, error) {
	if p, ok := r.periodCache[date]; ok {
		return p, nil
	}
	p, err := r.periods.FindPeriodForDate(r.ctx, r.organizationID, date)
	if err != nil {
		return nil, err
	}
	r.periodCache[date] = p
	return p, nil
}

// ImportJournalEntries validates every record, collecting all failures, and commits
// the whole batch only when none failed.
func (s *importService) ImportJournalEntries(ctx context.Context, organizationID, userID string, records []domain.RawRecord, opts domain.ImportOptions) (*domain.ImportResult, error) {
	status := opts.Status
	if status == "" {
		status = domain.Draft
	}
	if status != domain.Draft && status != domain.Approved {
		return nil, apperrors.NewValidationError("status", string(status), "imported entries must be DRAFT or APPROVED")
	}
	if len(records) == 0 {
		return nil, apperrors.NewValidationError("records", "", "at least one record is required")
	}

	resolver := &importResolver{
		ctx:            ctx,
		organizationID: organizationID,
		accounts:       s.accounts,
		periods:        s.periods,
		accountCache:   make(map[string]accountLookup),
		periodCache:    make(map[time.Time]*domain.AccountingPeriod),
	}

	now := s.Now()
	var recordErrors []domain.RecordError
	drafts := make([]domain.JournalEntry, 0, len(records))
	for i, rec := range records {
		draft, errs, err := s.buildEntry(resolver, i, rec, status, userID, now)
		if err != nil {
			s.LogError(ctx, err, "Import aborted by lookup failure", slog.Int("record", i))
			return nil, fmt.Errorf("import record %d: %w", i, err)
		}
		if len(errs) > 0 {
			recordErrors = append(recordErrors, errs...)
			continue
		}
		draft.OrganizationID = organizationID
		drafts = append(drafts, draft)
	}

	if len(recordErrors) > 0 {
		importErr := &apperrors.ImportError{Count: len(recordErrors)}
		s.LogInfo(ctx, "Import rejected",
			slog.String("organization_id", organizationID),
			slog.Int("records", len(records)),
			slog.Int("errors", len(recordErrors)))
		return &domain.ImportResult{Committed: false, Errors: recordErrors}, importErr
	}

	committed, err := commitNumbered(ctx, s.entries, organizationID, drafts)
	if err != nil {
		s.LogError(ctx, err, "Failed to commit import batch", slog.String("organization_id", organizationID))
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishEntriesCommitted(ctx, organizationID, committed); err != nil {
			s.LogError(ctx, err, "Failed to publish imported entries", slog.String("organization_id", organizationID))
		}
	}
	s.LogInfo(ctx, "Import committed",
		slog.String("organization_id", organizationID),
		slog.Int("entries", len(committed)))
	return &domain.ImportResult{Committed: true, Entries: committed}, nil
}

// buildEntry validates one record. Record problems are returned as RecordErrors;
// the error return is reserved for lookup failures that abort the whole import.
func (s *importService) buildEntry(r *importResolver, index int, rec domain.RawRecord, status domain.JournalStatus, userID string, now time.Time) (domain.JournalEntry, []domain.RecordError, error) {
	var errs []domain.RecordError
	fail := func(field, code, value, message string) {
		errs = append(errs, domain.RecordError{Index: index, Field: field, Code: code, Message: message, Value: value})
	}

	entryDate, dateErr := dto.ParseDate("date", rec.Date)
	if dateErr != nil {
		fail("date", domain.CodeInvalidDate, rec.Date, "date must be formatted as YYYY-MM-DD")
	}

	debitAcc, debitReason, err := r.account(rec.DebitAccount)
	if err != nil {
		return domain.JournalEntry{}, nil, err
	}
	creditAcc, creditReason, err := r.account(rec.CreditAccount)
	if err != nil {
		return domain.JournalEntry{}, nil, err
	}
	switch {
	case debitAcc == nil:
		fail("debitAccount", domain.CodeInvalidAccount, rec.DebitAccount, debitReason)
	case !debitAcc.IsActive:
		fail("debitAccount", domain.CodeInvalidAccount, rec.DebitAccount, "account is inactive")
	}
	switch {
	case creditAcc == nil:
		fail("creditAccount", domain.CodeInvalidAccount, rec.CreditAccount, creditReason)
	case !creditAcc.IsActive:
		fail("creditAccount", domain.CodeInvalidAccount, rec.CreditAccount, "account is inactive")
	}
	if debitAcc != nil && creditAcc != nil && debitAcc.AccountID == creditAcc.AccountID {
		fail("creditAccount", domain.CodeInvalidAccount, rec.CreditAccount, "debit and credit accounts must differ")
	}

	amount, amountErr := domain.ParseMoney(rec.Amount)
	if amountErr != nil {
		var ve *apperrors.ValidationError
		msg := "amount is not a valid non-negative number"
		if errors.As(amountErr, &ve) {
			msg = ve.Message
		}
		fail("amount", domain.CodeInvalidAmount, rec.Amount, msg)
	} else if amount.IsZero() {
		fail("amount", domain.CodeInvalidAmount, rec.Amount, "amount must be positive")
	}

	var period *domain.AccountingPeriod
	if dateErr == nil {
		if period, err = r.period(entryDate); err != nil {
			return domain.JournalEntry{}, nil, err
		}
		if period == nil {
			fail("date", domain.CodeNoMatchingPeriod, rec.Date, "no accounting period contains this date")
		}
	}

	if len(errs) > 0 {
		return domain.JournalEntry{}, errs, nil
	}

	entryID := uuid.NewString()
	description := strings.TrimSpace(rec.Description)
	return domain.JournalEntry{
		EntryID:     entryID,
		PeriodID:    period.PeriodID,
		EntryDate:   entryDate,
		Description: description,
		Status:      status,
		Lines: []domain.JournalEntryLine{
			{LineID: uuid.NewString(), EntryID: entryID, LineNumber: 1, AccountID: debitAcc.AccountID, DebitAmount: amount, Description: description},
			{LineID: uuid.NewString(), EntryID: entryID, LineNumber: 2, AccountID: creditAcc.AccountID, CreditAmount: amount, Description: description},
		},
		AuditFields: domain.NewAuditFields(userID, now),
	}, nil, nil
}
