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
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/google/uuid"
)

type journalService struct {
	BaseService
	accounts  portsrepo.AccountRegistry
	periods   portsrepo.PeriodRegistry
	entries   portsrepo.EntryStore
	publisher portssvc.EntryEventPublisher
}

// JournalServiceOption is a functional option for configuring the journal service
type JournalServiceOption func(*journalService)

// WithJournalEventPublisher announces committed entries.
func WithJournalEventPublisher(publisher portssvc.EntryEventPublisher) JournalServiceOption {
	return func(s *journalService) {
		s.publisher = publisher
	}
}

// WithJournalClock overrides the clock used for audit fields.
func WithJournalClock(clock func() time.Time) JournalServiceOption {
	return func(s *journalService) {
		s.clock = clock
	}
}

// NewJournalService creates a new journal service with the provided options
func NewJournalService(accounts portsrepo.AccountRegistry, periods portsrepo.PeriodRegistry, entries portsrepo.EntryStore, options ...JournalServiceOption) portssvc.JournalSvcFacade {
	svc := &journalService{accounts: accounts, periods: periods, entries: entries}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// parseLines converts request lines into journal lines, reporting the first bad amount.
func parseLines(reqLines []dto.CreateEntryLineRequest) ([]domain.JournalEntryLine, error) {
	lines := make([]domain.JournalEntryLine, len(reqLines))
	for i, rl := range reqLines {
		line := domain.JournalEntryLine{
			LineID:      uuid.NewString(),
			LineNumber:  i + 1,
			AccountID:   strings.TrimSpace(rl.AccountID),
			Description: rl.Description,
		}
		var err error
		if strings.TrimSpace(rl.Debit) != "" {
			if line.DebitAmount, err = domain.ParseMoney(rl.Debit); err != nil {
				return nil, fmt.Errorf("lines[%d].debit: %w", i, err)
			}
		}
		if strings.TrimSpace(rl.Credit) != "" {
			if line.CreditAmount, err = domain.ParseMoney(rl.Credit); err != nil {
				return nil, fmt.Errorf("lines[%d].credit: %w", i, err)
			}
		}
		lines[i] = line
	}
	return lines, nil
}

// CreateEntry validates and records a journal entry. Balance is checked before any
// lookup so an unbalanced request is rejected outright.
func (s *journalService) CreateEntry(ctx context.Context, organizationID string, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, error) {
	entryDate, err := dto.ParseDate("entryDate", req.EntryDate)
	if err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = domain.Draft
	}
	if status != domain.Draft && status != domain.Approved {
		return nil, apperrors.NewValidationError("status", string(status), "new entries must be DRAFT or APPROVED")
	}

	lines, err := parseLines(req.Lines)
	if err != nil {
		return nil, err
	}
	if err := accounting.ValidateEntryBalance(lines); err != nil {
		s.LogInfo(ctx, "Rejected journal entry", slog.String("organization_id", organizationID), slog.String("error", err.Error()))
		return nil, err
	}

	checked := make(map[string]bool)
	for _, line := range lines {
		if checked[line.AccountID] {
			continue
		}
		acc, err := s.accounts.FindAccountByID(ctx, line.AccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidationError("accountID", line.AccountID, "account does not exist")
			}
			return nil, fmt.Errorf("failed to load account %s: %w", line.AccountID, err)
		}
		if acc.OrganizationID != organizationID {
			return nil, apperrors.NewValidationError("accountID", line.AccountID, "account belongs to another organization")
		}
		if !acc.IsActive {
			return nil, apperrors.NewValidationError("accountID", line.AccountID, "account is inactive")
		}
		checked[line.AccountID] = true
	}

	period, err := s.periods.FindPeriodForDate(ctx, organizationID, entryDate)
	if err != nil {
		return nil, fmt.Errorf("failed to find accounting period: %w", err)
	}
	if period == nil {
		return nil, apperrors.NewValidationError("entryDate", req.EntryDate, "no accounting period contains this date")
	}

	entryID := uuid.NewString()
	for i := range lines {
		lines[i].EntryID = entryID
	}
	draft := domain.JournalEntry{
		EntryID:        entryID,
		OrganizationID: organizationID,
		PeriodID:       period.PeriodID,
		EntryDate:      entryDate,
		Description:    req.Description,
		Status:         status,
		Lines:          lines,
		AuditFields:    domain.NewAuditFields(userID, s.Now()),
	}

	committed, err := commitNumbered(ctx, s.entries, organizationID, []domain.JournalEntry{draft})
	if err != nil {
		s.LogError(ctx, err, "Failed to commit journal entry", slog.String("entry_id", entryID))
		return nil, err
	}
	entry := committed[0]

	s.publish(ctx, organizationID, committed)
	s.LogInfo(ctx, "Journal entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("status", string(entry.Status)))
	return &entry, nil
}

func (s *journalService) publish(ctx context.Context, organizationID string, entries []domain.JournalEntry) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishEntriesCommitted(ctx, organizationID, entries); err != nil {
		s.LogError(ctx, err, "Failed to publish committed entries", slog.String("organization_id", organizationID))
	}
}

// GetEntryByID retrieves an entry of the organization.
func (s *journalService) GetEntryByID(ctx context.Context, organizationID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.entries.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	if entry.OrganizationID != organizationID {
		return nil, apperrors.NewNotFoundError("journalEntry", entryID)
	}
	return entry, nil
}

// ListEntries retrieves the entries of an organization in any status.
func (s *journalService) ListEntries(ctx context.Context, organizationID string, filter domain.DateFilter) ([]domain.JournalEntry, error) {
	entries, err := s.entries.ListEntries(ctx, organizationID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	if entries == nil {
		return []domain.JournalEntry{}, nil
	}
	return entries, nil
}

// transition moves an entry to status to when its current status is one of from.
func (s *journalService) transition(ctx context.Context, organizationID, entryID, userID string, to domain.JournalStatus, from ...domain.JournalStatus) (*domain.JournalEntry, error) {
	entry, err := s.GetEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, f := range from {
		if entry.Status == f {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, &apperrors.StateError{
			Resource: "journalEntry",
			ID:       entryID,
			State:    string(entry.Status),
			Message:  fmt.Sprintf("cannot move to %s", to),
		}
	}

	now := s.Now()
	if err := s.entries.UpdateEntryStatus(ctx, entryID, entry.Status, to, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to update entry status", slog.String("entry_id", entryID), slog.String("to", string(to)))
		return nil, err
	}
	s.LogInfo(ctx, "Journal entry status changed",
		slog.String("entry_id", entryID),
		slog.String("from", string(entry.Status)),
		slog.String("to", string(to)))

	entry.Status = to
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID
	return entry, nil
}

// ApproveEntry moves a DRAFT entry to APPROVED.
func (s *journalService) ApproveEntry(ctx context.Context, organizationID, entryID, userID string) (*domain.JournalEntry, error) {
	return s.transition(ctx, organizationID, entryID, userID, domain.Approved, domain.Draft)
}

// LockEntry moves an APPROVED entry to LOCKED.
func (s *journalService) LockEntry(ctx context.Context, organizationID, entryID, userID string) (*domain.JournalEntry, error) {
	return s.transition(ctx, organizationID, entryID, userID, domain.Locked, domain.Approved)
}

// CancelEntry moves a DRAFT or APPROVED entry to CANCELLED.
func (s *journalService) CancelEntry(ctx context.Context, organizationID, entryID, userID string) (*domain.JournalEntry, error) {
	return s.transition(ctx, organizationID, entryID, userID, domain.Cancelled, domain.Draft, domain.Approved)
}
