package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	// GetEntryByID retrieves an entry with its lines.
	GetEntryByID(ctx context.Context, organizationID, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves the entries of an organization in any status.
	ListEntries(ctx context.Context, organizationID string, filter domain.DateFilter) ([]domain.JournalEntry, error)
}

// JournalWriterSvc defines write operations for journal entries
type JournalWriterSvc interface {
	// CreateEntry validates, numbers and persists a journal entry. Unequal debit and
	// credit totals are an apperrors.BalanceError.
	CreateEntry(ctx context.Context, organizationID string, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, error)

	// ApproveEntry moves a DRAFT entry to APPROVED, making it count in statements.
	ApproveEntry(ctx context.Context, organizationID, entryID, userID string) (*domain.JournalEntry, error)

	// LockEntry moves an APPROVED entry to LOCKED. Locked entries are immutable.
	LockEntry(ctx context.Context, organizationID, entryID, userID string) (*domain.JournalEntry, error)

	// CancelEntry moves a DRAFT or APPROVED entry to CANCELLED.
	CancelEntry(ctx context.Context, organizationID, entryID, userID string) (*domain.JournalEntry, error)
}

// ImportSvc turns raw records into journal entries.
type ImportSvc interface {
	// ImportJournalEntries validates every record and commits all of them or none.
	// On failure the result lists every record error and the returned error is an
	// apperrors.ImportError.
	ImportJournalEntries(ctx context.Context, organizationID, userID string, records []domain.RawRecord, opts domain.ImportOptions) (*domain.ImportResult, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
