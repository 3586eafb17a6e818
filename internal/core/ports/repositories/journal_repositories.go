package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// BatchBuilder constructs the entries to commit once the current maximum entry
// number of every requested prefix is known. Absent prefixes map to "".
type BatchBuilder func(maxNumbers map[string]string) ([]domain.JournalEntry, error)

// EntryReader defines read operations for journal entries.
type EntryReader interface {
	// MaxEntryNumberWithPrefix returns the highest entry number of the organization
	// starting with prefix. The boolean is false when there is none.
	MaxEntryNumberWithPrefix(ctx context.Context, organizationID, prefix string) (string, bool, error)

	// ListApprovedEntries returns the posted entries (APPROVED or LOCKED) whose date
	// matches filter, with their lines.
	ListApprovedEntries(ctx context.Context, organizationID string, filter domain.DateFilter) ([]domain.JournalEntry, error)

	// ListEntries returns every entry of the organization matching filter regardless of status.
	ListEntries(ctx context.Context, organizationID string, filter domain.DateFilter) ([]domain.JournalEntry, error)

	// FindEntryByID retrieves an entry with its lines or an apperrors.NotFoundError.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// CountEntriesForPeriod counts entries referencing the period.
	CountEntriesForPeriod(ctx context.Context, periodID string) (int, error)

	// CountEntriesOutside counts entries of the period dated before start or after end.
	CountEntriesOutside(ctx context.Context, periodID string, start, end time.Time) (int, error)
}

// EntryWriter defines write operations for journal entries.
type EntryWriter interface {
	// InsertEntries persists a batch of fully numbered entries atomically.
	InsertEntries(ctx context.Context, entries []domain.JournalEntry) error

	// ReserveAndCommit serializes numbering for (organizationID, prefix) pairs, looks up
	// the current maxima, calls build and inserts its result, all in one unit of work.
	// Nothing is written when build or the insert fails.
	ReserveAndCommit(ctx context.Context, organizationID string, prefixes []string, build BatchBuilder) ([]domain.JournalEntry, error)

	// UpdateEntryStatus moves an entry from one status to another. It fails with an
	// apperrors.StateError when the stored status is no longer from.
	UpdateEntryStatus(ctx context.Context, entryID string, from, to domain.JournalStatus, userID string, now time.Time) error
}

// EntryStore combines all journal-entry repository interfaces
type EntryStore interface {
	EntryReader
	EntryWriter
}
