package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	entryColumns = `entry_id, organization_id, period_id, entry_number, entry_date, description, status, created_at, created_by, last_updated_at, last_updated_by`
	lineColumns  = `line_id, entry_id, line_number, account_id, debit_amount, credit_amount, description`
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and their lines.
func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.EntryStore
var _ portsrepo.EntryStore = (*PgxJournalRepository)(nil)

// filterClause appends the date filter to a WHERE clause whose first placeholder is $1.
func filterClause(filter domain.DateFilter, args []any) (string, []any) {
	var b strings.Builder
	if !filter.From.IsZero() {
		args = append(args, domain.TruncateDate(filter.From))
		fmt.Fprintf(&b, " AND entry_date >= $%d", len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, domain.TruncateDate(filter.To))
		op := "<="
		if filter.ExcludeTo {
			op = "<"
		}
		fmt.Fprintf(&b, " AND entry_date %s $%d", op, len(args))
	}
	return b.String(), args
}

// loadEntries runs an entry query and attaches the lines of every returned entry.
func (r *PgxJournalRepository) loadEntries(ctx context.Context, q querier, query string, args ...any) ([]domain.JournalEntry, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	entries, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		return nil, fmt.Errorf("failed to scan journal entries: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.EntryID
	}
	rows, err = q.Query(ctx, `SELECT `+lineColumns+` FROM journal_entry_lines WHERE entry_id = ANY($1) ORDER BY entry_id, line_number;`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entry lines: %w", err)
	}
	lines, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalEntryLine])
	if err != nil {
		return nil, fmt.Errorf("failed to scan journal entry lines: %w", err)
	}
	byEntry := make(map[string][]models.JournalEntryLine, len(entries))
	for _, l := range lines {
		byEntry[l.EntryID] = append(byEntry[l.EntryID], l)
	}

	out := make([]domain.JournalEntry, len(entries))
	for i, e := range entries {
		out[i] = mapping.ToDomainJournalEntry(e, byEntry[e.EntryID])
	}
	return out, nil
}

func (r *PgxJournalRepository) listEntries(ctx context.Context, organizationID string, filter domain.DateFilter, postedOnly bool) ([]domain.JournalEntry, error) {
	where, args := filterClause(filter, []any{organizationID})
	if postedOnly {
		args = append(args, []string{string(domain.Approved), string(domain.Locked)})
		where += fmt.Sprintf(" AND status = ANY($%d)", len(args))
	}
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE organization_id = $1` + where + ` ORDER BY entry_date, entry_number;`
	return r.loadEntries(ctx, r.Pool, query, args...)
}

// ListApprovedEntries returns APPROVED and LOCKED entries matching filter.
func (r *PgxJournalRepository) ListApprovedEntries(ctx context.Context, organizationID string, filter domain.DateFilter) ([]domain.JournalEntry, error) {
	return r.listEntries(ctx, organizationID, filter, true)
}

// ListEntries returns entries in any status matching filter.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, organizationID string, filter domain.DateFilter) ([]domain.JournalEntry, error) {
	return r.listEntries(ctx, organizationID, filter, false)
}

// FindEntryByID retrieves an entry with its lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entries, err := r.loadEntries(ctx, r.Pool, `SELECT `+entryColumns+` FROM journal_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, apperrors.NewNotFoundError("journalEntry", entryID)
	}
	return &entries[0], nil
}

func (r *PgxJournalRepository) CountEntriesForPeriod(ctx context.Context, periodID string) (int, error) {
	var n int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM journal_entries WHERE period_id = $1;`, periodID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count entries for period %s: %w", periodID, err)
	}
	return n, nil
}

func (r *PgxJournalRepository) CountEntriesOutside(ctx context.Context, periodID string, start, end time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM journal_entries
		WHERE period_id = $1 AND (entry_date < $2 OR entry_date > $3);
	`
	var n int
	if err := r.Pool.QueryRow(ctx, query, periodID, domain.TruncateDate(start), domain.TruncateDate(end)).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count entries outside period %s: %w", periodID, err)
	}
	return n, nil
}

func maxEntryNumber(ctx context.Context, q querier, organizationID, prefix string) (string, error) {
	var highest string
	err := q.QueryRow(ctx, `
		SELECT COALESCE(MAX(entry_number), '')
		FROM journal_entries
		WHERE organization_id = $1 AND entry_number LIKE $2 || '%';
	`, organizationID, prefix).Scan(&highest)
	if err != nil {
		return "", fmt.Errorf("failed to read max entry number for %s: %w", prefix, err)
	}
	return highest, nil
}

func (r *PgxJournalRepository) MaxEntryNumberWithPrefix(ctx context.Context, organizationID, prefix string) (string, bool, error) {
	highest, err := maxEntryNumber(ctx, r.Pool, organizationID, prefix)
	if err != nil {
		return "", false, err
	}
	return highest, highest != "", nil
}

// insertEntries queues every entry and line in one batch.
func insertEntries(ctx context.Context, tx pgx.Tx, entries []domain.JournalEntry) error {
	batch := &pgx.Batch{}
	entryQuery := `INSERT INTO journal_entries (` + entryColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`
	lineQuery := `INSERT INTO journal_entry_lines (` + lineColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7);`
	for _, e := range entries {
		m := mapping.ToModelJournalEntry(e)
		batch.Queue(entryQuery,
			m.EntryID, m.OrganizationID, m.PeriodID, m.EntryNumber, m.EntryDate, m.Description, m.Status,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		for _, l := range e.Lines {
			ml := mapping.ToModelJournalEntryLine(l)
			batch.Queue(lineQuery, ml.LineID, ml.EntryID, ml.LineNumber, ml.AccountID, ml.DebitAmount, ml.CreditAmount, ml.Description)
		}
	}

	// Close the batch results to surface the first failing command
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		mapped := mapPgError(err, "journalEntry", "")
		if errors.Is(mapped, apperrors.ErrDuplicate) {
			return &apperrors.ConflictError{Resource: "journalEntry", Message: "entry number already taken"}
		}
		return fmt.Errorf("failed to insert journal entries: %w", mapped)
	}
	return nil
}

// InsertEntries persists already numbered entries atomically.
func (r *PgxJournalRepository) InsertEntries(ctx context.Context, entries []domain.JournalEntry) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		return insertEntries(ctx, tx, entries)
	})
}

// ReserveAndCommit takes a transaction-scoped advisory lock per (organization, month)
// in sorted order, reads the current maxima, builds the batch and inserts it before
// the locks are released at commit.
func (r *PgxJournalRepository) ReserveAndCommit(ctx context.Context, organizationID string, prefixes []string, build portsrepo.BatchBuilder) ([]domain.JournalEntry, error) {
	var committed []domain.JournalEntry
	err := r.WithTx(ctx, func(tx pgx.Tx) error {
		maxNumbers := make(map[string]string, len(prefixes))
		for _, p := range prefixes {
			if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1));`, organizationID+":"+p); err != nil {
				return fmt.Errorf("failed to lock entry numbering for %s: %w", p, err)
			}
			highest, err := maxEntryNumber(ctx, tx, organizationID, p)
			if err != nil {
				return err
			}
			maxNumbers[p] = highest
		}

		entries, err := build(maxNumbers)
		if err != nil {
			return err
		}
		if err := insertEntries(ctx, tx, entries); err != nil {
			return err
		}
		committed = entries
		return nil
	})
	if err != nil {
		return nil, err
	}
	return committed, nil
}

// UpdateEntryStatus moves an entry between statuses with an optimistic check on from.
func (r *PgxJournalRepository) UpdateEntryStatus(ctx context.Context, entryID string, from, to domain.JournalStatus, userID string, now time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE journal_entries
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $1 AND status = $2;
	`, entryID, string(from), string(to), now, userID)
	if err != nil {
		return fmt.Errorf("failed to update status of entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var current string
	err = r.Pool.QueryRow(ctx, `SELECT status FROM journal_entries WHERE entry_id = $1;`, entryID).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFoundError("journalEntry", entryID)
	}
	if err != nil {
		return fmt.Errorf("failed to read status of entry %s: %w", entryID, err)
	}
	return &apperrors.StateError{Resource: "journalEntry", ID: entryID, State: current, Message: fmt.Sprintf("expected %s", from)}
}
