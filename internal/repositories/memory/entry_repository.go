package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
)

// EntryRepository keeps journal entries in memory. ReserveAndCommit holds the store
// lock for the whole numbering round trip, which serializes concurrent batches.
type EntryRepository struct {
	store *Store
}

// NewEntryRepository creates an entry repository over store.
func NewEntryRepository(store *Store) *EntryRepository {
	return &EntryRepository{store: store}
}

var _ portsrepo.EntryStore = (*EntryRepository)(nil)

func (r *EntryRepository) maxNumberLocked(organizationID, prefix string) (string, bool) {
	highest := ""
	for _, e := range r.store.entries {
		if e.OrganizationID == organizationID && strings.HasPrefix(e.EntryNumber, prefix) && e.EntryNumber > highest {
			highest = e.EntryNumber
		}
	}
	return highest, highest != ""
}

func (r *EntryRepository) MaxEntryNumberWithPrefix(ctx context.Context, organizationID, prefix string) (string, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	n, ok := r.maxNumberLocked(organizationID, prefix)
	return n, ok, nil
}

func (r *EntryRepository) list(organizationID string, filter domain.DateFilter, postedOnly bool) []domain.JournalEntry {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []domain.JournalEntry
	for _, id := range r.store.order {
		e := r.store.entries[id]
		if e.OrganizationID != organizationID || !filter.Matches(e.EntryDate) {
			continue
		}
		if postedOnly && !e.Status.IsPosted() {
			continue
		}
		out = append(out, cloneEntry(e))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].EntryDate.Equal(out[j].EntryDate) {
			return out[i].EntryDate.Before(out[j].EntryDate)
		}
		return out[i].EntryNumber < out[j].EntryNumber
	})
	return out
}

func (r *EntryRepository) ListApprovedEntries(ctx context.Context, organizationID string, filter domain.DateFilter) ([]domain.JournalEntry, error) {
	return r.list(organizationID, filter, true), nil
}

func (r *EntryRepository) ListEntries(ctx context.Context, organizationID string, filter domain.DateFilter) ([]domain.JournalEntry, error) {
	return r.list(organizationID, filter, false), nil
}

func (r *EntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	e, ok := r.store.entries[entryID]
	if !ok {
		return nil, apperrors.NewNotFoundError("journalEntry", entryID)
	}
	e = cloneEntry(e)
	return &e, nil
}

func (r *EntryRepository) CountEntriesForPeriod(ctx context.Context, periodID string) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	n := 0
	for _, e := range r.store.entries {
		if e.PeriodID == periodID {
			n++
		}
	}
	return n, nil
}

func (r *EntryRepository) CountEntriesOutside(ctx context.Context, periodID string, start, end time.Time) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	within := domain.DateRange(start, end)
	n := 0
	for _, e := range r.store.entries {
		if e.PeriodID == periodID && !within.Matches(e.EntryDate) {
			n++
		}
	}
	return n, nil
}

func (r *EntryRepository) InsertEntries(ctx context.Context, entries []domain.JournalEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.insertLocked(entries)
}

// insertLocked validates the whole batch before writing any of it.
func (r *EntryRepository) insertLocked(entries []domain.JournalEntry) error {
	numbers := make(map[string]bool)
	for _, e := range r.store.entries {
		numbers[e.OrganizationID+"/"+e.EntryNumber] = true
	}
	for _, e := range entries {
		if _, ok := r.store.entries[e.EntryID]; ok {
			return fmt.Errorf("%w: journal entry %s already exists", apperrors.ErrDuplicate, e.EntryID)
		}
		key := e.OrganizationID + "/" + e.EntryNumber
		if numbers[key] {
			return &apperrors.ConflictError{Resource: "journalEntry", ExistingID: e.EntryNumber, Message: "entry number already taken"}
		}
		numbers[key] = true
	}
	for _, e := range entries {
		r.store.entries[e.EntryID] = cloneEntry(e)
		r.store.order = append(r.store.order, e.EntryID)
	}
	return nil
}

func (r *EntryRepository) ReserveAndCommit(ctx context.Context, organizationID string, prefixes []string, build portsrepo.BatchBuilder) ([]domain.JournalEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	maxNumbers := make(map[string]string, len(prefixes))
	for _, p := range prefixes {
		n, _ := r.maxNumberLocked(organizationID, p)
		maxNumbers[p] = n
	}
	entries, err := build(maxNumbers)
	if err != nil {
		return nil, err
	}
	if err := r.insertLocked(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *EntryRepository) UpdateEntryStatus(ctx context.Context, entryID string, from, to domain.JournalStatus, userID string, now time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	e, ok := r.store.entries[entryID]
	if !ok {
		return apperrors.NewNotFoundError("journalEntry", entryID)
	}
	if e.Status != from {
		return &apperrors.StateError{Resource: "journalEntry", ID: entryID, State: string(e.Status), Message: fmt.Sprintf("expected %s", from)}
	}
	e.Status = to
	e.LastUpdatedAt = now
	e.LastUpdatedBy = userID
	r.store.entries[entryID] = e
	return nil
}
