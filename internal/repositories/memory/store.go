// Package memory holds mutex-guarded in-process repositories. They back the
// "memory" storage driver, the ledgerctl CLI and service tests.
package memory

import (
	"sync"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
)

// Store is the shared state behind the memory repositories.
type Store struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
	periods  map[string]domain.AccountingPeriod
	entries  map[string]domain.JournalEntry
	order    []string // entry ids in insertion order
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		accounts: make(map[string]domain.Account),
		periods:  make(map[string]domain.AccountingPeriod),
		entries:  make(map[string]domain.JournalEntry),
	}
}

// NewRepositoryProvider wires memory repositories over one store.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: NewAccountRepository(store),
		PeriodRepo:  NewPeriodRepository(store),
		EntryRepo:   NewEntryRepository(store),
	}
}

func cloneEntry(e domain.JournalEntry) domain.JournalEntry {
	lines := make([]domain.JournalEntryLine, len(e.Lines))
	copy(lines, e.Lines)
	e.Lines = lines
	return e
}
