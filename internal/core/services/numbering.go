package services

import (
	"context"
	"sort"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/core/ledger"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
)

// commitNumbered assigns entry numbers to drafts in order and persists them, both
// inside the store's serialized unit of work for every month the batch touches.
func commitNumbered(ctx context.Context, store portsrepo.EntryWriter, organizationID string, drafts []domain.JournalEntry) ([]domain.JournalEntry, error) {
	seen := make(map[string]bool)
	var prefixes []string
	for _, d := range drafts {
		p := ledger.EntryNumberPrefix(d.EntryDate)
		if !seen[p] {
			seen[p] = true
			prefixes = append(prefixes, p)
		}
	}
	sort.Strings(prefixes)

	return store.ReserveAndCommit(ctx, organizationID, prefixes, func(maxNumbers map[string]string) ([]domain.JournalEntry, error) {
		seq := ledger.NewSequencer(maxNumbers)
		out := make([]domain.JournalEntry, len(drafts))
		for i, d := range drafts {
			number, err := seq.Next(ledger.EntryNumberPrefix(d.EntryDate))
			if err != nil {
				return nil, err
			}
			d.EntryNumber = number
			out[i] = d
		}
		return out, nil
	})
}
