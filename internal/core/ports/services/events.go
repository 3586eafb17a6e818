package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// EntryEventPublisher announces committed journal entries to other systems.
// Publishing is best effort: a failure never undoes a commit.
type EntryEventPublisher interface {
	PublishEntriesCommitted(ctx context.Context, organizationID string, entries []domain.JournalEntry) error
}
