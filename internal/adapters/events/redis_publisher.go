package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/redis/go-redis/v9"
)

// EntriesCommittedChannel is the default channel for committed-entry events.
const EntriesCommittedChannel = "journal.entries.committed"

// Publisher is the subset of the Redis client used for pub/sub.
type Publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// EntriesCommittedEvent is the payload sent after a batch of entries is committed.
type EntriesCommittedEvent struct {
	EventType      string           `json:"eventType"`
	OrganizationID string           `json:"organizationID"`
	Count          int              `json:"count"`
	Entries        []CommittedEntry `json:"entries"`
	Timestamp      time.Time        `json:"timestamp"`
}

// CommittedEntry summarizes one committed entry.
type CommittedEntry struct {
	EntryID     string               `json:"entryID"`
	EntryNumber string               `json:"entryNumber"`
	EntryDate   string               `json:"entryDate"`
	Status      domain.JournalStatus `json:"status"`
	Amount      domain.Money         `json:"amount"`
}

// RedisEntryPublisher publishes committed entries on a Redis channel.
type RedisEntryPublisher struct {
	rdb     Publisher
	channel string
	now     func() time.Time
}

// NewRedisEntryPublisher creates a publisher on channel, or EntriesCommittedChannel when empty.
func NewRedisEntryPublisher(rdb Publisher, channel string) *RedisEntryPublisher {
	if channel == "" {
		channel = EntriesCommittedChannel
	}
	return &RedisEntryPublisher{rdb: rdb, channel: channel, now: time.Now}
}

var _ portssvc.EntryEventPublisher = (*RedisEntryPublisher)(nil)

// PublishEntriesCommitted sends one event describing the whole batch.
func (p *RedisEntryPublisher) PublishEntriesCommitted(ctx context.Context, organizationID string, entries []domain.JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}
	event := EntriesCommittedEvent{
		EventType:      "journal.entries.committed",
		OrganizationID: organizationID,
		Count:          len(entries),
		Entries:        make([]CommittedEntry, len(entries)),
		Timestamp:      p.now().UTC(),
	}
	for i, e := range entries {
		event.Entries[i] = CommittedEntry{
			EntryID:     e.EntryID,
			EntryNumber: e.EntryNumber,
			EntryDate:   e.EntryDate.Format("2006-01-02"),
			Status:      e.Status,
			Amount:      e.TotalDebit(),
		}
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.rdb.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Debug("Published committed entries",
		slog.String("channel", p.channel),
		slog.String("organization_id", organizationID),
		slog.Int("count", len(entries)))
	return nil
}
