package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

// JournalEntry is a row of the journal_entries table. Lines are loaded separately.
type JournalEntry struct {
	EntryID        string        `db:"entry_id"`
	OrganizationID string        `db:"organization_id"`
	PeriodID       string        `db:"period_id"`
	EntryNumber    string        `db:"entry_number"`
	EntryDate      time.Time     `db:"entry_date"`
	Description    string        `db:"description"`
	Status         JournalStatus `db:"status"`
	AuditFields
}

// JournalEntryLine is a row of the journal_entry_lines table. Amounts are NUMERIC(20,2).
type JournalEntryLine struct {
	LineID       string          `db:"line_id"`
	EntryID      string          `db:"entry_id"`
	LineNumber   int             `db:"line_number"`
	AccountID    string          `db:"account_id"`
	DebitAmount  decimal.Decimal `db:"debit_amount"`
	CreditAmount decimal.Decimal `db:"credit_amount"`
	Description  string          `db:"description"`
}
