package domain

import "time"

// JournalStatus indicates the lifecycle state of a journal entry.
type JournalStatus string

const (
	Draft     JournalStatus = "DRAFT"
	Approved  JournalStatus = "APPROVED"
	Locked    JournalStatus = "LOCKED"
	Cancelled JournalStatus = "CANCELLED"
)

// IsValid reports whether s is a known status.
func (s JournalStatus) IsValid() bool {
	switch s {
	case Draft, Approved, Locked, Cancelled:
		return true
	}
	return false
}

// IsPosted reports whether entries in this status count towards balances.
// LOCKED entries were approved before being locked.
func (s JournalStatus) IsPosted() bool {
	return s == Approved || s == Locked
}

// JournalEntry represents a single, balanced financial event composed of at least two lines.
type JournalEntry struct {
	EntryID        string             `json:"entryID"`        // Primary Key (UUID)
	OrganizationID string             `json:"organizationID"` // Owning organization
	PeriodID       string             `json:"periodID"`       // Accounting period containing EntryDate
	EntryNumber    string             `json:"entryNumber"`    // YYYYMM + 4-digit sequence
	EntryDate      time.Time          `json:"entryDate"`      // Date the event occurred
	Description    string             `json:"description"`
	Status         JournalStatus      `json:"status"`
	Lines          []JournalEntryLine `json:"lines"`
	AuditFields
}

// TotalDebit sums the debit column of the entry's lines.
func (e JournalEntry) TotalDebit() Money {
	total := ZeroMoney
	for _, l := range e.Lines {
		total = total.Add(l.DebitAmount)
	}
	return total
}

// TotalCredit sums the credit column of the entry's lines.
func (e JournalEntry) TotalCredit() Money {
	total := ZeroMoney
	for _, l := range e.Lines {
		total = total.Add(l.CreditAmount)
	}
	return total
}

// JournalEntryLine is one debit or credit posting to a single account.
type JournalEntryLine struct {
	LineID       string `json:"lineID"`
	EntryID      string `json:"entryID"`
	LineNumber   int    `json:"lineNumber"` // 1-based order within the entry
	AccountID    string `json:"accountID"`
	DebitAmount  Money  `json:"debitAmount"`
	CreditAmount Money  `json:"creditAmount"`
	Description  string `json:"description,omitempty"`
}

// IsDebit reports whether the line posts to the debit side.
func (l JournalEntryLine) IsDebit() bool {
	return l.DebitAmount.IsPositive()
}
