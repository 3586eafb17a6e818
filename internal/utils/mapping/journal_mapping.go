package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry. Lines are
// converted separately with ToModelJournalEntryLine.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:        d.EntryID,
		OrganizationID: d.OrganizationID,
		PeriodID:       d.PeriodID,
		EntryNumber:    d.EntryNumber,
		EntryDate:      domain.TruncateDate(d.EntryDate),
		Description:    d.Description,
		Status:         models.JournalStatus(d.Status),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry and its lines to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry, lines []models.JournalEntryLine) domain.JournalEntry {
	out := domain.JournalEntry{
		EntryID:        m.EntryID,
		OrganizationID: m.OrganizationID,
		PeriodID:       m.PeriodID,
		EntryNumber:    m.EntryNumber,
		EntryDate:      domain.TruncateDate(m.EntryDate),
		Description:    m.Description,
		Status:         domain.JournalStatus(m.Status),
		Lines:          make([]domain.JournalEntryLine, len(lines)),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
	for i, l := range lines {
		out.Lines[i] = ToDomainJournalEntryLine(l)
	}
	return out
}

// ToModelJournalEntryLine converts a domain line to a model line
func ToModelJournalEntryLine(d domain.JournalEntryLine) models.JournalEntryLine {
	return models.JournalEntryLine{
		LineID:       d.LineID,
		EntryID:      d.EntryID,
		LineNumber:   d.LineNumber,
		AccountID:    d.AccountID,
		DebitAmount:  d.DebitAmount.Decimal(),
		CreditAmount: d.CreditAmount.Decimal(),
		Description:  d.Description,
	}
}

// ToDomainJournalEntryLine converts a model line to a domain line
func ToDomainJournalEntryLine(m models.JournalEntryLine) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		LineID:       m.LineID,
		EntryID:      m.EntryID,
		LineNumber:   m.LineNumber,
		AccountID:    m.AccountID,
		DebitAmount:  domain.MoneyFromDecimal(m.DebitAmount),
		CreditAmount: domain.MoneyFromDecimal(m.CreditAmount),
		Description:  m.Description,
	}
}
