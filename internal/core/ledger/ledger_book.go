package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
)

type bookLine struct {
	entry domain.JournalEntry
	line  domain.JournalEntryLine
}

// GenerateLedgerBook lists the posted lines of one account within [start, end] in
// chronological order with a running balance seeded by the balance before start.
func GenerateLedgerBook(h *Hierarchy, entries []domain.JournalEntry, accountID string, start, end time.Time) (domain.LedgerBook, error) {
	acc, ok := h.Account(accountID)
	if !ok {
		return domain.LedgerBook{}, apperrors.NewNotFoundError("account", accountID)
	}

	book := domain.LedgerBook{
		AccountID:   acc.AccountID,
		AccountCode: acc.Code,
		AccountName: acc.Name,
		AccountType: acc.AccountType,
		StartDate:   domain.TruncateDate(start),
		EndDate:     domain.TruncateDate(end),
		Entries:     []domain.LedgerEntry{},
	}

	before := domain.Before(start)
	within := domain.DateRange(start, end)
	var lines []bookLine
	for _, entry := range entries {
		if !entry.Status.IsPosted() {
			continue
		}
		opening := before.Matches(entry.EntryDate)
		if !opening && !within.Matches(entry.EntryDate) {
			continue
		}
		for _, line := range entry.Lines {
			if line.AccountID != accountID {
				continue
			}
			if opening {
				signed, err := accounting.SignedAmount(line, acc.AccountType)
				if err != nil {
					return domain.LedgerBook{}, fmt.Errorf("entry %s line %d: %w", entry.EntryNumber, line.LineNumber, err)
				}
				book.OpeningBalance = book.OpeningBalance.Add(signed)
				continue
			}
			lines = append(lines, bookLine{entry: entry, line: line})
		}
	}

	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if !a.entry.EntryDate.Equal(b.entry.EntryDate) {
			return a.entry.EntryDate.Before(b.entry.EntryDate)
		}
		if a.entry.EntryNumber != b.entry.EntryNumber {
			return a.entry.EntryNumber < b.entry.EntryNumber
		}
		return a.line.LineNumber < b.line.LineNumber
	})

	running := book.OpeningBalance
	for _, bl := range lines {
		signed, err := accounting.SignedAmount(bl.line, acc.AccountType)
		if err != nil {
			return domain.LedgerBook{}, fmt.Errorf("entry %s line %d: %w", bl.entry.EntryNumber, bl.line.LineNumber, err)
		}
		running = running.Add(signed)
		description := bl.line.Description
		if description == "" {
			description = bl.entry.Description
		}
		book.TotalDebit = book.TotalDebit.Add(bl.line.DebitAmount)
		book.TotalCredit = book.TotalCredit.Add(bl.line.CreditAmount)
		book.Entries = append(book.Entries, domain.LedgerEntry{
			Date:               bl.entry.EntryDate,
			EntryID:            bl.entry.EntryID,
			EntryNumber:        bl.entry.EntryNumber,
			Description:        description,
			Debit:              bl.line.DebitAmount,
			Credit:             bl.line.CreditAmount,
			RunningBalance:     running,
			CounterAccountName: counterAccountName(h, bl.entry, bl.line),
		})
	}
	book.ClosingBalance = running
	return book, nil
}

// counterAccountName names the other side of an entry: the single other account,
// MultipleAccounts when there are several, or nothing for a malformed entry.
func counterAccountName(h *Hierarchy, entry domain.JournalEntry, line domain.JournalEntryLine) string {
	var others []domain.JournalEntryLine
	for _, other := range entry.Lines {
		if other.LineNumber == line.LineNumber && other.AccountID == line.AccountID {
			continue
		}
		others = append(others, other)
	}
	switch len(others) {
	case 0:
		return ""
	case 1:
		if acc, ok := h.Account(others[0].AccountID); ok {
			return acc.Name
		}
		return others[0].AccountID
	default:
		return domain.MultipleAccounts
	}
}
