package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
)

// CashFlowClassifier assigns a cash-touching line to an activity. Returning an empty
// activity leaves the line in OPERATING.
type CashFlowClassifier func(entry domain.JournalEntry, line domain.JournalEntryLine) domain.CashFlowActivity

// CashAccountSet expands the designated cash accounts to include their descendants.
func CashAccountSet(h *Hierarchy, cashAccountIDs []string) map[string]bool {
	set := make(map[string]bool)
	for _, id := range cashAccountIDs {
		for _, acc := range h.Subtree(id) {
			set[acc.AccountID] = true
		}
	}
	return set
}

// AssembleCashFlow approximates the cash flow statement for [start, end] by
// classifying every posted line that touches a cash account.
func AssembleCashFlow(h *Hierarchy, entries []domain.JournalEntry, cashAccountIDs []string, classify CashFlowClassifier, start, end time.Time) (domain.CashFlowReport, error) {
	report := domain.CashFlowReport{
		StartDate: domain.TruncateDate(start),
		EndDate:   domain.TruncateDate(end),
		Items:     []domain.CashFlowItem{},
	}
	cash := CashAccountSet(h, cashAccountIDs)
	before := domain.Before(start)
	within := domain.DateRange(start, end)

	for _, entry := range entries {
		if !entry.Status.IsPosted() {
			continue
		}
		opening := before.Matches(entry.EntryDate)
		if !opening && !within.Matches(entry.EntryDate) {
			continue
		}
		for _, line := range entry.Lines {
			if !cash[line.AccountID] {
				continue
			}
			accountType, _ := h.TypeOf(line.AccountID)
			amount, err := accounting.SignedAmount(line, accountType)
			if err != nil {
				return domain.CashFlowReport{}, fmt.Errorf("entry %s line %d: %w", entry.EntryNumber, line.LineNumber, err)
			}
			if opening {
				report.BeginningCash = report.BeginningCash.Add(amount)
				continue
			}

			activity := domain.Operating
			if classify != nil {
				if a := classify(entry, line); a.IsValid() {
					activity = a
				}
			}
			switch activity {
			case domain.Investing:
				report.Investing = report.Investing.Add(amount)
			case domain.Financing:
				report.Financing = report.Financing.Add(amount)
			default:
				report.Operating = report.Operating.Add(amount)
			}
			report.Items = append(report.Items, domain.CashFlowItem{
				EntryID:     entry.EntryID,
				EntryNumber: entry.EntryNumber,
				EntryDate:   entry.EntryDate,
				Description: entry.Description,
				AccountID:   line.AccountID,
				Activity:    activity,
				Amount:      amount,
			})
		}
	}

	sort.SliceStable(report.Items, func(i, j int) bool {
		a, b := report.Items[i], report.Items[j]
		if !a.EntryDate.Equal(b.EntryDate) {
			return a.EntryDate.Before(b.EntryDate)
		}
		return a.EntryNumber < b.EntryNumber
	})

	report.NetCashFlow = domain.SumMoney(report.Operating, report.Investing, report.Financing)
	report.EndingCash = report.BeginningCash.Add(report.NetCashFlow)
	return report, nil
}
