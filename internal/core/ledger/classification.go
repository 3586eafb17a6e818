package ledger

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// Category tags accounts for ratio analysis.
type Category string

const (
	CurrentAsset     Category = "CURRENT_ASSET"
	Cash             Category = "CASH"
	Receivable       Category = "RECEIVABLE"
	Inventory        Category = "INVENTORY"
	CurrentLiability Category = "CURRENT_LIABILITY"
	CostOfSales      Category = "COST_OF_SALES"
	InterestExpense  Category = "INTEREST_EXPENSE"
)

// Categories lists every known category.
var Categories = []Category{CurrentAsset, Cash, Receivable, Inventory, CurrentLiability, CostOfSales, InterestExpense}

// CodeRange is an inclusive range of account codes, compared with CompareCodes.
type CodeRange struct {
	From string `yaml:"from" json:"from"`
	To   string `yaml:"to" json:"to"`
}

// Contains reports whether code falls inside the range.
func (r CodeRange) Contains(code string) bool {
	return CompareCodes(code, r.From) >= 0 && CompareCodes(code, r.To) <= 0
}

// Classification is the chart-of-accounts knowledge the ratio and cash flow
// computations need. Categories apply to an account and all of its descendants.
type Classification struct {
	Ranges   map[Category][]CodeRange
	Accounts map[string][]Category              // account code -> categories
	CashFlow map[string]domain.CashFlowActivity // counter account code -> activity
}

// Has reports whether the account, or any of its ancestors, carries the category.
func (c Classification) Has(h *Hierarchy, accountID string, cat Category) bool {
	acc, ok := h.Account(accountID)
	if !ok {
		return false
	}
	if c.matches(acc.Code, cat) {
		return true
	}
	for _, parent := range h.Ancestors(accountID) {
		if c.matches(parent.Code, cat) {
			return true
		}
	}
	return false
}

func (c Classification) matches(code string, cat Category) bool {
	if code == "" {
		return false
	}
	for _, got := range c.Accounts[code] {
		if got == cat {
			return true
		}
	}
	for _, r := range c.Ranges[cat] {
		if r.Contains(code) {
			return true
		}
	}
	return false
}

// Sum adds up the own balances of every account carrying the category.
func (c Classification) Sum(h *Hierarchy, balances Balances, cat Category) domain.Money {
	total := domain.ZeroMoney
	for id, amount := range balances {
		if c.Has(h, id, cat) {
			total = total.Add(amount)
		}
	}
	return total
}

// ActivityFor returns the cash flow activity configured for an account or its
// nearest classified ancestor.
func (c Classification) ActivityFor(h *Hierarchy, accountID string) (domain.CashFlowActivity, bool) {
	acc, ok := h.Account(accountID)
	if !ok {
		return "", false
	}
	if a, ok := c.CashFlow[acc.Code]; ok {
		return a, true
	}
	for _, parent := range h.Ancestors(accountID) {
		if a, ok := c.CashFlow[parent.Code]; ok {
			return a, true
		}
	}
	return "", false
}

// Classifier builds a CashFlowClassifier that looks at the other lines of the entry
// and picks the activity of the first counter account with one configured.
func (c Classification) Classifier(h *Hierarchy) CashFlowClassifier {
	return func(entry domain.JournalEntry, line domain.JournalEntryLine) domain.CashFlowActivity {
		for _, other := range entry.Lines {
			if other.LineNumber == line.LineNumber && other.AccountID == line.AccountID {
				continue
			}
			if a, ok := c.ActivityFor(h, other.AccountID); ok {
				return a
			}
		}
		return ""
	}
}
