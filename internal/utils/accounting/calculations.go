package accounting

import (
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// SignedAmount applies the balance sign of a line for an account of the given type.
func SignedAmount(line domain.JournalEntryLine, accountType domain.AccountType) (domain.Money, error) {
	// DEBIT to ASSET/EXPENSE -> Positive (+)
	// CREDIT to ASSET/EXPENSE -> Negative (-)
	// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
	// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
	net := line.DebitAmount.Sub(line.CreditAmount)
	switch accountType {
	case domain.Asset, domain.Expense:
		return net, nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return net.Neg(), nil
	default:
		return domain.ZeroMoney, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, line.AccountID)
	}
}

// ValidateLine checks that exactly one of the debit and credit amounts is positive
// and the other is zero.
func ValidateLine(line domain.JournalEntryLine) error {
	if line.DebitAmount.IsNegative() || line.CreditAmount.IsNegative() {
		return apperrors.NewValidationError("amount", fmt.Sprintf("line %d", line.LineNumber), "amounts must not be negative")
	}
	hasDebit := line.DebitAmount.IsPositive()
	hasCredit := line.CreditAmount.IsPositive()
	if hasDebit == hasCredit {
		return apperrors.NewValidationError("amount", fmt.Sprintf("line %d", line.LineNumber), "line must have exactly one of debit or credit")
	}
	return nil
}

// ValidateEntryBalance checks the line shape of an entry and that total debits equal
// total credits exactly.
func ValidateEntryBalance(lines []domain.JournalEntryLine) error {
	if len(lines) < 2 {
		return apperrors.NewValidationError("lines", fmt.Sprintf("%d", len(lines)), "journal entry must have at least two lines")
	}

	debits := domain.ZeroMoney
	credits := domain.ZeroMoney
	for _, line := range lines {
		if err := ValidateLine(line); err != nil {
			return err
		}
		debits = debits.Add(line.DebitAmount)
		credits = credits.Add(line.CreditAmount)
	}

	if !debits.Equal(credits) {
		return &apperrors.BalanceError{TotalDebit: debits.String(), TotalCredit: credits.String()}
	}
	return nil
}
