package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits carried by Money.
const MoneyScale = 2

// Money is a fixed-point amount stored as an integer number of minor units (cents).
type Money int64

// ZeroMoney is the additive identity.
const ZeroMoney Money = 0

// tolerance is the slack allowed by report-level checks such as the trial balance.
const tolerance Money = 1

// ErrInvalidAmount is returned by ParseMoney for malformed, negative or over-precise input.
var ErrInvalidAmount = errors.New("invalid amount")

// NewMoney creates Money from a count of minor units.
func NewMoney(minorUnits int64) Money { return Money(minorUnits) }

// ParseMoney parses a non-negative decimal numeral with at most MoneyScale fractional digits.
func ParseMoney(s string) (Money, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || strings.ContainsAny(trimmed, "eE") {
		return 0, invalidAmount(s, "not a decimal numeral")
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return 0, invalidAmount(s, "not a decimal numeral")
	}
	if d.IsNegative() || strings.HasPrefix(trimmed, "-") {
		return 0, invalidAmount(s, "amount must not be negative")
	}
	if d.Exponent() < -MoneyScale {
		return 0, invalidAmount(s, fmt.Sprintf("at most %d fractional digits allowed", MoneyScale))
	}
	minor := d.Shift(MoneyScale)
	if minor.GreaterThan(decimal.NewFromInt(maxMinorUnits)) {
		return 0, invalidAmount(s, "amount out of range")
	}
	return Money(minor.IntPart()), nil
}

const maxMinorUnits = int64(1) << 62

func invalidAmount(value, msg string) error {
	return fmt.Errorf("%w: %w", ErrInvalidAmount, apperrors.NewValidationError("amount", value, msg))
}

// MoneyFromDecimal rounds d to MoneyScale places (half away from zero).
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money(d.Round(MoneyScale).Shift(MoneyScale).IntPart())
}

// MustParseMoney is ParseMoney for literals known to be valid. It panics otherwise.
func MustParseMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Add(n Money) Money { return m + n }
func (m Money) Sub(n Money) Money { return m - n }
func (m Money) Neg() Money { return -m }
func (m Money) IsZero() bool { return m == 0 }
func (m Money) IsPositive() bool { return m > 0 }
func (m Money) IsNegative() bool { return m < 0 }
func (m Money) MinorUnits() int64 { return int64(m) }
func (m Money) Equal(n Money) bool { return m == n }
func (m Money) LessThan(n Money) bool { return m < n }

// Cmp returns -1, 0 or 1.
func (m Money) Cmp(n Money) int {
	switch {
	case m < n:
		return -1
	case m > n:
		return 1
	}
	return 0
}

// Abs returns the magnitude of m.
func (m Money) Abs() Money {
	if m < 0 {
		return -m
	}
	return m
}

// ApproxEqual reports whether m and n differ by at most one minor unit.
func (m Money) ApproxEqual(n Money) bool {
	return m.Sub(n).Abs() <= tolerance
}

// Decimal returns m in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -MoneyScale)
}

// String renders m with exactly MoneyScale fractional digits.
func (m Money) String() string {
	return m.Decimal().StringFixed(MoneyScale)
}

// Display formats m for humans using the currency's symbol and grouping.
func (m Money) Display(currencyCode string) string {
	return money.New(int64(m), currencyCode).Display()
}

// MarshalJSON encodes m as a JSON string ("1000.00") so no precision is lost in transit.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts either a JSON string or number. Signed values are allowed here
// since reports carry negative balances; ParseMoney remains the import path.
func (m *Money) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		*m = 0
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return invalidAmount(raw, "not a decimal numeral")
	}
	*m = MoneyFromDecimal(d)
	return nil
}

// SumMoney adds up amounts.
func SumMoney(amounts ...Money) Money {
	total := ZeroMoney
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
