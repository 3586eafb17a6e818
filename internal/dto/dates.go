package dto

import (
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
)

// DateLayout is the calendar date format used by every request and CSV column.
const DateLayout = "2006-01-02"

// ParseDate parses a DateLayout date, reporting failures against field.
func ParseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(field, value, "expected a date formatted as YYYY-MM-DD")
	}
	return t, nil
}

// ParseDateRange parses both ends of a range and checks that from is not after to.
func ParseDateRange(from, to string) (time.Time, time.Time, error) {
	start, err := ParseDate("from", from)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ParseDate("to", to)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("from", from, "must not be after to")
	}
	return start, end, nil
}
