package domain

import "time"

// DateFilter selects journal entries by entry date. A zero bound is unbounded.
type DateFilter struct {
	From      time.Time // inclusive
	To        time.Time // inclusive unless ExcludeTo
	ExcludeTo bool
}

// AsOf selects entries dated on or before date.
func AsOf(date time.Time) DateFilter {
	return DateFilter{To: TruncateDate(date)}
}

// Before selects entries dated strictly before date.
func Before(date time.Time) DateFilter {
	return DateFilter{To: TruncateDate(date), ExcludeTo: true}
}

// DateRange selects entries dated within [start, end].
func DateRange(start, end time.Time) DateFilter {
	return DateFilter{From: TruncateDate(start), To: TruncateDate(end)}
}

// Matches reports whether date satisfies the filter.
func (f DateFilter) Matches(date time.Time) bool {
	d := TruncateDate(date)
	if !f.From.IsZero() && d.Before(f.From) {
		return false
	}
	if !f.To.IsZero() {
		if f.ExcludeTo {
			return d.Before(f.To)
		}
		return !d.After(f.To)
	}
	return true
}
