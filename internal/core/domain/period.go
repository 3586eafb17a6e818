package domain

import "time"

// AccountingPeriod is a bounded date range within which journal entries are grouped.
type AccountingPeriod struct {
	PeriodID       string    `json:"periodID"`
	OrganizationID string    `json:"organizationID"`
	Name           string    `json:"name"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	IsActive       bool      `json:"isActive"`
	AuditFields
}

// Contains reports whether date falls within the period, both ends inclusive.
func (p AccountingPeriod) Contains(date time.Time) bool {
	d := TruncateDate(date)
	return !d.Before(TruncateDate(p.StartDate)) && !d.After(TruncateDate(p.EndDate))
}

// Overlaps reports whether the period intersects [start, end].
func (p AccountingPeriod) Overlaps(start, end time.Time) bool {
	return !TruncateDate(p.StartDate).After(TruncateDate(end)) && !TruncateDate(start).After(TruncateDate(p.EndDate))
}

// TruncateDate drops the time-of-day component, keeping the calendar date in UTC.
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
