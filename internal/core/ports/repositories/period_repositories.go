package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// PeriodRegistry is the read side of accounting periods consumed by the engine.
type PeriodRegistry interface {
	// FindPeriodForDate returns the period containing date, or nil when none does.
	FindPeriodForDate(ctx context.Context, organizationID string, date time.Time) (*domain.AccountingPeriod, error)

	// FindOverlapping returns a period intersecting [start, end], ignoring excludeID,
	// or nil when there is none.
	FindOverlapping(ctx context.Context, organizationID string, start, end time.Time, excludeID string) (*domain.AccountingPeriod, error)

	// FindPeriodByID retrieves a period or an apperrors.NotFoundError.
	FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error)

	// ListPeriods returns the organization's periods ordered by start date.
	ListPeriods(ctx context.Context, organizationID string) ([]domain.AccountingPeriod, error)
}

// PeriodWriter defines write operations for accounting periods.
type PeriodWriter interface {
	SavePeriod(ctx context.Context, period domain.AccountingPeriod) error
	UpdatePeriod(ctx context.Context, period domain.AccountingPeriod) error
	DeletePeriod(ctx context.Context, periodID string) error

	// ActivatePeriod marks periodID active and every other period of the
	// organization inactive in one step.
	ActivatePeriod(ctx context.Context, organizationID, periodID, userID string, now time.Time) error
}

// PeriodRepositoryFacade combines all period-related repository interfaces
type PeriodRepositoryFacade interface {
	PeriodRegistry
	PeriodWriter
}
