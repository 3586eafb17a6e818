package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
)

// PeriodRepository keeps accounting periods in memory.
type PeriodRepository struct {
	store *Store
}

// NewPeriodRepository creates a period repository over store.
func NewPeriodRepository(store *Store) *PeriodRepository {
	return &PeriodRepository{store: store}
}

var _ portsrepo.PeriodRepositoryFacade = (*PeriodRepository)(nil)

func (r *PeriodRepository) ListPeriods(ctx context.Context, organizationID string) ([]domain.AccountingPeriod, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.listLocked(organizationID), nil
}

func (r *PeriodRepository) listLocked(organizationID string) []domain.AccountingPeriod {
	var out []domain.AccountingPeriod
	for _, p := range r.store.periods {
		if p.OrganizationID == organizationID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].PeriodID < out[j].PeriodID
	})
	return out
}

func (r *PeriodRepository) FindPeriodForDate(ctx context.Context, organizationID string, date time.Time) (*domain.AccountingPeriod, error) {
	periods, _ := r.ListPeriods(ctx, organizationID)
	for _, p := range periods {
		if p.Contains(date) {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *PeriodRepository) FindOverlapping(ctx context.Context, organizationID string, start, end time.Time, excludeID string) (*domain.AccountingPeriod, error) {
	periods, _ := r.ListPeriods(ctx, organizationID)
	for _, p := range periods {
		if p.PeriodID != excludeID && p.Overlaps(start, end) {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *PeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	p, ok := r.store.periods[periodID]
	if !ok {
		return nil, apperrors.NewNotFoundError("accountingPeriod", periodID)
	}
	return &p, nil
}

// SavePeriod inserts a period, enforcing the no-overlap rule the database
// enforces with an exclusion constraint.
func (r *PeriodRepository) SavePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if err := r.checkOverlapLocked(period); err != nil {
		return err
	}
	r.store.periods[period.PeriodID] = period
	return nil
}

func (r *PeriodRepository) UpdatePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.periods[period.PeriodID]; !ok {
		return apperrors.NewNotFoundError("accountingPeriod", period.PeriodID)
	}
	if err := r.checkOverlapLocked(period); err != nil {
		return err
	}
	r.store.periods[period.PeriodID] = period
	return nil
}

func (r *PeriodRepository) checkOverlapLocked(period domain.AccountingPeriod) error {
	for _, p := range r.listLocked(period.OrganizationID) {
		if p.PeriodID != period.PeriodID && p.Overlaps(period.StartDate, period.EndDate) {
			return &apperrors.ConflictError{Resource: "accountingPeriod", ExistingID: p.PeriodID, Message: "period dates overlap"}
		}
	}
	return nil
}

func (r *PeriodRepository) DeletePeriod(ctx context.Context, periodID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.periods[periodID]; !ok {
		return apperrors.NewNotFoundError("accountingPeriod", periodID)
	}
	delete(r.store.periods, periodID)
	return nil
}

func (r *PeriodRepository) ActivatePeriod(ctx context.Context, organizationID, periodID, userID string, now time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	target, ok := r.store.periods[periodID]
	if !ok || target.OrganizationID != organizationID {
		return apperrors.NewNotFoundError("accountingPeriod", periodID)
	}
	for id, p := range r.store.periods {
		if p.OrganizationID != organizationID {
			continue
		}
		active := id == periodID
		if p.IsActive != active {
			p.IsActive = active
			p.LastUpdatedAt = now
			p.LastUpdatedBy = userID
			r.store.periods[id] = p
		}
	}
	return nil
}
