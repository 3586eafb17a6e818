package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/google/uuid"
)

type periodService struct {
	BaseService
	periodRepo portsrepo.PeriodRepositoryFacade
	entryRepo  portsrepo.EntryReader
}

// PeriodServiceOption is a functional option for configuring the period service
type PeriodServiceOption func(*periodService)

// WithPeriodClock overrides the clock used for audit fields.
func WithPeriodClock(clock func() time.Time) PeriodServiceOption {
	return func(s *periodService) {
		s.clock = clock
	}
}

// NewPeriodService creates a new period service with the provided options
func NewPeriodService(periodRepo portsrepo.PeriodRepositoryFacade, entryRepo portsrepo.EntryReader, options ...PeriodServiceOption) portssvc.PeriodSvcFacade {
	svc := &periodService{periodRepo: periodRepo, entryRepo: entryRepo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

func validatePeriodBounds(start, end time.Time) error {
	if !start.Before(end) {
		return apperrors.NewValidationError("endDate", end.Format(dto.DateLayout), "end date must be after start date")
	}
	return nil
}

// checkOverlap rejects [start, end] when it intersects another period of the organization.
func (s *periodService) checkOverlap(ctx context.Context, organizationID string, start, end time.Time, excludeID string) error {
	existing, err := s.periodRepo.FindOverlapping(ctx, organizationID, start, end, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check overlapping periods: %w", err)
	}
	if existing != nil {
		return &apperrors.ConflictError{
			Resource:   "accountingPeriod",
			ExistingID: existing.PeriodID,
			Message: fmt.Sprintf("overlaps period %q (%s to %s)", existing.Name,
				existing.StartDate.Format(dto.DateLayout), existing.EndDate.Format(dto.DateLayout)),
		}
	}
	return nil
}

// CreatePeriod opens a new accounting period.
func (s *periodService) CreatePeriod(ctx context.Context, organizationID string, req dto.CreatePeriodRequest, userID string) (*domain.AccountingPeriod, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name", req.Name, "period name is required")
	}
	start, err := dto.ParseDate("startDate", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := dto.ParseDate("endDate", req.EndDate)
	if err != nil {
		return nil, err
	}
	if err := validatePeriodBounds(start, end); err != nil {
		return nil, err
	}
	if err := s.checkOverlap(ctx, organizationID, start, end, ""); err != nil {
		s.LogInfo(ctx, "Rejected overlapping period", slog.String("organization_id", organizationID), slog.String("error", err.Error()))
		return nil, err
	}

	now := s.Now()
	period := domain.AccountingPeriod{
		PeriodID:       uuid.NewString(),
		OrganizationID: organizationID,
		Name:           name,
		StartDate:      start,
		EndDate:        end,
		AuditFields:    domain.NewAuditFields(userID, now),
	}
	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		s.LogError(ctx, err, "Failed to save period", slog.String("period_id", period.PeriodID))
		return nil, err
	}
	if req.IsActive {
		if err := s.periodRepo.ActivatePeriod(ctx, organizationID, period.PeriodID, userID, now); err != nil {
			s.LogError(ctx, err, "Failed to activate period", slog.String("period_id", period.PeriodID))
			return nil, err
		}
		period.IsActive = true
	}

	s.LogInfo(ctx, "Accounting period created", slog.String("period_id", period.PeriodID), slog.Bool("active", period.IsActive))
	return &period, nil
}

func (s *periodService) findOwned(ctx context.Context, organizationID, periodID string) (*domain.AccountingPeriod, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if period.OrganizationID != organizationID {
		return nil, apperrors.NewNotFoundError("accountingPeriod", periodID)
	}
	return period, nil
}

// UpdatePeriod changes a period, re-validating bounds and overlap against every
// other period of the organization.
func (s *periodService) UpdatePeriod(ctx context.Context, organizationID, periodID string, req dto.UpdatePeriodRequest, userID string) (*domain.AccountingPeriod, error) {
	period, err := s.findOwned(ctx, organizationID, periodID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name", *req.Name, "period name is required")
		}
		period.Name = name
	}
	if req.StartDate != nil {
		if period.StartDate, err = dto.ParseDate("startDate", *req.StartDate); err != nil {
			return nil, err
		}
	}
	if req.EndDate != nil {
		if period.EndDate, err = dto.ParseDate("endDate", *req.EndDate); err != nil {
			return nil, err
		}
	}
	if err := validatePeriodBounds(period.StartDate, period.EndDate); err != nil {
		return nil, err
	}
	if err := s.checkOverlap(ctx, organizationID, period.StartDate, period.EndDate, period.PeriodID); err != nil {
		return nil, err
	}
	stranded, err := s.entryRepo.CountEntriesOutside(ctx, periodID, period.StartDate, period.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to count period entries: %w", err)
	}
	if stranded > 0 {
		return nil, &apperrors.StateError{
			Resource: "accountingPeriod",
			ID:       periodID,
			State:    "referenced",
			Message:  fmt.Sprintf("%d journal entries would fall outside the new dates", stranded),
		}
	}

	now := s.Now()
	activate := req.IsActive != nil && *req.IsActive && !period.IsActive
	if req.IsActive != nil && !*req.IsActive {
		period.IsActive = false
	}
	period.LastUpdatedAt = now
	period.LastUpdatedBy = userID

	if err := s.periodRepo.UpdatePeriod(ctx, *period); err != nil {
		s.LogError(ctx, err, "Failed to update period", slog.String("period_id", periodID))
		return nil, err
	}
	if activate {
		if err := s.periodRepo.ActivatePeriod(ctx, organizationID, periodID, userID, now); err != nil {
			s.LogError(ctx, err, "Failed to activate period", slog.String("period_id", periodID))
			return nil, err
		}
		period.IsActive = true
	}

	s.LogInfo(ctx, "Accounting period updated", slog.String("period_id", periodID))
	return period, nil
}

// DeletePeriod removes a period that is inactive and unreferenced.
func (s *periodService) DeletePeriod(ctx context.Context, organizationID, periodID string) error {
	period, err := s.findOwned(ctx, organizationID, periodID)
	if err != nil {
		return err
	}
	if period.IsActive {
		return &apperrors.StateError{Resource: "accountingPeriod", ID: periodID, State: "active", Message: "an active period cannot be deleted"}
	}
	count, err := s.entryRepo.CountEntriesForPeriod(ctx, periodID)
	if err != nil {
		return fmt.Errorf("failed to count period entries: %w", err)
	}
	if count > 0 {
		return &apperrors.StateError{
			Resource: "accountingPeriod",
			ID:       periodID,
			State:    "referenced",
			Message:  fmt.Sprintf("%d journal entries reference this period", count),
		}
	}
	if err := s.periodRepo.DeletePeriod(ctx, periodID); err != nil {
		s.LogError(ctx, err, "Failed to delete period", slog.String("period_id", periodID))
		return err
	}
	s.LogInfo(ctx, "Accounting period deleted", slog.String("period_id", periodID))
	return nil
}

// ListPeriods returns the organization's periods ordered by start date.
func (s *periodService) ListPeriods(ctx context.Context, organizationID string) ([]domain.AccountingPeriod, error) {
	periods, err := s.periodRepo.ListPeriods(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list periods", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	if periods == nil {
		return []domain.AccountingPeriod{}, nil
	}
	return periods, nil
}
