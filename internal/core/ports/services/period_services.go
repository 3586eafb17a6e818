package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// PeriodSvcFacade manages accounting periods.
type PeriodSvcFacade interface {
	// CreatePeriod opens a period. Overlap with an existing period of the
	// organization is an apperrors.ConflictError naming that period.
	CreatePeriod(ctx context.Context, organizationID string, req dto.CreatePeriodRequest, userID string) (*domain.AccountingPeriod, error)

	// UpdatePeriod changes name, dates or the active flag, re-checking overlap
	// against every other period.
	UpdatePeriod(ctx context.Context, organizationID, periodID string, req dto.UpdatePeriodRequest, userID string) (*domain.AccountingPeriod, error)

	// DeletePeriod removes a period that is neither active nor referenced by entries.
	DeletePeriod(ctx context.Context, organizationID, periodID string) error

	ListPeriods(ctx context.Context, organizationID string) ([]domain.AccountingPeriod, error)
}
