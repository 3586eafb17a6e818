package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// CreatePeriodRequest defines the data needed to open an accounting period.
type CreatePeriodRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	StartDate string `json:"startDate" binding:"required,isodate"`
	EndDate   string `json:"endDate" binding:"required,isodate"`
	IsActive  bool   `json:"isActive"`
}

// UpdatePeriodRequest defines the fields that may change on a period.
// Pointers distinguish between zero-value updates and fields not provided.
type UpdatePeriodRequest struct {
	Name      *string `json:"name" binding:"omitempty,max=100"`
	StartDate *string `json:"startDate" binding:"omitempty,isodate"`
	EndDate   *string `json:"endDate" binding:"omitempty,isodate"`
	IsActive  *bool   `json:"isActive"`
}

// PeriodResponse defines the data returned for an accounting period.
type PeriodResponse struct {
	PeriodID       string    `json:"periodID"`
	OrganizationID string    `json:"organizationID"`
	Name           string    `json:"name"`
	StartDate      string    `json:"startDate"`
	EndDate        string    `json:"endDate"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      string    `json:"createdBy"`
}

// ToPeriodResponse converts a domain.AccountingPeriod to PeriodResponse DTO
func ToPeriodResponse(p *domain.AccountingPeriod) PeriodResponse {
	return PeriodResponse{
		PeriodID:       p.PeriodID,
		OrganizationID: p.OrganizationID,
		Name:           p.Name,
		StartDate:      p.StartDate.Format(DateLayout),
		EndDate:        p.EndDate.Format(DateLayout),
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
		CreatedBy:      p.CreatedBy,
	}
}

// ToPeriodResponses converts a slice of periods.
func ToPeriodResponses(periods []domain.AccountingPeriod) []PeriodResponse {
	out := make([]PeriodResponse, len(periods))
	for i := range periods {
		out[i] = ToPeriodResponse(&periods[i])
	}
	return out
}
