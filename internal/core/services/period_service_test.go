package services_test

import (
	"testing"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestPeriodService_CreateRejectsOverlap(t *testing.T) {
	f := newFixture(t, nil)
	periods, err := f.periods.ListPeriods(f.ctx, orgID)
	require.NoError(t, err)
	require.Len(t, periods, 1)
	fy := periods[0]

	tests := []struct {
		name     string
		req      dto.CreatePeriodRequest
		conflict bool
		wantErr  error
	}{
		{name: "inside", req: dto.CreatePeriodRequest{Name: "March", StartDate: "2024-03-01", EndDate: "2024-03-31"}, conflict: true},
		{name: "touches last day", req: dto.CreatePeriodRequest{Name: "Straddle", StartDate: "2024-12-31", EndDate: "2025-01-31"}, conflict: true},
		{name: "adjacent", req: dto.CreatePeriodRequest{Name: "FY2025", StartDate: "2025-01-01", EndDate: "2025-12-31"}},
		{name: "end before start", req: dto.CreatePeriodRequest{Name: "Bad", StartDate: "2026-02-01", EndDate: "2026-01-01"}, wantErr: apperrors.ErrValidation},
		{name: "zero length", req: dto.CreatePeriodRequest{Name: "Day", StartDate: "2026-02-01", EndDate: "2026-02-01"}, wantErr: apperrors.ErrValidation},
		{name: "bad date", req: dto.CreatePeriodRequest{Name: "Bad", StartDate: "2026-13-01", EndDate: "2026-12-31"}, wantErr: apperrors.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := f.periods.CreatePeriod(f.ctx, orgID, tt.req, userID)
			switch {
			case tt.conflict:
				var conflict *apperrors.ConflictError
				require.ErrorAs(t, err, &conflict)
				assert.Equal(t, fy.PeriodID, conflict.ExistingID)
				assert.Contains(t, conflict.Error(), "FY2024")
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				require.NoError(t, err)
				assert.False(t, p.IsActive)
			}
		})
	}
}

func TestPeriodService_ActivationIsExclusive(t *testing.T) {
	f := newFixture(t, nil)
	next, err := f.periods.CreatePeriod(f.ctx, orgID, dto.CreatePeriodRequest{
		Name: "FY2025", StartDate: "2025-01-01", EndDate: "2025-12-31", IsActive: true,
	}, userID)
	require.NoError(t, err)
	assert.True(t, next.IsActive)

	periods, err := f.periods.ListPeriods(f.ctx, orgID)
	require.NoError(t, err)
	require.Len(t, periods, 2)
	assert.Equal(t, "FY2024", periods[0].Name)
	assert.False(t, periods[0].IsActive)
	assert.True(t, periods[1].IsActive)
}

func TestPeriodService_Update(t *testing.T) {
	f := newFixture(t, nil)
	q1, err := f.periods.CreatePeriod(f.ctx, orgID, dto.CreatePeriodRequest{
		Name: "Q1 2025", StartDate: "2025-01-01", EndDate: "2025-03-31",
	}, userID)
	require.NoError(t, err)

	// Moving onto FY2024 is rejected; changing its own dates is not an overlap with itself.
	_, err = f.periods.UpdatePeriod(f.ctx, orgID, q1.PeriodID, dto.UpdatePeriodRequest{StartDate: strPtr("2024-12-01")}, userID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	updated, err := f.periods.UpdatePeriod(f.ctx, orgID, q1.PeriodID, dto.UpdatePeriodRequest{
		Name:    strPtr("Q1-Q2 2025"),
		EndDate: strPtr("2025-06-30"),
	}, userID)
	require.NoError(t, err)
	assert.Equal(t, "Q1-Q2 2025", updated.Name)
	assert.Equal(t, date("2025-06-30"), updated.EndDate)

	updated, err = f.periods.UpdatePeriod(f.ctx, orgID, q1.PeriodID, dto.UpdatePeriodRequest{IsActive: boolPtr(true)}, userID)
	require.NoError(t, err)
	assert.True(t, updated.IsActive)

	_, err = f.periods.UpdatePeriod(f.ctx, "org-2", q1.PeriodID, dto.UpdatePeriodRequest{Name: strPtr("x")}, userID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPeriodService_UpdateKeepsEntriesInside(t *testing.T) {
	f := newFixture(t, nil)
	periods, err := f.periods.ListPeriods(f.ctx, orgID)
	require.NoError(t, err)
	fy := periods[0]
	f.post("2024-11-15", "1000", "4000", "250.00", domain.Approved)

	_, err = f.periods.UpdatePeriod(f.ctx, orgID, fy.PeriodID, dto.UpdatePeriodRequest{EndDate: strPtr("2024-06-30")}, userID)
	require.ErrorIs(t, err, apperrors.ErrInvalidState)
	var stateErr *apperrors.StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, fy.PeriodID, stateErr.ID)
	assert.Contains(t, stateErr.Message, "1 journal entries")

	periods, err = f.periods.ListPeriods(f.ctx, orgID)
	require.NoError(t, err)
	assert.Equal(t, date("2024-12-31"), periods[0].EndDate)

	// Shrinking toward the entry is fine as long as it stays inside.
	updated, err := f.periods.UpdatePeriod(f.ctx, orgID, fy.PeriodID, dto.UpdatePeriodRequest{EndDate: strPtr("2024-11-15")}, userID)
	require.NoError(t, err)
	assert.Equal(t, date("2024-11-15"), updated.EndDate)
}

func TestPeriodService_Delete(t *testing.T) {
	f := newFixture(t, nil)
	periods, err := f.periods.ListPeriods(f.ctx, orgID)
	require.NoError(t, err)
	fy := periods[0]

	err = f.periods.DeletePeriod(f.ctx, orgID, fy.PeriodID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState, "active period")

	next, err := f.periods.CreatePeriod(f.ctx, orgID, dto.CreatePeriodRequest{
		Name: "FY2025", StartDate: "2025-01-01", EndDate: "2025-12-31", IsActive: true,
	}, userID)
	require.NoError(t, err)

	f.post("2024-05-01", "1000", "4000", "10.00", domain.Draft)
	err = f.periods.DeletePeriod(f.ctx, orgID, fy.PeriodID)
	var stateErr *apperrors.StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, "referenced", stateErr.State)

	_, err = f.periods.UpdatePeriod(f.ctx, orgID, next.PeriodID, dto.UpdatePeriodRequest{IsActive: boolPtr(false)}, userID)
	require.NoError(t, err)
	require.NoError(t, f.periods.DeletePeriod(f.ctx, orgID, next.PeriodID))

	periods, err = f.periods.ListPeriods(f.ctx, orgID)
	require.NoError(t, err)
	assert.Len(t, periods, 1)
}
