package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const periodColumns = `period_id, organization_id, name, start_date, end_date, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxPeriodRepository struct {
	BaseRepository
}

func newPgxPeriodRepository(pool *pgxpool.Pool) *PgxPeriodRepository {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

// queryOptional returns nil without error when no row matches.
func (r *PgxPeriodRepository) queryOptional(ctx context.Context, query string, args ...any) (*domain.AccountingPeriod, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounting period: %w", err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.AccountingPeriod])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan accounting period: %w", err)
	}
	p := mapping.ToDomainPeriod(m)
	return &p, nil
}

func (r *PgxPeriodRepository) FindPeriodForDate(ctx context.Context, organizationID string, date time.Time) (*domain.AccountingPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM accounting_periods
		WHERE organization_id = $1 AND start_date <= $2 AND end_date >= $2
		LIMIT 1;
	`
	return r.queryOptional(ctx, query, organizationID, domain.TruncateDate(date))
}

func (r *PgxPeriodRepository) FindOverlapping(ctx context.Context, organizationID string, start, end time.Time, excludeID string) (*domain.AccountingPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM accounting_periods
		WHERE organization_id = $1 AND start_date <= $3 AND end_date >= $2 AND period_id <> $4
		ORDER BY start_date
		LIMIT 1;
	`
	return r.queryOptional(ctx, query, organizationID, domain.TruncateDate(start), domain.TruncateDate(end), excludeID)
}

func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	p, err := r.queryOptional(ctx, `SELECT `+periodColumns+` FROM accounting_periods WHERE period_id = $1;`, periodID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperrors.NewNotFoundError("accountingPeriod", periodID)
	}
	return p, nil
}

func (r *PgxPeriodRepository) ListPeriods(ctx context.Context, organizationID string) ([]domain.AccountingPeriod, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+periodColumns+` FROM accounting_periods WHERE organization_id = $1 ORDER BY start_date;`, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounting periods: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AccountingPeriod])
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounting periods: %w", err)
	}
	out := make([]domain.AccountingPeriod, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainPeriod(m)
	}
	return out, nil
}

// SavePeriod inserts a period. The exclusion constraint backs the service's overlap check.
func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	m := mapping.ToModelPeriod(period)
	query := `INSERT INTO accounting_periods (` + periodColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`
	_, err := r.Pool.Exec(ctx, query,
		m.PeriodID, m.OrganizationID, m.Name, m.StartDate, m.EndDate, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save accounting period %s: %w", m.Name, mapPgError(err, "accountingPeriod", m.PeriodID))
	}
	return nil
}

func (r *PgxPeriodRepository) UpdatePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	m := mapping.ToModelPeriod(period)
	query := `
		UPDATE accounting_periods
		SET name = $2, start_date = $3, end_date = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE period_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, m.PeriodID, m.Name, m.StartDate, m.EndDate, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update accounting period %s: %w", m.PeriodID, mapPgError(err, "accountingPeriod", m.PeriodID))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("accountingPeriod", m.PeriodID)
	}
	return nil
}

func (r *PgxPeriodRepository) DeletePeriod(ctx context.Context, periodID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM accounting_periods WHERE period_id = $1;`, periodID)
	if err != nil {
		return fmt.Errorf("failed to delete accounting period %s: %w", periodID, mapPgError(err, "accountingPeriod", periodID))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("accountingPeriod", periodID)
	}
	return nil
}

// ActivatePeriod clears the active flag before setting it, since the partial
// unique index allows only one active period per organization at any moment.
func (r *PgxPeriodRepository) ActivatePeriod(ctx context.Context, organizationID, periodID, userID string, now time.Time) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			UPDATE accounting_periods
			SET is_active = FALSE, last_updated_at = $3, last_updated_by = $4
			WHERE organization_id = $1 AND is_active AND period_id <> $2;
		`, organizationID, periodID, now, userID)
		if err != nil {
			return fmt.Errorf("failed to deactivate periods: %w", err)
		}
		tag, err := tx.Exec(ctx, `
			UPDATE accounting_periods
			SET is_active = TRUE, last_updated_at = $3, last_updated_by = $4
			WHERE organization_id = $1 AND period_id = $2;
		`, organizationID, periodID, now, userID)
		if err != nil {
			return fmt.Errorf("failed to activate period %s: %w", periodID, mapPgError(err, "accountingPeriod", periodID))
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewNotFoundError("accountingPeriod", periodID)
		}
		return nil
	})
}
