package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/andeantrade/treasury_backend/internal/apperrors"
	"github.com/andeantrade/treasury_backend/internal/core/domain"
	portsrepo "github.com/andeantrade/treasury_backend/internal/core/ports/repositories"
	"github.com/andeantrade/treasury_backend/internal/models"
	"github.com/andeantrade/treasury_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSnapshotRepository struct {
	BaseRepository
}

// newPgxSnapshotRepository creates the repository for the singleton treasury
// snapshot row.
func newPgxSnapshotRepository(pool *pgxpool.Pool) portsrepo.SnapshotRepository {
	return &PgxSnapshotRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.SnapshotRepository = (*PgxSnapshotRepository)(nil)

// FindSnapshot returns the snapshot, or ErrNotFound before initialization.
func (r *PgxSnapshotRepository) FindSnapshot(ctx context.Context) (*domain.TreasurySnapshot, error) {
	query := `
		SELECT id, total_usd, total_pen, total_equivalent_pen, reference_rate,
			current_month_key, current_month, months, year_to_date, updated_at, updated_by
		FROM treasury_snapshot
		WHERE id = 1;
	`
	var m models.TreasurySnapshot
	err := r.Pool.QueryRow(ctx, query).Scan(
		&m.ID,
		&m.TotalUSD,
		&m.TotalPEN,
		&m.TotalEquivalentPEN,
		&m.ReferenceRate,
		&m.CurrentMonthKey,
		&m.CurrentMonth,
		&m.Months,
		&m.YearToDate,
		&m.UpdatedAt,
		&m.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read treasury snapshot: %w", err)
	}

	d, err := mapping.ToDomainSnapshot(m)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// SaveSnapshot overwrites the singleton row, creating it on first save.
func (r *PgxSnapshotRepository) SaveSnapshot(ctx context.Context, snapshot domain.TreasurySnapshot) error {
	m, err := mapping.ToModelSnapshot(snapshot)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO treasury_snapshot (id, total_usd, total_pen, total_equivalent_pen, reference_rate, current_month_key, current_month, months, year_to_date, updated_at, updated_by)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			total_usd = EXCLUDED.total_usd,
			total_pen = EXCLUDED.total_pen,
			total_equivalent_pen = EXCLUDED.total_equivalent_pen,
			reference_rate = EXCLUDED.reference_rate,
			current_month_key = EXCLUDED.current_month_key,
			current_month = EXCLUDED.current_month,
			months = EXCLUDED.months,
			year_to_date = EXCLUDED.year_to_date,
			updated_at = EXCLUDED.updated_at,
			updated_by = EXCLUDED.updated_by;
	`
	_, err = r.Pool.Exec(ctx, query,
		m.TotalUSD,
		m.TotalPEN,
		m.TotalEquivalentPEN,
		m.ReferenceRate,
		m.CurrentMonthKey,
		m.CurrentMonth,
		m.Months,
		m.YearToDate,
		m.UpdatedAt,
		m.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save treasury snapshot: %w", err)
	}
	return nil
}
