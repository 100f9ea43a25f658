package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andeantrade/treasury_backend/internal/apperrors"
	"github.com/andeantrade/treasury_backend/internal/core/domain"
	portsrepo "github.com/andeantrade/treasury_backend/internal/core/ports/repositories"
	"github.com/andeantrade/treasury_backend/internal/models"
	"github.com/andeantrade/treasury_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const conversionColumns = `conversion_id, number, origin_currency, destination_currency, origin_amount, destination_amount, applied_rate, reference_rate, spread_percent, difference_vs_reference, source_account_id, destination_account_id, entity, motive, notes, conversion_date, created_at, created_by, last_updated_at, last_updated_by`

// conversionNumberPrefix is the display-number prefix for conversions.
const conversionNumberPrefix = "CNV"

type PgxConversionRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxConversionRepository creates a new repository for conversion data.
func newPgxConversionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.ConversionRepositoryFacade {
	return &PgxConversionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.ConversionRepositoryFacade = (*PgxConversionRepository)(nil)

// scanConversion scans one conversion row in conversionColumns order.
func scanConversion(row pgx.Row) (models.Conversion, error) {
	var m models.Conversion
	var sourceID, destinationID *string
	err := row.Scan(
		&m.ConversionID,
		&m.Number,
		&m.OriginCurrency,
		&m.DestinationCurrency,
		&m.OriginAmount,
		&m.DestinationAmount,
		&m.AppliedRate,
		&m.ReferenceRate,
		&m.SpreadPercent,
		&m.DifferenceVsReference,
		&sourceID,
		&destinationID,
		&m.Entity,
		&m.Motive,
		&m.Notes,
		&m.ConversionDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Conversion{}, err
	}
	if sourceID != nil {
		m.SourceAccountID = *sourceID
	}
	if destinationID != nil {
		m.DestinationAccountID = *destinationID
	}
	return m, nil
}

// SaveConversion persists the conversion, its movement legs, the balance
// deltas and the outbox events as one transaction. Display numbers for the
// conversion and each leg come from the yearly counters.
func (r *PgxConversionRepository) SaveConversion(ctx context.Context, conversion domain.Conversion, legs []domain.Movement, deltas []domain.BalanceDelta, events []domain.LedgerEvent) (*domain.Conversion, []domain.Movement, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	number, err := nextSequenceNumber(ctx, tx, conversionNumberPrefix, conversion.ConversionDate)
	if err != nil {
		return nil, nil, err
	}
	conversion.Number = number

	m := mapping.ToModelConversion(conversion)
	query := `
		INSERT INTO conversions (` + conversionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err = tx.Exec(ctx, query,
		m.ConversionID,
		m.Number,
		m.OriginCurrency,
		m.DestinationCurrency,
		m.OriginAmount,
		m.DestinationAmount,
		m.AppliedRate,
		m.ReferenceRate,
		m.SpreadPercent,
		m.DifferenceVsReference,
		nullString(m.SourceAccountID),
		nullString(m.DestinationAccountID),
		m.Entity,
		m.Motive,
		m.Notes,
		m.ConversionDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to insert conversion %s: %w", m.ConversionID, err)
	}

	for i := range legs {
		legNumber, err := nextSequenceNumber(ctx, tx, movementNumberPrefix, legs[i].MovementDate)
		if err != nil {
			return nil, nil, err
		}
		legs[i].Number = legNumber
		if err := insertMovementInTx(ctx, tx, legs[i]); err != nil {
			return nil, nil, err
		}
	}

	if len(deltas) > 0 {
		accountIDs := accountIDsFromDeltas(deltas)
		if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
			return nil, nil, fmt.Errorf("failed to lock accounts for update: %w", err)
		}
		if err := r.accountRepo.ApplyBalanceDeltasInTx(ctx, tx, deltas, conversion.CreatedBy, conversion.CreatedAt); err != nil {
			return nil, nil, fmt.Errorf("failed to apply balance deltas: %w", err)
		}
	}

	// Re-point event payloads at the numbered records before appending
	for _, event := range events {
		if event.Conversion != nil {
			event.Conversion = &conversion
		}
		if event.Movement != nil {
			for i := range legs {
				if legs[i].MovementID == event.Movement.MovementID {
					event.Movement = &legs[i]
					break
				}
			}
		}
		if err := appendLedgerEventInTx(ctx, tx, event); err != nil {
			return nil, nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}
	return &conversion, legs, nil
}

// FindConversionByID retrieves a conversion by its ID.
func (r *PgxConversionRepository) FindConversionByID(ctx context.Context, conversionID string) (*domain.Conversion, error) {
	query := `SELECT ` + conversionColumns + ` FROM conversions WHERE conversion_id = $1;`

	m, err := scanConversion(r.Pool.QueryRow(ctx, query, conversionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find conversion by ID %s: %w", conversionID, err)
	}
	d := mapping.ToDomainConversion(m)
	return &d, nil
}

// ListConversions retrieves conversions matching the filter, newest first.
func (r *PgxConversionRepository) ListConversions(ctx context.Context, filter domain.ConversionListFilter) ([]domain.Conversion, error) {
	query := `SELECT ` + conversionColumns + ` FROM conversions WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	addArg := func(clause string, value interface{}) {
		query += fmt.Sprintf(" AND "+clause, argPos)
		args = append(args, value)
		argPos++
	}

	if filter.OriginCurrency != "" {
		addArg("origin_currency = $%d", string(filter.OriginCurrency))
	}
	if filter.Entity != "" {
		addArg("entity = $%d", filter.Entity)
	}
	if filter.From != nil {
		addArg("conversion_date >= $%d", *filter.From)
	}
	if filter.To != nil {
		addArg("conversion_date < $%d", *filter.To)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += fmt.Sprintf(" ORDER BY conversion_date DESC, number DESC LIMIT $%d;", argPos)
	args = append(args, limit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversions: %w", err)
	}
	defer rows.Close()

	return collectConversions(rows)
}

// ListConversionsInRange retrieves conversions dated in [from, to), oldest first.
func (r *PgxConversionRepository) ListConversionsInRange(ctx context.Context, from, to time.Time) ([]domain.Conversion, error) {
	query := `
		SELECT ` + conversionColumns + `
		FROM conversions
		WHERE conversion_date >= $1 AND conversion_date < $2
		ORDER BY conversion_date ASC, number ASC;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversions in range: %w", err)
	}
	defer rows.Close()

	return collectConversions(rows)
}

func collectConversions(rows pgx.Rows) ([]domain.Conversion, error) {
	var conversions []models.Conversion
	for rows.Next() {
		m, err := scanConversion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan conversion row: %w", err)
		}
		conversions = append(conversions, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating conversion rows: %w", err)
	}
	return mapping.ToDomainConversionSlice(conversions), nil
}
