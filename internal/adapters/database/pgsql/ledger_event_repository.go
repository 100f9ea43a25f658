package pgsql

import (
	"context"
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

const ledgerEventColumns = `event_id, event_type, payload, created_at, created_by, processed_at, attempts, last_error`

type PgxLedgerEventRepository struct {
	BaseRepository
}

// newPgxLedgerEventRepository creates a new repository for outbox events.
func newPgxLedgerEventRepository(pool *pgxpool.Pool) portsrepo.LedgerEventRepository {
	return &PgxLedgerEventRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerEventRepository = (*PgxLedgerEventRepository)(nil)

// appendLedgerEventInTx appends an outbox row within the ledger transaction.
// The movement and conversion writers call this so the event commits or rolls
// back together with the record it describes.
func appendLedgerEventInTx(ctx context.Context, tx pgx.Tx, event domain.LedgerEvent) error {
	m, err := mapping.ToModelLedgerEvent(event)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO ledger_events (` + ledgerEventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, query,
		m.EventID,
		m.EventType,
		m.Payload,
		m.CreatedAt,
		m.CreatedBy,
		m.ProcessedAt,
		m.Attempts,
		m.LastError,
	)
	if err != nil {
		return fmt.Errorf("failed to append ledger event %s: %w", m.EventID, err)
	}
	return nil
}

// ListPending returns unprocessed events in creation order, up to limit.
func (r *PgxLedgerEventRepository) ListPending(ctx context.Context, limit int) ([]domain.LedgerEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT ` + ledgerEventColumns + `
		FROM ledger_events
		WHERE processed_at IS NULL
		ORDER BY created_at ASC, event_id ASC
		LIMIT $1;
	`
	rows, err := r.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending ledger events: %w", err)
	}
	defer rows.Close()

	var events []domain.LedgerEvent
	for rows.Next() {
		var m models.LedgerEvent
		err := rows.Scan(
			&m.EventID,
			&m.EventType,
			&m.Payload,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.ProcessedAt,
			&m.Attempts,
			&m.LastError,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger event row: %w", err)
		}
		event, err := mapping.ToDomainLedgerEvent(m)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger event rows: %w", err)
	}
	return events, nil
}

// MarkProcessed settles an event after its aggregation delta was applied.
func (r *PgxLedgerEventRepository) MarkProcessed(ctx context.Context, eventID string, at time.Time) error {
	query := `
		UPDATE ledger_events
		SET processed_at = $2, last_error = ''
		WHERE event_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, eventID, at)
	if err != nil {
		return fmt.Errorf("failed to mark ledger event %s processed: %w", eventID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkFailed records a processing failure, leaving the event pending for retry.
func (r *PgxLedgerEventRepository) MarkFailed(ctx context.Context, eventID string, lastError string) error {
	query := `
		UPDATE ledger_events
		SET attempts = attempts + 1, last_error = $2
		WHERE event_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, eventID, lastError)
	if err != nil {
		return fmt.Errorf("failed to mark ledger event %s failed: %w", eventID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
