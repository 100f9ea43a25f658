package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/andeantrade/treasury_backend/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// nextSequenceNumber claims the next value of a yearly counter inside the
// given transaction and formats it as PREFIX-YYYY-NNNN. The upsert keeps the
// claim atomic under concurrent writers; the row lock it takes serializes
// number assignment per counter.
func nextSequenceNumber(ctx context.Context, tx pgx.Tx, prefix string, at time.Time) (string, error) {
	year := at.UTC().Year()
	counterKey := fmt.Sprintf("%s-%d", prefix, year)

	query := `
		INSERT INTO sequence_counters (counter_key, value)
		VALUES ($1, 1)
		ON CONFLICT (counter_key) DO UPDATE SET value = sequence_counters.value + 1
		RETURNING value;
	`
	var value int64
	if err := tx.QueryRow(ctx, query, counterKey).Scan(&value); err != nil {
		return "", fmt.Errorf("failed to claim sequence number for %s: %w", counterKey, err)
	}
	return fmt.Sprintf("%s-%d-%04d", prefix, year, value), nil
}
