package pgsql

import (
	"context"
	"database/sql"
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

const movementColumns = `movement_id, number, kind, direction, status, currency_code, amount, exchange_rate, amount_usd, amount_pen, source_account_id, destination_account_id, method, concept, reference, notes, conversion_id, related_document_id, related_document_type, movement_date, voided_at, voided_by, created_at, created_by, last_updated_at, last_updated_by`

// movementNumberPrefix is the display-number prefix for ledger movements.
const movementNumberPrefix = "MOV"

type PgxMovementRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxMovementRepository creates a new repository for movement data. The
// account repository is injected for in-transaction balance work.
func newPgxMovementRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.MovementRepositoryFacade {
	return &PgxMovementRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.MovementRepositoryFacade = (*PgxMovementRepository)(nil)

// scanMovement scans one movement row in movementColumns order.
func scanMovement(row pgx.Row) (models.Movement, error) {
	var m models.Movement
	var sourceID, destinationID, conversionID sql.NullString
	err := row.Scan(
		&m.MovementID,
		&m.Number,
		&m.Kind,
		&m.Direction,
		&m.Status,
		&m.CurrencyCode,
		&m.Amount,
		&m.ExchangeRate,
		&m.AmountUSD,
		&m.AmountPEN,
		&sourceID,
		&destinationID,
		&m.Method,
		&m.Concept,
		&m.Reference,
		&m.Notes,
		&conversionID,
		&m.RelatedDocumentID,
		&m.RelatedDocumentType,
		&m.MovementDate,
		&m.VoidedAt,
		&m.VoidedBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Movement{}, err
	}
	m.SourceAccountID = sourceID.String
	m.DestinationAccountID = destinationID.String
	m.ConversionID = conversionID.String
	return m, nil
}

// insertMovementInTx inserts a movement row within the given transaction.
func insertMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.Movement) error {
	m := mapping.ToModelMovement(movement)

	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26);
	`
	_, err := tx.Exec(ctx, query,
		m.MovementID,
		m.Number,
		m.Kind,
		m.Direction,
		m.Status,
		m.CurrencyCode,
		m.Amount,
		m.ExchangeRate,
		m.AmountUSD,
		m.AmountPEN,
		nullString(m.SourceAccountID),
		nullString(m.DestinationAccountID),
		m.Method,
		m.Concept,
		m.Reference,
		m.Notes,
		nullString(m.ConversionID),
		m.RelatedDocumentID,
		m.RelatedDocumentType,
		m.MovementDate,
		m.VoidedAt,
		m.VoidedBy,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert movement %s: %w", m.MovementID, err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// applyDeltasInTx locks the accounts a delta set touches and applies the
// deltas, in one place so every writer follows the same lock order.
func (r *PgxMovementRepository) applyDeltasInTx(ctx context.Context, tx pgx.Tx, deltas []domain.BalanceDelta, actor string, now time.Time) error {
	if len(deltas) == 0 {
		return nil
	}
	accountIDs := accountIDsFromDeltas(deltas)
	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return fmt.Errorf("failed to lock accounts for update: %w", err)
	}
	if err := r.accountRepo.ApplyBalanceDeltasInTx(ctx, tx, deltas, actor, now); err != nil {
		return fmt.Errorf("failed to apply balance deltas: %w", err)
	}
	return nil
}

// accountIDsFromDeltas collects the distinct account IDs a delta set touches,
// sorted order not required; FOR UPDATE on ANY($1) locks them in one statement.
func accountIDsFromDeltas(deltas []domain.BalanceDelta) []string {
	seen := make(map[string]bool, len(deltas))
	ids := make([]string, 0, len(deltas))
	for _, d := range deltas {
		if !seen[d.AccountID] {
			seen[d.AccountID] = true
			ids = append(ids, d.AccountID)
		}
	}
	return ids
}

// SaveMovement persists a new movement, its balance deltas and its outbox
// event as one transaction, assigning the display number from the yearly
// counter.
func (r *PgxMovementRepository) SaveMovement(ctx context.Context, movement domain.Movement, deltas []domain.BalanceDelta, event domain.LedgerEvent) (*domain.Movement, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	number, err := nextSequenceNumber(ctx, tx, movementNumberPrefix, movement.MovementDate)
	if err != nil {
		return nil, err
	}
	movement.Number = number
	event.Movement = &movement

	if err := insertMovementInTx(ctx, tx, movement); err != nil {
		return nil, err
	}
	if err := r.applyDeltasInTx(ctx, tx, deltas, movement.CreatedBy, movement.CreatedAt); err != nil {
		return nil, err
	}
	if err := appendLedgerEventInTx(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &movement, nil
}

// UpdateMovement persists an amended movement together with its correcting
// deltas and amendment events, as one transaction.
func (r *PgxMovementRepository) UpdateMovement(ctx context.Context, movement domain.Movement, deltas []domain.BalanceDelta, events []domain.LedgerEvent) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelMovement(movement)
	query := `
		UPDATE movements
		SET kind = $2, currency_code = $3, amount = $4, exchange_rate = $5,
			amount_usd = $6, amount_pen = $7, method = $8, concept = $9,
			reference = $10, notes = $11, movement_date = $12,
			last_updated_at = $13, last_updated_by = $14
		WHERE movement_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.MovementID,
		m.Kind,
		m.CurrencyCode,
		m.Amount,
		m.ExchangeRate,
		m.AmountUSD,
		m.AmountPEN,
		m.Method,
		m.Concept,
		m.Reference,
		m.Notes,
		m.MovementDate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update movement %s: %w", m.MovementID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := r.applyDeltasInTx(ctx, tx, deltas, movement.LastUpdatedBy, movement.LastUpdatedAt); err != nil {
		return err
	}
	for _, event := range events {
		if err := appendLedgerEventInTx(ctx, tx, event); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// VoidMovement transitions the movement to voided, reverses its balance effect
// and appends the void event, as one transaction.
func (r *PgxMovementRepository) VoidMovement(ctx context.Context, movement domain.Movement, deltas []domain.BalanceDelta, event domain.LedgerEvent) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE movements
		SET status = $2, voided_at = $3, voided_by = $4, last_updated_at = $5, last_updated_by = $6
		WHERE movement_id = $1 AND status != $2;
	`
	tag, err := tx.Exec(ctx, query,
		movement.MovementID,
		string(domain.MovementVoided),
		movement.VoidedAt,
		movement.VoidedBy,
		movement.LastUpdatedAt,
		movement.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to void movement %s: %w", movement.MovementID, err)
	}
	if tag.RowsAffected() == 0 {
		// Either missing or already voided; the status guard makes the void idempotent-safe
		return fmt.Errorf("%w: movement %s is not voidable", apperrors.ErrConflict, movement.MovementID)
	}

	if err := r.applyDeltasInTx(ctx, tx, deltas, movement.LastUpdatedBy, movement.LastUpdatedAt); err != nil {
		return err
	}
	if err := appendLedgerEventInTx(ctx, tx, event); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindMovementByID retrieves a movement by its ID.
func (r *PgxMovementRepository) FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE movement_id = $1;`

	m, err := scanMovement(r.Pool.QueryRow(ctx, query, movementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find movement by ID %s: %w", movementID, err)
	}
	d := mapping.ToDomainMovement(m)
	return &d, nil
}

// buildMovementListQuery assembles the filtered SELECT for ListMovements.
// Account filtering matches the source side only; recompute uses
// ListMovementsByAccount when both sides matter.
func buildMovementListQuery(filter domain.MovementListFilter) (string, []interface{}) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	addArg := func(clause string, value interface{}) {
		query += fmt.Sprintf(" AND "+clause, argPos)
		args = append(args, value)
		argPos++
	}

	if filter.Kind != "" {
		addArg("kind = $%d", string(filter.Kind))
	}
	if filter.Status != "" {
		addArg("status = $%d", string(filter.Status))
	}
	if filter.Currency != "" {
		addArg("currency_code = $%d", string(filter.Currency))
	}
	if filter.SourceAccountID != "" {
		addArg("source_account_id = $%d", filter.SourceAccountID)
	}
	if filter.From != nil {
		addArg("movement_date >= $%d", *filter.From)
	}
	if filter.To != nil {
		addArg("movement_date < $%d", *filter.To)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += fmt.Sprintf(" ORDER BY movement_date DESC, number DESC LIMIT $%d;", argPos)
	args = append(args, limit)

	return query, args
}

// ListMovements retrieves movements matching the filter, newest first.
func (r *PgxMovementRepository) ListMovements(ctx context.Context, filter domain.MovementListFilter) ([]domain.Movement, error) {
	query, args := buildMovementListQuery(filter)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	defer rows.Close()

	return collectMovements(rows)
}

// ListMovementsByAccount retrieves every movement referencing the account on
// either side, oldest first. The recompute path replays these in order.
func (r *PgxMovementRepository) ListMovementsByAccount(ctx context.Context, accountID string) ([]domain.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements
		WHERE source_account_id = $1 OR destination_account_id = $1
		ORDER BY movement_date ASC, number ASC;
	`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements for account %s: %w", accountID, err)
	}
	defer rows.Close()

	return collectMovements(rows)
}

// ListExecutedMovementsInRange retrieves executed movements dated in [from, to),
// oldest first.
func (r *PgxMovementRepository) ListExecutedMovementsInRange(ctx context.Context, from, to time.Time) ([]domain.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements
		WHERE status = $1 AND movement_date >= $2 AND movement_date < $3
		ORDER BY movement_date ASC, number ASC;
	`
	rows, err := r.Pool.Query(ctx, query, string(domain.MovementExecuted), from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list executed movements in range: %w", err)
	}
	defer rows.Close()

	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]domain.Movement, error) {
	var movements []models.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movement row: %w", err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating movement rows: %w", err)
	}
	return mapping.ToDomainMovementSlice(movements), nil
}
