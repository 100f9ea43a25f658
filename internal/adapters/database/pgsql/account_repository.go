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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, name, holder_name, kind, dual_currency, currency_code, balance_usd, balance_pen, initial_usd, initial_pen, bank_name, account_number, minimum_balance, default_for_method, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements the facade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// scanAccount scans one account row in accountColumns order.
func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	var currencyCode sql.NullString
	err := row.Scan(
		&m.AccountID,
		&m.Name,
		&m.HolderName,
		&m.Kind,
		&m.DualCurrency,
		&currencyCode,
		&m.BalanceUSD,
		&m.BalancePEN,
		&m.InitialUSD,
		&m.InitialPEN,
		&m.BankName,
		&m.AccountNumber,
		&m.MinimumBalance,
		&m.DefaultForMethod,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Account{}, err
	}
	if currencyCode.Valid {
		m.CurrencyCode = currencyCode.String
	}
	return m, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	// Dual-currency accounts store NULL currency_code
	var currencyCode sql.NullString
	if m.CurrencyCode != "" {
		currencyCode = sql.NullString{String: m.CurrencyCode, Valid: true}
	}

	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Name,
		m.HolderName,
		m.Kind,
		m.DualCurrency,
		currencyCode,
		m.BalanceUSD,
		m.BalancePEN,
		m.InitialUSD,
		m.InitialPEN,
		m.BankName,
		m.AccountNumber,
		m.MinimumBalance,
		m.DefaultForMethod,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, m.AccountID)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`

	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accountsMap[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accountsMap, nil
}

// ListAccounts retrieves all accounts, active ones first by name.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts`
	if !includeInactive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY is_active DESC, name ASC;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return mapping.ToDomainAccountSlice(accounts), nil
}

// UpdateAccount updates an existing account's metadata. Balance columns are
// not written here.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		UPDATE accounts
		SET name = $2, holder_name = $3, kind = $4, currency_code = $5,
			bank_name = $6, account_number = $7, minimum_balance = $8,
			default_for_method = $9, is_active = $10,
			last_updated_at = $11, last_updated_by = $12
		WHERE account_id = $1;
	`
	var currencyCode sql.NullString
	if m.CurrencyCode != "" {
		currencyCode = sql.NullString{String: m.CurrencyCode, Valid: true}
	}

	tag, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Name,
		m.HolderName,
		m.Kind,
		currencyCode,
		m.BankName,
		m.AccountNumber,
		m.MinimumBalance,
		m.DefaultForMethod,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", m.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateAccount marks an account as inactive.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, actor string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, now, actor)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetAccountBalances overwrites both balance columns. Only the recompute path
// calls this.
func (r *PgxAccountRepository) SetAccountBalances(ctx context.Context, accountID string, balanceUSD, balancePEN decimal.Decimal, actor string, now time.Time) error {
	query := `
		UPDATE accounts
		SET balance_usd = $2, balance_pen = $3, last_updated_at = $4, last_updated_by = $5
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, balanceUSD, balancePEN, now, actor)
	if err != nil {
		return fmt.Errorf("failed to set balances for account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindAccountsByIDsForUpdate selects accounts with FOR UPDATE locks within the
// given transaction. Returns ErrNotFound if any requested account is missing.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1) FOR UPDATE;`

	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		accountsMap[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked account rows: %w", err)
	}

	for _, id := range accountIDs {
		if _, ok := accountsMap[id]; !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}
	return accountsMap, nil
}

// ApplyBalanceDeltasInTx increments the per-currency balance of each referenced
// account within the given transaction. Callers must hold the account locks.
func (r *PgxAccountRepository) ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, deltas []domain.BalanceDelta, actor string, now time.Time) error {
	usdQuery := `
		UPDATE accounts
		SET balance_usd = balance_usd + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	penQuery := `
		UPDATE accounts
		SET balance_pen = balance_pen + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	for _, delta := range deltas {
		query := usdQuery
		if delta.Currency == domain.CurrencyPEN {
			query = penQuery
		}
		tag, err := tx.Exec(ctx, query, delta.AccountID, delta.Amount, now, actor)
		if err != nil {
			return fmt.Errorf("failed to apply balance delta to account %s: %w", delta.AccountID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, delta.AccountID)
		}
	}
	return nil
}
