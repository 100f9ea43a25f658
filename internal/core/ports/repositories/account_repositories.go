package repositories

import (
	"context"
	"time"

	"github.com/andeantrade/treasury_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves all accounts, optionally including deactivated ones.
	ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error)
}

// AccountWriter defines write operations for account metadata. Balances are
// never written through this interface except by the recompute path.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's metadata.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, actor string, now time.Time) error

	// SetAccountBalances overwrites both balances. Reserved for the recompute
	// path, which rebuilds them from the movement log.
	SetAccountBalances(ctx context.Context, accountID string, balanceUSD, balancePEN decimal.Decimal, actor string, now time.Time) error
}

// AccountTransactionSupport defines the balance mutation primitives used inside
// the ledger transaction. This is the only sanctioned balance mutator.
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks them within a transaction.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// ApplyBalanceDeltasInTx increments the per-currency balance of each
	// referenced account within the given transaction.
	ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, deltas []domain.BalanceDelta, actor string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
