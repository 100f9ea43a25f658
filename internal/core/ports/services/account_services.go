package services

import (
	"context"

	"github.com/andeantrade/treasury_backend/internal/core/domain"
	"github.com/andeantrade/treasury_backend/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts by their IDs.
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts, optionally including deactivated ones.
	ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actorID string) (*domain.Account, error)

	// UpdateAccount updates an existing account's metadata. Balances are not
	// touched here; they only move through movements and recompute.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, actorID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, actorID string) error
}

// AccountCalculatorSvc defines balance reconstruction operations
type AccountCalculatorSvc interface {
	// RecomputeBalance rebuilds an account's balances from its initial values
	// by replaying every executed movement that touches it.
	RecomputeBalance(ctx context.Context, accountID string, actorID string) (*domain.RecomputeResult, error)

	// RecomputeAllBalances runs RecomputeBalance over every account,
	// collecting per-account failures without aborting the batch.
	RecomputeAllBalances(ctx context.Context, actorID string) (*domain.RecomputeBatchResult, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountCalculatorSvc
}
