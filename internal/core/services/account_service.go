package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/andeantrade/treasury_backend/internal/apperrors"
	"github.com/andeantrade/treasury_backend/internal/core/domain"
	portsrepo "github.com/andeantrade/treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/andeantrade/treasury_backend/internal/core/ports/services"
	"github.com/andeantrade/treasury_backend/internal/dto"
	"github.com/google/uuid"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo  portsrepo.AccountRepositoryFacade
	movementRepo portsrepo.MovementReader
}

// NewAccountService creates a new account service. The movement reader serves
// the balance recompute path.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, movementRepo portsrepo.MovementReader) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:  accountRepo,
		movementRepo: movementRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount validates and persists a new account. The holder name is
// mandatory; a single-currency account must state its currency.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actorID string) (*domain.Account, error) {
	if strings.TrimSpace(req.HolderName) == "" {
		return nil, fmt.Errorf("%w: holder name is required", apperrors.ErrValidation)
	}
	if !req.DualCurrency && !req.CurrencyCode.Valid() {
		return nil, fmt.Errorf("%w: single-currency account requires a valid currency code", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:        uuid.NewString(),
		Name:             req.Name,
		HolderName:       strings.TrimSpace(req.HolderName),
		Kind:             req.Kind,
		DualCurrency:     req.DualCurrency,
		BankName:         req.BankName,
		AccountNumber:    req.AccountNumber,
		MinimumBalance:   req.MinimumBalance,
		DefaultForMethod: req.DefaultForMethod,
		IsActive:         true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	// Opening balances seed both the live balance and the recompute base
	if req.DualCurrency {
		account.InitialUSD = req.InitialUSD
		account.InitialPEN = req.InitialPEN
	} else {
		account.CurrencyCode = req.CurrencyCode
		if req.CurrencyCode == domain.CurrencyUSD {
			account.InitialUSD = req.InitialBalance
		} else {
			account.InitialPEN = req.InitialBalance
		}
	}
	account.BalanceUSD = account.InitialUSD
	account.BalancePEN = account.InitialPEN

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("kind", string(account.Kind)))
	return &account, nil
}

// GetAccountByID retrieves a specific account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// GetAccountsByIDs retrieves multiple accounts keyed by ID.
func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
}

// ListAccounts retrieves accounts, optionally including deactivated ones.
func (s *accountService) ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, includeInactive)
}

// UpdateAccount patches an account's metadata. Balance fields are untouchable
// here; they only change through the ledger or a recompute.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, actorID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.HolderName != nil {
		if strings.TrimSpace(*req.HolderName) == "" {
			return nil, fmt.Errorf("%w: holder name cannot be emptied", apperrors.ErrValidation)
		}
		account.HolderName = strings.TrimSpace(*req.HolderName)
	}
	if req.Kind != nil {
		account.Kind = *req.Kind
	}
	if req.CurrencyCode != nil {
		if account.DualCurrency {
			return nil, fmt.Errorf("%w: dual-currency account has no single currency", apperrors.ErrValidation)
		}
		if !req.CurrencyCode.Valid() {
			return nil, fmt.Errorf("%w: invalid currency code", apperrors.ErrValidation)
		}
		account.CurrencyCode = *req.CurrencyCode
	}
	if req.BankName != nil {
		account.BankName = *req.BankName
	}
	if req.AccountNumber != nil {
		account.AccountNumber = *req.AccountNumber
	}
	if req.MinimumBalance != nil {
		account.MinimumBalance = *req.MinimumBalance
	}
	if req.DefaultForMethod != nil {
		account.DefaultForMethod = *req.DefaultForMethod
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = actorID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

// DeactivateAccount marks an account as inactive. Its history stays intact and
// its balances stop counting toward the treasury totals.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, actorID string) error {
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, actorID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return err
	}
	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}

// RecomputeBalance rebuilds an account's balances by replaying every executed
// movement over its opening balances. Voided movements are skipped, so the
// result equals initial plus the sum of live deltas.
func (s *accountService) RecomputeBalance(ctx context.Context, accountID string, actorID string) (*domain.RecomputeResult, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	movements, err := s.movementRepo.ListMovementsByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load movements for recompute: %w", err)
	}

	newUSD := account.InitialUSD
	newPEN := account.InitialPEN
	replayed := 0
	for _, m := range movements {
		if m.Status != domain.MovementExecuted {
			continue
		}
		for _, delta := range m.BalanceDeltas(false) {
			if delta.AccountID != accountID {
				continue
			}
			if delta.Currency == domain.CurrencyUSD {
				newUSD = newUSD.Add(delta.Amount)
			} else {
				newPEN = newPEN.Add(delta.Amount)
			}
		}
		replayed++
	}

	result := &domain.RecomputeResult{
		AccountID:         accountID,
		OldBalanceUSD:     account.BalanceUSD,
		NewBalanceUSD:     newUSD,
		OldBalancePEN:     account.BalancePEN,
		NewBalancePEN:     newPEN,
		MovementsReplayed: replayed,
		Changed:           !newUSD.Equal(account.BalanceUSD) || !newPEN.Equal(account.BalancePEN),
	}

	if result.Changed {
		if err := s.accountRepo.SetAccountBalances(ctx, accountID, newUSD, newPEN, actorID, time.Now().UTC()); err != nil {
			return nil, fmt.Errorf("failed to store recomputed balances: %w", err)
		}
		s.LogWarn(ctx, "Recompute corrected account balances",
			slog.String("account_id", accountID),
			slog.String("old_usd", result.OldBalanceUSD.String()),
			slog.String("new_usd", result.NewBalanceUSD.String()),
			slog.String("old_pen", result.OldBalancePEN.String()),
			slog.String("new_pen", result.NewBalancePEN.String()))
	}
	return result, nil
}

// RecomputeAllBalances runs the recompute over every account, including
// inactive ones. Per-account failures are collected, not fatal.
func (s *accountService) RecomputeAllBalances(ctx context.Context, actorID string) (*domain.RecomputeBatchResult, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, true)
	if err != nil {
		return nil, err
	}

	result := &domain.RecomputeBatchResult{}
	for _, account := range accounts {
		if _, err := s.RecomputeBalance(ctx, account.AccountID, actorID); err != nil {
			s.LogError(ctx, err, "Recompute failed for account", slog.String("account_id", account.AccountID))
			result.Failures = append(result.Failures, fmt.Sprintf("%s: %v", account.AccountID, err))
			continue
		}
		result.Succeeded++
	}
	return result, nil
}
