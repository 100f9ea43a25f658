package dto

import (
	"time"

	"github.com/andeantrade/treasury_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
// Initial balances default to zero. For single-currency accounts only
// InitialBalance is read; for dual-currency accounts InitialUSD/InitialPEN.
type CreateAccountRequest struct {
	Name             string             `json:"name" binding:"required"`
	HolderName       string             `json:"holderName"` // Validated in the service layer
	Kind             domain.AccountKind `json:"kind" binding:"required,oneof=CASH BANK WALLET"`
	DualCurrency     bool               `json:"dualCurrency"`
	CurrencyCode     domain.Currency    `json:"currencyCode" binding:"omitempty,oneof=USD PEN"`
	InitialBalance   decimal.Decimal    `json:"initialBalance"`
	InitialUSD       decimal.Decimal    `json:"initialUSD"`
	InitialPEN       decimal.Decimal    `json:"initialPEN"`
	BankName         string             `json:"bankName"`
	AccountNumber    string             `json:"accountNumber"`
	MinimumBalance   decimal.Decimal    `json:"minimumBalance"`
	DefaultForMethod string             `json:"defaultForMethod"`
}

// UpdateAccountRequest defines the metadata fields an account update may patch.
// Balances are deliberately absent; they move only through the ledger.
type UpdateAccountRequest struct {
	Name             *string             `json:"name"`
	HolderName       *string             `json:"holderName"`
	Kind             *domain.AccountKind `json:"kind" binding:"omitempty,oneof=CASH BANK WALLET"`
	CurrencyCode     *domain.Currency    `json:"currencyCode" binding:"omitempty,oneof=USD PEN"`
	BankName         *string             `json:"bankName"`
	AccountNumber    *string             `json:"accountNumber"`
	MinimumBalance   *decimal.Decimal    `json:"minimumBalance"`
	DefaultForMethod *string             `json:"defaultForMethod"`
	IsActive         *bool               `json:"isActive"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID        string             `json:"accountID"`
	Name             string             `json:"name"`
	HolderName       string             `json:"holderName"`
	Kind             domain.AccountKind `json:"kind"`
	DualCurrency     bool               `json:"dualCurrency"`
	CurrencyCode     domain.Currency    `json:"currencyCode,omitempty"`
	BalanceUSD       decimal.Decimal    `json:"balanceUSD"`
	BalancePEN       decimal.Decimal    `json:"balancePEN"`
	BankName         string             `json:"bankName,omitempty"`
	AccountNumber    string             `json:"accountNumber,omitempty"`
	MinimumBalance   decimal.Decimal    `json:"minimumBalance"`
	DefaultForMethod string             `json:"defaultForMethod,omitempty"`
	IsActive         bool               `json:"isActive"`
	CreatedAt        time.Time          `json:"createdAt"`
	CreatedBy        string             `json:"createdBy"`
	LastUpdatedAt    time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy    string             `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:        acc.AccountID,
		Name:             acc.Name,
		HolderName:       acc.HolderName,
		Kind:             acc.Kind,
		DualCurrency:     acc.DualCurrency,
		CurrencyCode:     acc.CurrencyCode,
		BalanceUSD:       acc.BalanceUSD,
		BalancePEN:       acc.BalancePEN,
		BankName:         acc.BankName,
		AccountNumber:    acc.AccountNumber,
		MinimumBalance:   acc.MinimumBalance,
		DefaultForMethod: acc.DefaultForMethod,
		IsActive:         acc.IsActive,
		CreatedAt:        acc.CreatedAt,
		CreatedBy:        acc.CreatedBy,
		LastUpdatedAt:    acc.LastUpdatedAt,
		LastUpdatedBy:    acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to responses.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	IncludeInactive bool `form:"includeInactive,default=false"`
}
