package domain

import (
	"github.com/shopspring/decimal"
)

// AccountKind classifies where the money physically sits.
type AccountKind string

const (
	AccountCash   AccountKind = "CASH"
	AccountBank   AccountKind = "BANK"
	AccountWallet AccountKind = "WALLET" // digital wallet (Yape, Zelle, etc.)
)

// Account represents a named store of money. A dual-currency account keeps two
// independent balances; a single-currency account uses only the balance column
// matching its configured currency.
type Account struct {
	AccountID        string          `json:"accountID"`  // Primary Key (UUID)
	Name             string          `json:"name"`       // User-defined display name
	HolderName       string          `json:"holderName"` // Responsible party (required)
	Kind             AccountKind     `json:"kind"`
	DualCurrency     bool            `json:"dualCurrency"`
	CurrencyCode     Currency        `json:"currencyCode"` // Single-currency accounts only
	BalanceUSD       decimal.Decimal `json:"balanceUSD"`
	BalancePEN       decimal.Decimal `json:"balancePEN"`
	InitialUSD       decimal.Decimal `json:"initialUSD"` // Opening balances, base for recompute
	InitialPEN       decimal.Decimal `json:"initialPEN"`
	BankName         string          `json:"bankName"`      // Optional bank details
	AccountNumber    string          `json:"accountNumber"` // Optional
	MinimumBalance   decimal.Decimal `json:"minimumBalance"`
	DefaultForMethod string          `json:"defaultForMethod"` // Payment method this account is default for
	IsActive         bool            `json:"isActive"`
	AuditFields
}

// BalanceFor returns the balance held in the given currency. For single-currency
// accounts only the configured currency carries a meaningful balance.
func (a Account) BalanceFor(currency Currency) decimal.Decimal {
	if currency == CurrencyUSD {
		return a.BalanceUSD
	}
	return a.BalancePEN
}

// AcceptsCurrency reports whether a movement in the given currency may touch
// this account. Dual-currency accounts accept both.
func (a Account) AcceptsCurrency(currency Currency) bool {
	if a.DualCurrency {
		return currency.Valid()
	}
	return currency == a.CurrencyCode
}

// CurrentBalance returns the single authoritative balance of a single-currency
// account. Dual-currency accounts have no single balance; callers must use
// BalanceFor.
func (a Account) CurrentBalance() decimal.Decimal {
	return a.BalanceFor(a.CurrencyCode)
}
