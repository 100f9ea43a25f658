package models

import (
	"github.com/shopspring/decimal"
)

// Account represents a treasury account row. Single-currency accounts keep
// their currency in CurrencyCode and use only the matching balance column;
// dual-currency accounts use both.
type Account struct {
	AccountID        string          `db:"account_id"`
	Name             string          `db:"name"`
	HolderName       string          `db:"holder_name"`
	Kind             string          `db:"kind"`
	DualCurrency     bool            `db:"dual_currency"`
	CurrencyCode     string          `db:"currency_code"` // Nullable for dual-currency accounts
	BalanceUSD       decimal.Decimal `db:"balance_usd"`
	BalancePEN       decimal.Decimal `db:"balance_pen"`
	InitialUSD       decimal.Decimal `db:"initial_usd"`
	InitialPEN       decimal.Decimal `db:"initial_pen"`
	BankName         string          `db:"bank_name"`
	AccountNumber    string          `db:"account_number"`
	MinimumBalance   decimal.Decimal `db:"minimum_balance"`
	DefaultForMethod string          `db:"default_for_method"`
	IsActive         bool            `db:"is_active"`
	AuditFields
}
