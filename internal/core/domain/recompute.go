package domain

import "github.com/shopspring/decimal"

// RecomputeResult reports the outcome of rebuilding one account's balances from
// the movement log.
type RecomputeResult struct {
	AccountID         string          `json:"accountID"`
	OldBalanceUSD     decimal.Decimal `json:"oldBalanceUSD"`
	NewBalanceUSD     decimal.Decimal `json:"newBalanceUSD"`
	OldBalancePEN     decimal.Decimal `json:"oldBalancePEN"`
	NewBalancePEN     decimal.Decimal `json:"newBalancePEN"`
	MovementsReplayed int             `json:"movementsReplayed"`
	Changed           bool            `json:"changed"`
}

// RecomputeBatchResult reports a recompute pass over every account. Per-account
// failures are collected; the batch never aborts early.
type RecomputeBatchResult struct {
	Succeeded int      `json:"succeeded"`
	Failures  []string `json:"failures,omitempty"`
}
