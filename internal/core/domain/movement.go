package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind classifies a ledger movement.
type MovementKind string

const (
	KindSaleIncome           MovementKind = "SALE_INCOME"
	KindOtherIncome          MovementKind = "OTHER_INCOME"
	KindAdjustmentIn         MovementKind = "ADJUSTMENT_IN"
	KindPurchasePayment      MovementKind = "PURCHASE_PAYMENT"
	KindTravelerPayment      MovementKind = "TRAVELER_PAYMENT"
	KindLocalSupplierPayment MovementKind = "LOCAL_SUPPLIER_PAYMENT"
	KindOperatingExpense     MovementKind = "OPERATING_EXPENSE"
	KindOwnerWithdrawal      MovementKind = "OWNER_WITHDRAWAL"
	KindAdjustmentOut        MovementKind = "ADJUSTMENT_OUT"
	KindConversionLeg        MovementKind = "CONVERSION_LEG"
)

// LegDirection is the explicit income/expense signal for conversion legs.
// Non-conversion kinds carry their direction in the kind itself and leave this
// empty.
type LegDirection string

const (
	LegInbound  LegDirection = "INBOUND"
	LegOutbound LegDirection = "OUTBOUND"
)

// MovementStatus is the lifecycle state of a movement.
type MovementStatus string

const (
	MovementExecuted MovementStatus = "EXECUTED"
	MovementVoided   MovementStatus = "VOIDED"
)

// incomeKinds and expenseKinds fix the statistical direction of every
// non-conversion movement kind.
var incomeKinds = map[MovementKind]bool{
	KindSaleIncome:   true,
	KindOtherIncome:  true,
	KindAdjustmentIn: true,
}

var expenseKinds = map[MovementKind]bool{
	KindPurchasePayment:      true,
	KindTravelerPayment:      true,
	KindLocalSupplierPayment: true,
	KindOperatingExpense:     true,
	KindOwnerWithdrawal:      true,
	KindAdjustmentOut:        true,
}

// ValidMovementKind reports whether the kind is one of the known values.
func ValidMovementKind(k MovementKind) bool {
	return incomeKinds[k] || expenseKinds[k] || k == KindConversionLeg
}

// Movement is one atomic change in money position. Amount is always positive in
// the stated currency; the balance effect is -Amount on the source account and
// +Amount on the destination account.
type Movement struct {
	MovementID           string          `json:"movementID"` // Primary Key (UUID)
	Number               string          `json:"number"`     // Sequential display number, e.g. MOV-2026-0001
	Kind                 MovementKind    `json:"kind"`
	Direction            LegDirection    `json:"direction,omitempty"` // Conversion legs only
	Status               MovementStatus  `json:"status"`
	CurrencyCode         Currency        `json:"currencyCode"`
	Amount               decimal.Decimal `json:"amount"`       // Positive, in CurrencyCode
	ExchangeRate         decimal.Decimal `json:"exchangeRate"` // PEN per USD at time of recording
	AmountUSD            decimal.Decimal `json:"amountUSD"`    // Derived equivalent
	AmountPEN            decimal.Decimal `json:"amountPEN"`    // Derived equivalent
	SourceAccountID      string          `json:"sourceAccountID,omitempty"`
	DestinationAccountID string          `json:"destinationAccountID,omitempty"`
	Method               string          `json:"method"` // Payment method label
	Concept              string          `json:"concept"`
	Reference            string          `json:"reference,omitempty"` // External reference
	Notes                string          `json:"notes,omitempty"`
	ConversionID         string          `json:"conversionID,omitempty"`   // Set when spawned by a conversion
	RelatedDocumentID    string          `json:"relatedDocumentID,omitempty"`   // Opaque link (purchase order, sale, ...)
	RelatedDocumentType  string          `json:"relatedDocumentType,omitempty"` // Opaque
	MovementDate         time.Time       `json:"movementDate"` // Effective date
	VoidedAt             *time.Time      `json:"voidedAt,omitempty"`
	VoidedBy             string          `json:"voidedBy,omitempty"`
	AuditFields
}

// IsIncome reports whether the movement counts as income for aggregate
// statistics. Conversion legs use their explicit direction; every other kind is
// fixed by the kind table.
func (m Movement) IsIncome() bool {
	if m.Kind == KindConversionLeg {
		return m.Direction == LegInbound
	}
	return incomeKinds[m.Kind]
}

// IsExpense reports whether the movement counts as an expense for aggregate
// statistics.
func (m Movement) IsExpense() bool {
	if m.Kind == KindConversionLeg {
		return m.Direction == LegOutbound
	}
	return expenseKinds[m.Kind]
}

// ComputeEquivalents fills AmountUSD/AmountPEN from Amount, CurrencyCode and
// ExchangeRate.
func (m *Movement) ComputeEquivalents() {
	m.AmountUSD, m.AmountPEN = EquivalentAmounts(m.CurrencyCode, m.Amount, m.ExchangeRate)
}

// BalanceDelta is one signed balance change to apply to an account in a given
// currency. Deltas are produced by the services and applied by the repositories
// inside the ledger transaction.
type BalanceDelta struct {
	AccountID string
	Currency  Currency
	Amount    decimal.Decimal // Signed
}

// BalanceDeltas returns the account deltas a movement produces when applied
// (reverse=false) or reversed (reverse=true).
func (m Movement) BalanceDeltas(reverse bool) []BalanceDelta {
	sign := decimal.NewFromInt(1)
	if reverse {
		sign = sign.Neg()
	}
	var deltas []BalanceDelta
	if m.SourceAccountID != "" {
		deltas = append(deltas, BalanceDelta{
			AccountID: m.SourceAccountID,
			Currency:  m.CurrencyCode,
			Amount:    m.Amount.Neg().Mul(sign),
		})
	}
	if m.DestinationAccountID != "" {
		deltas = append(deltas, BalanceDelta{
			AccountID: m.DestinationAccountID,
			Currency:  m.CurrencyCode,
			Amount:    m.Amount.Mul(sign),
		})
	}
	return deltas
}
