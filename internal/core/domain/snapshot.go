package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthKeyFormat is the layout for historical rollup keys ("YYYY-MM").
const MonthKeyFormat = "2006-01"

// MonthKey returns the rollup key for a date.
func MonthKey(t time.Time) string {
	return t.Format(MonthKeyFormat)
}

// PeriodRollup accumulates treasury statistics for one period (a calendar month
// or a year to date).
type PeriodRollup struct {
	IncomeUSD      decimal.Decimal `json:"incomeUSD"`
	IncomePEN      decimal.Decimal `json:"incomePEN"`
	IncomeCount    int             `json:"incomeCount"`
	ExpenseUSD     decimal.Decimal `json:"expenseUSD"`
	ExpensePEN     decimal.Decimal `json:"expensePEN"`
	ExpenseCount   int             `json:"expenseCount"`
	ConvUSDToPEN   decimal.Decimal `json:"convUSDToPEN"` // Origin totals per direction
	ConvPENToUSD   decimal.Decimal `json:"convPENToUSD"`
	ConversionCount int            `json:"conversionCount"`
	SpreadAccum    decimal.Decimal `json:"spreadAccum"`
	DiffPurchases  decimal.Decimal `json:"diffPurchases"` // Exchange difference vs reference, by source
	DiffSales      decimal.Decimal `json:"diffSales"`
	DiffConversions decimal.Decimal `json:"diffConversions"`
	DiffNet        decimal.Decimal `json:"diffNet"`
	RateSum        decimal.Decimal `json:"rateSum"` // For simple average rate
	RateCount      int             `json:"rateCount"`
}

// AverageRate returns the simple average of the exchange rates observed in the
// period, or zero when none were.
func (r PeriodRollup) AverageRate() decimal.Decimal {
	if r.RateCount <= 0 {
		return decimal.Zero
	}
	return r.RateSum.Div(decimal.NewFromInt(int64(r.RateCount)))
}

// ApplyMovement folds one executed movement into the rollup. A reversal applies
// the same deltas with the opposite sign. Conversion legs with both accounts
// linked are registered as two single-sided movements, so each record counts on
// exactly one side here.
func (r *PeriodRollup) ApplyMovement(m Movement, reversal bool) {
	mult := decimal.NewFromInt(1)
	count := 1
	if reversal {
		mult = mult.Neg()
		count = -1
	}
	if m.IsIncome() {
		r.IncomeUSD = r.IncomeUSD.Add(m.AmountUSD.Mul(mult))
		r.IncomePEN = r.IncomePEN.Add(m.AmountPEN.Mul(mult))
		r.IncomeCount += count
	}
	if m.IsExpense() {
		r.ExpenseUSD = r.ExpenseUSD.Add(m.AmountUSD.Mul(mult))
		r.ExpensePEN = r.ExpensePEN.Add(m.AmountPEN.Mul(mult))
		r.ExpenseCount += count
	}
	r.RateSum = r.RateSum.Add(m.ExchangeRate.Mul(mult))
	r.RateCount += count
}

// ApplyConversion folds one conversion into the rollup.
func (r *PeriodRollup) ApplyConversion(c Conversion) {
	if c.OriginCurrency == CurrencyUSD {
		r.ConvUSDToPEN = r.ConvUSDToPEN.Add(c.OriginAmount)
	} else {
		r.ConvPENToUSD = r.ConvPENToUSD.Add(c.OriginAmount)
	}
	r.ConversionCount++
	r.SpreadAccum = r.SpreadAccum.Add(c.SpreadPercent)
	r.DiffConversions = r.DiffConversions.Add(c.DifferenceVsReference)
	r.DiffNet = r.DiffPurchases.Add(r.DiffSales).Add(r.DiffConversions)
}

// TreasurySnapshot is the materialized aggregation document. It is a pure
// function of the movement and conversion history plus the live account
// balances, and can be rebuilt from scratch at any time.
type TreasurySnapshot struct {
	TotalUSD           decimal.Decimal         `json:"totalUSD"` // Across active accounts
	TotalPEN           decimal.Decimal         `json:"totalPEN"`
	TotalEquivalentPEN decimal.Decimal         `json:"totalEquivalentPEN"` // TotalPEN + TotalUSD * ReferenceRate
	ReferenceRate      decimal.Decimal         `json:"referenceRate"`
	CurrentMonthKey    string                  `json:"currentMonthKey"`
	CurrentMonth       PeriodRollup            `json:"currentMonth"`
	Months             map[string]PeriodRollup `json:"months"` // Historical rollups by "YYYY-MM"
	YearToDate         PeriodRollup            `json:"yearToDate"`
	UpdatedAt          time.Time               `json:"updatedAt"`
	UpdatedBy          string                  `json:"updatedBy"`
}

// UpdateRollup applies fn to the rollup for the given month key, rotating the
// current month into history when the key moves forward and accepting late
// entries for already archived months.
func (s *TreasurySnapshot) UpdateRollup(monthKey string, fn func(*PeriodRollup)) {
	if s.Months == nil {
		s.Months = make(map[string]PeriodRollup)
	}
	if monthKey == s.CurrentMonthKey {
		fn(&s.CurrentMonth)
		return
	}
	if monthKey > s.CurrentMonthKey {
		// A new month started; archive the current rollup and begin fresh.
		if s.CurrentMonthKey != "" {
			s.Months[s.CurrentMonthKey] = s.CurrentMonth
		}
		s.CurrentMonthKey = monthKey
		s.CurrentMonth = PeriodRollup{}
		if archived, ok := s.Months[monthKey]; ok {
			s.CurrentMonth = archived
			delete(s.Months, monthKey)
		}
		fn(&s.CurrentMonth)
		return
	}
	rollup := s.Months[monthKey]
	fn(&rollup)
	s.Months[monthKey] = rollup
}

// RecomputeEquivalentTotal re-derives the combined-currency total from the
// per-currency totals and the snapshot's reference rate.
func (s *TreasurySnapshot) RecomputeEquivalentTotal() {
	s.TotalEquivalentPEN = s.TotalPEN.Add(s.TotalUSD.Mul(s.ReferenceRate))
}
