package domain_test

import (
	"testing"

	"github.com/andeantrade/treasury_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMovement_Classification(t *testing.T) {
	tests := []struct {
		name        string
		movement    domain.Movement
		wantIncome  bool
		wantExpense bool
	}{
		{
			name:       "sale income counts as income",
			movement:   domain.Movement{Kind: domain.KindSaleIncome},
			wantIncome: true,
		},
		{
			name:       "other income counts as income",
			movement:   domain.Movement{Kind: domain.KindOtherIncome},
			wantIncome: true,
		},
		{
			name:        "purchase payment counts as expense",
			movement:    domain.Movement{Kind: domain.KindPurchasePayment},
			wantExpense: true,
		},
		{
			name:        "owner withdrawal counts as expense",
			movement:    domain.Movement{Kind: domain.KindOwnerWithdrawal},
			wantExpense: true,
		},
		{
			name:       "inbound conversion leg counts as income",
			movement:   domain.Movement{Kind: domain.KindConversionLeg, Direction: domain.LegInbound},
			wantIncome: true,
		},
		{
			name:        "outbound conversion leg counts as expense",
			movement:    domain.Movement{Kind: domain.KindConversionLeg, Direction: domain.LegOutbound},
			wantExpense: true,
		},
		{
			name:     "conversion leg without direction counts as neither",
			movement: domain.Movement{Kind: domain.KindConversionLeg},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantIncome, tt.movement.IsIncome())
			assert.Equal(t, tt.wantExpense, tt.movement.IsExpense())
		})
	}
}

func TestValidMovementKind(t *testing.T) {
	assert.True(t, domain.ValidMovementKind(domain.KindSaleIncome))
	assert.True(t, domain.ValidMovementKind(domain.KindConversionLeg))
	assert.True(t, domain.ValidMovementKind(domain.KindAdjustmentOut))
	assert.False(t, domain.ValidMovementKind("TRANSFER"))
	assert.False(t, domain.ValidMovementKind(""))
}

func TestMovement_ComputeEquivalents(t *testing.T) {
	rate := decimal.RequireFromString("3.70")

	usd := domain.Movement{
		CurrencyCode: domain.CurrencyUSD,
		Amount:       decimal.NewFromInt(100),
		ExchangeRate: rate,
	}
	usd.ComputeEquivalents()
	assert.True(t, usd.AmountUSD.Equal(decimal.NewFromInt(100)))
	assert.True(t, usd.AmountPEN.Equal(decimal.NewFromInt(370)))

	pen := domain.Movement{
		CurrencyCode: domain.CurrencyPEN,
		Amount:       decimal.NewFromInt(370),
		ExchangeRate: rate,
	}
	pen.ComputeEquivalents()
	assert.True(t, pen.AmountUSD.Equal(decimal.NewFromInt(100)))
	assert.True(t, pen.AmountPEN.Equal(decimal.NewFromInt(370)))
}

func TestMovement_BalanceDeltas(t *testing.T) {
	amount := decimal.NewFromInt(250)
	m := domain.Movement{
		CurrencyCode:         domain.CurrencyUSD,
		Amount:               amount,
		SourceAccountID:      "acc-src",
		DestinationAccountID: "acc-dst",
	}

	deltas := m.BalanceDeltas(false)
	assert.Len(t, deltas, 2)
	assert.Equal(t, "acc-src", deltas[0].AccountID)
	assert.True(t, deltas[0].Amount.Equal(amount.Neg()))
	assert.Equal(t, "acc-dst", deltas[1].AccountID)
	assert.True(t, deltas[1].Amount.Equal(amount))

	reversed := m.BalanceDeltas(true)
	assert.True(t, reversed[0].Amount.Equal(amount))
	assert.True(t, reversed[1].Amount.Equal(amount.Neg()))
}

func TestMovement_BalanceDeltas_SingleSide(t *testing.T) {
	m := domain.Movement{
		CurrencyCode:         domain.CurrencyPEN,
		Amount:               decimal.NewFromInt(50),
		DestinationAccountID: "acc-dst",
	}

	deltas := m.BalanceDeltas(false)
	assert.Len(t, deltas, 1)
	assert.Equal(t, "acc-dst", deltas[0].AccountID)
	assert.Equal(t, domain.CurrencyPEN, deltas[0].Currency)
	assert.True(t, deltas[0].Amount.Equal(decimal.NewFromInt(50)))
}
