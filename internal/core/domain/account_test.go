package domain_test

import (
	"testing"

	"github.com/andeantrade/treasury_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccount_AcceptsCurrency(t *testing.T) {
	dual := domain.Account{DualCurrency: true}
	assert.True(t, dual.AcceptsCurrency(domain.CurrencyUSD))
	assert.True(t, dual.AcceptsCurrency(domain.CurrencyPEN))
	assert.False(t, dual.AcceptsCurrency("EUR"))

	single := domain.Account{CurrencyCode: domain.CurrencyPEN}
	assert.True(t, single.AcceptsCurrency(domain.CurrencyPEN))
	assert.False(t, single.AcceptsCurrency(domain.CurrencyUSD))
}

func TestAccount_BalanceFor(t *testing.T) {
	account := domain.Account{
		BalanceUSD: decimal.NewFromInt(100),
		BalancePEN: decimal.NewFromInt(370),
	}
	assert.True(t, account.BalanceFor(domain.CurrencyUSD).Equal(decimal.NewFromInt(100)))
	assert.True(t, account.BalanceFor(domain.CurrencyPEN).Equal(decimal.NewFromInt(370)))
}
