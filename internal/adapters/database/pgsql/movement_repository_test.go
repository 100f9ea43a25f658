package pgsql

import (
	"strings"
	"testing"
	"time"

	"github.com/andeantrade/treasury_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestBuildMovementListQuery_AccountFilterMatchesSourceOnly(t *testing.T) {
	query, args := buildMovementListQuery(domain.MovementListFilter{
		SourceAccountID: "acc-1",
	})

	assert.Contains(t, query, "source_account_id = $1")
	assert.NotContains(t, query, "destination_account_id")
	assert.Equal(t, []interface{}{"acc-1", 50}, args)
}

func TestBuildMovementListQuery_AllFilters(t *testing.T) {
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	query, args := buildMovementListQuery(domain.MovementListFilter{
		Kind:            domain.KindSaleIncome,
		Status:          domain.MovementExecuted,
		Currency:        domain.CurrencyUSD,
		SourceAccountID: "acc-1",
		From:            &from,
		To:              &to,
		Limit:           10,
	})

	assert.Contains(t, query, "kind = $1")
	assert.Contains(t, query, "status = $2")
	assert.Contains(t, query, "currency_code = $3")
	assert.Contains(t, query, "source_account_id = $4")
	assert.Contains(t, query, "movement_date >= $5")
	assert.Contains(t, query, "movement_date < $6")
	assert.Contains(t, query, "LIMIT $7")
	assert.Equal(t, []interface{}{"SALE_INCOME", "EXECUTED", "USD", "acc-1", from, to, 10}, args)
}

func TestBuildMovementListQuery_DefaultLimit(t *testing.T) {
	query, args := buildMovementListQuery(domain.MovementListFilter{})

	assert.True(t, strings.HasSuffix(query, "LIMIT $1;"))
	assert.Equal(t, []interface{}{50}, args)
}
