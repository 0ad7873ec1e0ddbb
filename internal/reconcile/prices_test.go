package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/ecom-prep/internal/model"
)

func TestCatalogBackfill_FirstKnownPriceWins(t *testing.T) {
	table := model.Table{
		row(1, 1, 7, "Lamp", noPrice, 1, 1),
		row(2, 2, 7, "Lamp", price("12.50"), 1, 1),
		row(3, 3, 7, "Lamp", price("14.00"), 1, 1),
		row(4, 4, 8, "Desk", noPrice, 1, 1),
	}

	out, filled := CatalogBackfill(table)

	assert.Equal(t, 1, filled)
	assert.True(t, out[0].Price.Decimal.Equal(dec("12.50")))
	assert.False(t, out[3].Price.Valid, "no known Desk price")
	assert.False(t, table[0].Price.Valid, "input untouched")

	again, _ := CatalogBackfill(table)
	assert.Equal(t, out, again)
}

func TestRandomBackfill_WithinObservedRange(t *testing.T) {
	table := model.Table{
		row(1, 1, 7, "Lamp", price("5"), 1, 1),
		row(2, 2, 8, "Desk", price("50"), 1, 1),
	}
	for i := int64(3); i < 53; i++ {
		table = append(table, row(i, i, 9, "Chair", noPrice, 1, 1))
	}

	out, filled := RandomBackfill(table, nil, newTestRand())

	assert.Equal(t, 50, filled)
	for _, r := range out[2:] {
		require.True(t, r.Price.Valid)
		assert.True(t, r.Price.Decimal.GreaterThanOrEqual(dec("5")), r.Price.Decimal.String())
		assert.True(t, r.Price.Decimal.LessThanOrEqual(dec("50")), r.Price.Decimal.String())
	}
}

func TestRandomBackfill_SkipsOrdersWithTransactions(t *testing.T) {
	table := model.Table{
		row(1, 1, 7, "Lamp", price("10"), 1, 2),
		row(2, 1, 8, "Desk", noPrice, 1, 2),
		row(3, 2, 9, "Chair", noPrice, 1, 1),
	}

	out, filled := RandomBackfill(table, map[int64]bool{1: true}, newTestRand())

	assert.Equal(t, 1, filled)
	assert.False(t, out[1].Price.Valid)
	assert.True(t, out[2].Price.Decimal.Equal(dec("10")), "degenerate range")
}

func TestRandomBackfill_NoKnownPrices(t *testing.T) {
	table := model.Table{row(1, 1, 7, "Lamp", noPrice, 1, 1)}

	out, filled := RandomBackfill(table, nil, newTestRand())

	assert.Zero(t, filled)
	assert.False(t, out[0].Price.Valid)
}

func TestRoundAndTotal(t *testing.T) {
	table := model.Table{
		row(1, 1, 7, "Lamp", price("10.005"), 2, 3),
		row(2, 1, 8, "Desk", price("3.333"), 1, 3),
		row(3, 1, 9, "Chair", noPrice, 1, 3),
		row(4, 2, 7, "Lamp", price("1.50"), 4, 1),
	}

	out := RoundAndTotal(table)

	assert.Equal(t, "10.01", out[0].Price.Decimal.StringFixed(2))
	assert.Equal(t, "3.33", out[1].Price.Decimal.StringFixed(2))
	for _, r := range out[:3] {
		assert.Equal(t, "23.35", r.TotalAmount.Decimal.StringFixed(2))
	}
	assert.Equal(t, "6.00", out[3].TotalAmount.Decimal.StringFixed(2))
}

func TestFillPrices_Stages(t *testing.T) {
	table := model.Table{
		row(1, 1, 7, "Lamp", price("10"), 1, 2),
		row(2, 1, 8, "Desk", noPrice, 1, 2),
		row(3, 2, 7, "Lamp", noPrice, 1, 1),
		row(4, 3, 9, "Chair", noPrice, 1, 1),
		row(5, 4, 10, "Rug", price("30"), 1, 1),
	}
	txns := []model.Transaction{{TransactionID: 1, OrderID: 1, Amount: price("25")}}

	out, stats := FillPrices(table, txns, newTestRand())

	assert.Equal(t, 1, stats.Catalog)
	assert.Equal(t, 1, stats.Random)
	assert.False(t, out[1].Price.Valid, "left for the transaction patch")
	assert.Equal(t, "10.00", out[2].Price.Decimal.StringFixed(2))
	require.True(t, out[3].Price.Valid)
	assert.Equal(t, out[3].Price.Decimal, out[3].TotalAmount.Decimal)
}

func TestFillPrices_BlankTransactionAmountDoesNotReserve(t *testing.T) {
	table := model.Table{
		row(1, 1, 7, "Lamp", price("10"), 1, 2),
		row(2, 1, 8, "Desk", noPrice, 1, 2),
	}
	txns := []model.Transaction{{TransactionID: 1, OrderID: 1}}

	out, stats := FillPrices(table, txns, newTestRand())

	assert.Equal(t, 1, stats.Random)
	assert.True(t, out[1].Price.Valid)
}
