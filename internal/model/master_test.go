package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMasterRow_LineTotal(t *testing.T) {
	t.Parallel()

	r := MasterRow{Price: decimal.NewNullDecimal(decimal.RequireFromString("2.50")), Quantity: 3}
	got, ok := r.LineTotal()
	assert.True(t, ok)
	assert.Equal(t, "7.50", got.StringFixed(2))

	r.Price = decimal.NullDecimal{}
	_, ok = r.LineTotal()
	assert.False(t, ok)
}

func TestTable_Orders(t *testing.T) {
	t.Parallel()

	tbl := Table{
		{OrderItemID: 5, OrderID: 9},
		{OrderItemID: 1, OrderID: 2},
		{OrderItemID: 7, OrderID: 9},
	}

	ids, groups := tbl.Orders()
	assert.Equal(t, []int64{2, 9}, ids)
	assert.Equal(t, []int{0, 2}, groups[9])
	assert.Equal(t, int64(7), tbl.MaxOrderItemID())
	assert.Equal(t, int64(9), tbl.MaxOrderID())
}

func TestTable_SortByOrderItemID(t *testing.T) {
	t.Parallel()

	tbl := Table{{OrderItemID: 3}, {OrderItemID: 1}, {OrderItemID: 2}}
	sorted := tbl.SortByOrderItemID()

	assert.Equal(t, int64(1), sorted[0].OrderItemID)
	assert.Equal(t, int64(3), sorted[2].OrderItemID)
	assert.Equal(t, int64(3), tbl[0].OrderItemID)
}

func TestTable_Empty(t *testing.T) {
	t.Parallel()

	var tbl Table
	assert.Zero(t, tbl.MaxOrderItemID())
	assert.Empty(t, tbl.Clone())
}

func TestReport(t *testing.T) {
	t.Parallel()

	r := Report{
		CountMismatches: []Violation{{OrderID: 1, CustomerID: 4, ProductID: 8}},
	}
	assert.True(t, r.Clean())
	assert.Equal(t, []int64{4}, r.CountCustomerIDs())

	r.TotalMismatches = []Violation{{OrderID: 2, CustomerID: 5, ProductID: 9}}
	assert.False(t, r.Clean())
	assert.Equal(t, []int64{9}, r.TotalProductIDs())
}
