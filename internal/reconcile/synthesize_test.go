package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/ecom-prep/internal/model"
)

func TestSynthesize_SinglePurchase(t *testing.T) {
	existing := model.Table{
		{OrderItemID: 40, OrderID: 12, CustomerID: 3, ProductID: 7},
		{OrderItemID: 41, OrderID: 12, CustomerID: 3, ProductID: 8},
	}
	purchases := []Purchase{{CustomerID: 5, ProductID: 7, Price: price("10"), Timestamp: "2024-03-01 10:11:12.987654"}}

	out, res := Synthesize(existing, purchases, newTestRand())

	require.Len(t, out, 3)
	assert.Equal(t, 1, res.Added)
	got := out[2]
	assert.Equal(t, int64(42), got.OrderItemID)
	assert.Equal(t, int64(13), got.OrderID)
	assert.Equal(t, int64(5), got.CustomerID)
	assert.Equal(t, int64(1), got.Quantity)
	assert.Equal(t, int64(1), got.Count)
	assert.True(t, got.TotalAmount.Decimal.Equal(dec("10")))
	assert.Equal(t, "2024-03-01 10:11:12", got.OrderDate)
	assert.Contains(t, model.Statuses, got.Status)
	assert.True(t, got.Synthetic)

	assert.Len(t, existing, 2, "input table is not mutated")
}

func TestSynthesize_SkipsRepresentedPurchases(t *testing.T) {
	existing := model.Table{{OrderItemID: 1, OrderID: 1, CustomerID: 5, ProductID: 7}}
	purchases := []Purchase{{CustomerID: 5, ProductID: 7, Price: price("10")}}

	out, res := Synthesize(existing, purchases, newTestRand())

	assert.Len(t, out, 1)
	assert.Equal(t, 0, res.Added)
	assert.Equal(t, 1, res.Skipped)
}

func TestSynthesize_IDsMonotonicPerCustomerOrder(t *testing.T) {
	existing := model.Table{{OrderItemID: 100, OrderID: 30, CustomerID: 1, ProductID: 1}}
	purchases := []Purchase{
		{CustomerID: 9, ProductID: 2, Timestamp: "2024-01-01T00:00:01Z"},
		{CustomerID: 8, ProductID: 3, Timestamp: "2024-01-01T00:00:02Z"},
		{CustomerID: 9, ProductID: 4, Timestamp: "2024-01-01T00:00:03Z"},
	}

	out, res := Synthesize(existing, purchases, newTestRand())
	require.Equal(t, 3, res.Added)

	added := out[1:]
	// Customer 9's purchases come first, then customer 8's.
	assert.Equal(t, []int64{9, 9, 8}, []int64{added[0].CustomerID, added[1].CustomerID, added[2].CustomerID})
	assert.Equal(t, "2024-01-01 00:00:01", added[0].OrderDate)

	prevItem, prevOrder := int64(100), int64(30)
	for _, r := range added {
		assert.Greater(t, r.OrderItemID, prevItem)
		assert.Greater(t, r.OrderID, prevOrder)
		prevItem, prevOrder = r.OrderItemID, r.OrderID
		assert.False(t, r.Price.Valid)
		assert.False(t, r.TotalAmount.Valid)
	}
}

func TestSynthesize_SeededStatusesReproducible(t *testing.T) {
	purchases := make([]Purchase, 20)
	for i := range purchases {
		purchases[i] = Purchase{CustomerID: int64(i), ProductID: 1}
	}

	a, _ := Synthesize(nil, purchases, newTestRand())
	b, _ := Synthesize(nil, purchases, newTestRand())
	for i := range a {
		assert.Equal(t, a[i].Status, b[i].Status)
	}
}

func TestTrimTimestamp(t *testing.T) {
	assert.Equal(t, "2024-05-06 07:08:09", TrimTimestamp("2024-05-06 07:08:09.123456"))
	assert.Equal(t, "2024-05-06 07:08:09", TrimTimestamp("2024-05-06T07:08:09+00:00"))
	assert.Equal(t, "2024-05-06", TrimTimestamp("2024-05-06"))
}
