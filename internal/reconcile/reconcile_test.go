package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/ecom-prep/internal/model"
)

func sampleInputs() *model.Inputs {
	return &model.Inputs{
		Orders: []model.Order{
			{OrderID: 1, CustomerID: 3, OrderDate: "2024-01-05 10:00:00", Status: "Completed", Count: 2},
			{OrderID: 2, CustomerID: 4, OrderDate: "2024-01-06 11:00:00", Status: "Pending", Count: 1},
		},
		Items: []model.OrderItem{
			{OrderItemID: 2, OrderID: 1, ProductID: 8, Quantity: 1},
			{OrderItemID: 1, OrderID: 1, ProductID: 7, Price: price("10"), Quantity: 1},
			{OrderItemID: 3, OrderID: 2, ProductID: 9, Price: price("20"), Quantity: 2},
		},
		Products: []model.Product{
			{ProductID: 7, Name: "Lamp", Category: "Home", Price: price("10")},
			{ProductID: 8, Name: "Desk", Category: "Office"},
			{ProductID: 9, Name: "Chair", Category: "Office", Price: price("20")},
		},
		Transactions: []model.Transaction{
			{TransactionID: 1, OrderID: 1, PaymentMethod: "Card", Amount: price("25"), TransactionDate: "2024-01-05 10:05:00"},
		},
		Events: []model.BehavioralEvent{
			{CustomerID: 5, ProductID: 7, ActionType: "purchase", Timestamp: "2024-02-01 08:30:00.250"},
			{CustomerID: 3, ProductID: 7, ActionType: "purchase", Timestamp: "2024-01-05 09:59:00"},
			{CustomerID: 6, ProductID: 9, ActionType: "view", Timestamp: "2024-02-02 08:30:00"},
		},
	}
}

func TestReconcile_EndToEnd(t *testing.T) {
	res := Reconcile(sampleInputs(), newTestRand())

	require.Len(t, res.Master, 4)
	for i, r := range res.Master {
		assert.Equal(t, int64(i+1), r.OrderItemID, "sorted by OrderItemID")
	}

	desk := res.Master[1]
	assert.Equal(t, "Desk", desk.Name)
	assert.Equal(t, "15.00", desk.Price.Decimal.StringFixed(2))
	assert.Equal(t, "25.00", desk.TotalAmount.Decimal.StringFixed(2))
	assert.Equal(t, model.StatusDelivered, desk.Status)

	assert.Equal(t, "40.00", res.Master[2].TotalAmount.Decimal.StringFixed(2))
	assert.Equal(t, model.StatusInTransit, res.Master[2].Status)

	synth := res.Master[3]
	assert.True(t, synth.Synthetic)
	assert.Equal(t, int64(5), synth.CustomerID)
	assert.Equal(t, int64(3), synth.OrderID)
	assert.Equal(t, int64(1), synth.Quantity)
	assert.Equal(t, int64(1), synth.Count)
	assert.Equal(t, "2024-02-01 08:30:00", synth.OrderDate)
	assert.Equal(t, "Lamp", synth.Name)

	assert.Equal(t, 1, res.Synthesis.Added)
	assert.Equal(t, 1, res.Synthesis.Skipped)
	assert.Empty(t, res.Missing)
	assert.True(t, res.Report.Clean())
	assert.Empty(t, res.Report.CountMismatches)
	assert.Equal(t, []int64{1}, res.Report.Patched)
}

func TestReconcile_DeterministicForSeed(t *testing.T) {
	in := sampleInputs()
	in.Items = append(in.Items, model.OrderItem{OrderItemID: 4, OrderID: 2, ProductID: 8, Quantity: 1})
	in.Orders[1].Count = 2

	a := Reconcile(in, newTestRand())
	b := Reconcile(in, newTestRand())

	assert.Equal(t, a.Master, b.Master)
	assert.Equal(t, a.Fill, b.Fill)
	assert.Equal(t, 1, a.Fill.Random)
}

func TestReconcile_ReportsMissingPartners(t *testing.T) {
	in := sampleInputs()
	in.Items = append(in.Items, model.OrderItem{OrderItemID: 9, OrderID: 77, ProductID: 7, Price: price("10"), Quantity: 1})
	in.Events = append(in.Events, model.BehavioralEvent{CustomerID: 8, ProductID: 500, ActionType: "purchase"})

	res := Reconcile(in, newTestRand())

	assert.Len(t, res.Master, 4)
	assert.ElementsMatch(t, []model.MissingRow{
		{Table: "orders", Key: "OrderID", Value: 77},
		{Table: "products", Key: "ProductID", Value: 500},
	}, res.Missing)
}
