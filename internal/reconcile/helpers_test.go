package reconcile

import (
	"math/rand/v2"

	"github.com/shopspring/decimal"

	"github.com/sells-group/ecom-prep/internal/model"
)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewPCG(42, 7))
}

func price(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var noPrice = decimal.NullDecimal{}

func row(itemID, orderID, productID int64, name string, p decimal.NullDecimal, qty, count int64) model.MasterRow {
	return model.MasterRow{
		OrderItemID: itemID,
		OrderID:     orderID,
		ProductID:   productID,
		CustomerID:  orderID * 10,
		Price:       p,
		Quantity:    qty,
		Count:       count,
		Name:        name,
		Status:      model.StatusShipped,
	}
}
