package synth

import (
	"math/rand/v2"

	"github.com/shopspring/decimal"

	"github.com/sells-group/ecom-prep/internal/model"
)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewPCG(42, 7))
}

func total(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func masterRow(itemID, orderID int64, tot decimal.NullDecimal) model.MasterRow {
	return model.MasterRow{
		OrderItemID: itemID,
		OrderID:     orderID,
		ProductID:   1,
		CustomerID:  orderID * 10,
		Quantity:    1,
		TotalAmount: tot,
		Status:      model.StatusDelivered,
	}
}
