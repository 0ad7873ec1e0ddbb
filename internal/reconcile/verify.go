package reconcile

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sells-group/ecom-prep/internal/model"
)

// totalTolerance is the largest |Σ(Price*Quantity) - TotalAmount| that still
// passes the total check.
var totalTolerance = decimal.New(1, -pricePlaces)

// Verify walks orders in ascending OrderID. An order with a missing price and
// a transaction gets its first missing price derived from the transaction
// amount; then the count and total checks run. Failures are reported, never
// returned as errors.
func Verify(t model.Table, txns []model.Transaction) (model.Table, model.Report) {
	byOrder := make(map[int64]model.Transaction, len(txns))
	for _, tx := range txns {
		if !tx.Amount.Valid {
			continue
		}
		if _, dup := byOrder[tx.OrderID]; !dup {
			byOrder[tx.OrderID] = tx
		}
	}

	out := t.Clone()
	ids, groups := out.Orders()
	report := model.Report{Orders: len(ids)}

	for _, id := range ids {
		rows := groups[id]

		if tx, ok := byOrder[id]; ok && patchFromTransaction(out, rows, tx) {
			report.Patched = append(report.Patched, id)
		}

		first := out[rows[0]]
		v := model.Violation{OrderID: id, CustomerID: first.CustomerID, ProductID: first.ProductID}

		if !countMatches(out, rows) {
			report.CountMismatches = append(report.CountMismatches, v)
			zap.L().Warn("reconcile: count mismatch",
				zap.Int64("order_id", id),
				zap.Int64("customer_id", v.CustomerID),
				zap.Int64("count", first.Count),
				zap.Int("rows", len(rows)),
			)
		}
		if !totalMatches(out, rows) {
			report.TotalMismatches = append(report.TotalMismatches, v)
			zap.L().Warn("reconcile: total mismatch",
				zap.Int64("order_id", id),
				zap.Int64("product_id", v.ProductID),
			)
		}
	}

	zap.L().Info("reconcile: checks complete",
		zap.Int("orders", report.Orders),
		zap.Int("patched", len(report.Patched)),
		zap.Int("count_mismatches", len(report.CountMismatches)),
		zap.Int("total_mismatches", len(report.TotalMismatches)),
	)
	return out, report
}

// patchFromTransaction solves for the first missing price of an order:
// (max(txn, total) - Σknown(Price*Quantity)) / Quantity. The quotient is kept
// unrounded so Price*Quantity reproduces the amount for any Quantity. Every
// row's TotalAmount becomes the chosen amount. Later missing prices stay
// missing.
func patchFromTransaction(t model.Table, rows []int, tx model.Transaction) bool {
	target := -1
	known := decimal.Zero
	for _, i := range rows {
		if lt, ok := t[i].LineTotal(); ok {
			known = known.Add(lt)
		} else if target < 0 {
			target = i
		}
	}
	if target < 0 || t[target].Quantity == 0 {
		return false
	}

	amount := tx.Amount.Decimal
	if naive := t[rows[0]].TotalAmount; naive.Valid {
		amount = decimal.Max(amount, naive.Decimal)
	}

	price := amount.Sub(known).Div(decimal.NewFromInt(t[target].Quantity))
	t[target].Price = decimal.NewNullDecimal(price)
	for _, i := range rows {
		t[i].TotalAmount = decimal.NewNullDecimal(amount)
	}

	zap.L().Debug("reconcile: price derived from transaction",
		zap.Int64("order_id", t[target].OrderID),
		zap.Int64("order_item_id", t[target].OrderItemID),
		zap.String("price", price.String()),
	)
	return true
}

func countMatches(t model.Table, rows []int) bool {
	for _, i := range rows {
		if t[i].Count != int64(len(rows)) {
			return false
		}
	}
	return true
}

func totalMatches(t model.Table, rows []int) bool {
	total := t[rows[0]].TotalAmount
	if !total.Valid {
		return false
	}
	sum := decimal.Zero
	for _, i := range rows {
		lt, ok := t[i].LineTotal()
		if !ok {
			return false
		}
		sum = sum.Add(lt)
	}
	return sum.Sub(total.Decimal).Abs().LessThanOrEqual(totalTolerance)
}
