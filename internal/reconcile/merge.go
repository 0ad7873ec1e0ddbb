// Package reconcile builds the master order record: it merges the order
// extracts, synthesizes orders for unmatched purchases, fills missing prices
// and verifies per-order arithmetic.
package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/sells-group/ecom-prep/internal/model"
)

// statusMapping aligns order-system statuses with the tracking vocabulary.
var statusMapping = map[string]string{
	"Completed": model.StatusDelivered,
	"Pending":   model.StatusInTransit,
	"Shipped":   model.StatusShipped,
}

// NormalizeStatus maps a raw order status; unknown values pass through.
func NormalizeStatus(s string) string {
	if mapped, ok := statusMapping[s]; ok {
		return mapped
	}
	return s
}

// MergeOrders inner-joins order items with their orders on OrderID. Items
// whose order is absent are returned as missing rows. Count is the order's
// declared value (0 when blank) so the count check can flag it.
func MergeOrders(items []model.OrderItem, orders []model.Order) (model.Table, []model.MissingRow) {
	byID := make(map[int64]model.Order, len(orders))
	for _, o := range orders {
		if _, dup := byID[o.OrderID]; !dup {
			byID[o.OrderID] = o
		}
	}

	var missing []model.MissingRow
	out := make(model.Table, 0, len(items))
	for _, it := range items {
		o, ok := byID[it.OrderID]
		if !ok {
			missing = append(missing, model.MissingRow{Table: "orders", Key: "OrderID", Value: it.OrderID})
			continue
		}
		out = append(out, model.MasterRow{
			OrderItemID: it.OrderItemID,
			OrderID:     it.OrderID,
			ProductID:   it.ProductID,
			CustomerID:  o.CustomerID,
			Price:       it.Price,
			Quantity:    it.Quantity,
			OrderDate:   o.OrderDate,
			Count:       o.Count,
			TotalAmount: o.TotalAmount,
			Status:      NormalizeStatus(o.Status),
		})
	}
	return out, missing
}

// AttachProducts joins catalog attributes onto each row by (ProductID, Price).
// A missing price matches a catalog entry whose price is also missing. Rows
// with no catalog partner are dropped and returned as missing rows.
func AttachProducts(t model.Table, products []model.Product) (model.Table, []model.MissingRow) {
	byID := make(map[int64][]model.Product, len(products))
	for _, p := range products {
		byID[p.ProductID] = append(byID[p.ProductID], p)
	}

	var missing []model.MissingRow
	out := make(model.Table, 0, len(t))
	for _, r := range t {
		p, ok := matchProduct(byID[r.ProductID], r.Price)
		if !ok {
			missing = append(missing, model.MissingRow{Table: "products", Key: "ProductID", Value: r.ProductID})
			continue
		}
		r.Name = p.Name
		r.Category = p.Category
		out = append(out, r)
	}
	return out, missing
}

func matchProduct(candidates []model.Product, price decimal.NullDecimal) (model.Product, bool) {
	for _, p := range candidates {
		if samePrice(p.Price, price) {
			return p, true
		}
	}
	return model.Product{}, false
}

func samePrice(a, b decimal.NullDecimal) bool {
	if a.Valid != b.Valid {
		return false
	}
	return !a.Valid || a.Decimal.Equal(b.Decimal)
}

// Purchase is a purchase event carrying its catalog price.
type Purchase struct {
	CustomerID int64
	ProductID  int64
	Price      decimal.NullDecimal
	Timestamp  string
}

// PurchaseEvents selects purchase events and joins each to the catalog on
// ProductID. Events for products missing from the catalog are reported.
func PurchaseEvents(events []model.BehavioralEvent, products []model.Product) ([]Purchase, []model.MissingRow) {
	byID := make(map[int64]model.Product, len(products))
	for _, p := range products {
		if _, dup := byID[p.ProductID]; !dup {
			byID[p.ProductID] = p
		}
	}

	var missing []model.MissingRow
	var out []Purchase
	for _, e := range events {
		if !e.IsPurchase() {
			continue
		}
		p, ok := byID[e.ProductID]
		if !ok {
			missing = append(missing, model.MissingRow{Table: "products", Key: "ProductID", Value: e.ProductID})
			continue
		}
		out = append(out, Purchase{
			CustomerID: e.CustomerID,
			ProductID:  e.ProductID,
			Price:      p.Price,
			Timestamp:  e.Timestamp,
		})
	}
	return out, missing
}
