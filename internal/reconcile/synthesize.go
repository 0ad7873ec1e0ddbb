package reconcile

import (
	"math/rand/v2"
	"strings"

	"github.com/sells-group/ecom-prep/internal/model"
)

// SynthesisResult summarises a Synthesize pass.
type SynthesisResult struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// Synthesize appends a one-item order for every purchase that no existing
// row represents. A purchase is represented when a row already carries the
// same (CustomerID, ProductID).
//
// OrderItemID and OrderID come from two independent counters starting after
// the current maxima, so both strictly increase in assignment order. Purchases
// are visited customer by customer, in order of each customer's first
// purchase, then in input order.
func Synthesize(t model.Table, purchases []Purchase, rng *rand.Rand) (model.Table, SynthesisResult) {
	type pair struct{ customer, product int64 }
	seen := make(map[pair]bool, len(t))
	for _, r := range t {
		seen[pair{r.CustomerID, r.ProductID}] = true
	}

	var customers []int64
	byCustomer := make(map[int64][]Purchase)
	for _, p := range purchases {
		if _, ok := byCustomer[p.CustomerID]; !ok {
			customers = append(customers, p.CustomerID)
		}
		byCustomer[p.CustomerID] = append(byCustomer[p.CustomerID], p)
	}

	out := t.Clone()
	nextItem := t.MaxOrderItemID()
	nextOrder := t.MaxOrderID()

	var res SynthesisResult
	for _, c := range customers {
		for _, p := range byCustomer[c] {
			if seen[pair{p.CustomerID, p.ProductID}] {
				res.Skipped++
				continue
			}
			nextItem++
			nextOrder++
			out = append(out, model.MasterRow{
				OrderItemID: nextItem,
				OrderID:     nextOrder,
				ProductID:   p.ProductID,
				CustomerID:  p.CustomerID,
				Price:       p.Price,
				Quantity:    1,
				OrderDate:   TrimTimestamp(p.Timestamp),
				Count:       1,
				TotalAmount: p.Price,
				Status:      model.Statuses[rng.IntN(len(model.Statuses))],
				Synthetic:   true,
			})
			res.Added++
		}
	}
	return out, res
}

// TrimTimestamp keeps the date and time of a timestamp to the second,
// dropping fractions and zone suffixes.
func TrimTimestamp(ts string) string {
	ts = strings.Replace(strings.TrimSpace(ts), "T", " ", 1)
	if len(ts) > 19 {
		ts = ts[:19]
	}
	return ts
}
