package reconcile

import (
	"math/rand/v2"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sells-group/ecom-prep/internal/model"
)

// pricePlaces is the precision money is rounded to.
const pricePlaces = 2

// FillStats counts the prices each backfill stage supplied.
type FillStats struct {
	Catalog int `json:"catalog"`
	Random  int `json:"random"`
}

// FillPrices runs the catalog, random and rounding stages in order.
//
// Rows of orders with a transaction amount skip the random stage and stay
// missing; Verify solves their price from the amount instead. An order of
// $10 plus one unpriced item paid $25 thus ends with the item at $15 rather
// than a random price that disagrees with the payment.
func FillPrices(t model.Table, txns []model.Transaction, rng *rand.Rand) (model.Table, FillStats) {
	var stats FillStats
	t, stats.Catalog = CatalogBackfill(t)

	withTxn := make(map[int64]bool, len(txns))
	for _, tx := range txns {
		if tx.Amount.Valid {
			withTxn[tx.OrderID] = true
		}
	}
	t, stats.Random = RandomBackfill(t, withTxn, rng)

	t = RoundAndTotal(t)

	zap.L().Info("reconcile: prices filled",
		zap.Int("catalog", stats.Catalog),
		zap.Int("random", stats.Random),
	)
	return t, stats
}

// CatalogBackfill gives every row missing a price the first known price
// observed for the same product Name.
func CatalogBackfill(t model.Table) (model.Table, int) {
	known := make(map[string]decimal.Decimal)
	for _, r := range t {
		if !r.Price.Valid {
			continue
		}
		if _, ok := known[r.Name]; !ok {
			known[r.Name] = r.Price.Decimal
		}
	}

	out := t.Clone()
	filled := 0
	for i := range out {
		if out[i].Price.Valid {
			continue
		}
		if p, ok := known[out[i].Name]; ok {
			out[i].Price = decimal.NewNullDecimal(p)
			filled++
		}
	}
	return out, filled
}

// RandomBackfill draws each still-missing price uniformly from the range of
// prices observed across the whole table. Rows of orders in skip are left
// alone. With no observed price at all nothing is filled.
func RandomBackfill(t model.Table, skip map[int64]bool, rng *rand.Rand) (model.Table, int) {
	lo, hi, ok := priceRange(t)
	out := t.Clone()
	if !ok {
		return out, 0
	}

	span := hi.Sub(lo)
	filled := 0
	for i := range out {
		if out[i].Price.Valid || skip[out[i].OrderID] {
			continue
		}
		draw := lo.Add(span.Mul(decimal.NewFromFloat(rng.Float64())))
		out[i].Price = decimal.NewNullDecimal(draw)
		filled++
	}
	return out, filled
}

func priceRange(t model.Table) (lo, hi decimal.Decimal, ok bool) {
	for _, r := range t {
		if !r.Price.Valid {
			continue
		}
		if !ok {
			lo, hi, ok = r.Price.Decimal, r.Price.Decimal, true
			continue
		}
		lo = decimal.Min(lo, r.Price.Decimal)
		hi = decimal.Max(hi, r.Price.Decimal)
	}
	return lo, hi, ok
}

// RoundAndTotal rounds prices to two places and sets every row's TotalAmount
// to the sum of Price*Quantity over its order. Missing prices contribute nothing.
func RoundAndTotal(t model.Table) model.Table {
	out := t.Clone()
	for i := range out {
		if out[i].Price.Valid {
			out[i].Price.Decimal = out[i].Price.Decimal.Round(pricePlaces)
		}
	}

	ids, groups := out.Orders()
	for _, id := range ids {
		total := decimal.Zero
		for _, i := range groups[id] {
			if lt, ok := out[i].LineTotal(); ok {
				total = total.Add(lt)
			}
		}
		for _, i := range groups[id] {
			out[i].TotalAmount = decimal.NewNullDecimal(total)
		}
	}
	return out
}
