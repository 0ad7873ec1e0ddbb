// Package synth fills in the secondary extracts derived from the master
// order record: payment transactions, customer reviews and shipment tracking.
package synth

import (
	"math/rand/v2"
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/ecom-prep/internal/dataset"
	"github.com/sells-group/ecom-prep/internal/model"
)

// TransactionStats summarises a transaction synthesis pass.
type TransactionStats struct {
	Existing int `json:"existing"`
	Added    int `json:"added"`
	NoTotal  int `json:"no_total"`
}

type paymentDist struct {
	methods []string
	cum     []float64
}

// newPaymentDist builds the empirical distribution of payment methods.
// Methods are ordered by descending frequency, ties by name.
func newPaymentDist(txns []model.Transaction) paymentDist {
	counts := make(map[string]int)
	total := 0
	for _, tx := range txns {
		if tx.PaymentMethod == "" {
			continue
		}
		counts[tx.PaymentMethod]++
		total++
	}
	d := paymentDist{}
	for m := range counts {
		d.methods = append(d.methods, m)
	}
	sort.Slice(d.methods, func(i, j int) bool {
		a, b := d.methods[i], d.methods[j]
		if counts[a] != counts[b] {
			return counts[a] > counts[b]
		}
		return a < b
	})
	acc := 0
	for _, m := range d.methods {
		acc += counts[m]
		d.cum = append(d.cum, float64(acc)/float64(total))
	}
	return d
}

func (d paymentDist) draw(rng *rand.Rand) string {
	u := rng.Float64()
	i := sort.SearchFloat64s(d.cum, u)
	if i >= len(d.methods) {
		i = len(d.methods) - 1
	}
	// SearchFloat64s returns the first cum >= u; an exact hit belongs to the next bucket.
	if d.cum[i] == u && i+1 < len(d.methods) {
		i++
	}
	return d.methods[i]
}

func dateRange(txns []model.Transaction) (time.Time, time.Time, error) {
	var lo, hi time.Time
	found := false
	for _, tx := range txns {
		t, err := dataset.ParseTime(tx.TransactionDate)
		if err != nil {
			continue
		}
		if !found || t.Before(lo) {
			lo = t
		}
		if !found || t.After(hi) {
			hi = t
		}
		found = true
	}
	if !found {
		return lo, hi, eris.New("synth: no parseable transaction dates")
	}
	return lo, hi, nil
}

// SynthesizeTransactions returns a new transaction for every master order
// that has none. An existing row counts even when its amount is blank. The
// amount is the order's TotalAmount; the payment method is
// drawn from the existing methods in proportion to their frequency and the
// date uniformly, to the second, between the earliest and latest existing
// dates. New TransactionIDs continue from the largest existing one.
func SynthesizeTransactions(master model.Table, txns []model.Transaction, rng *rand.Rand) ([]model.Transaction, TransactionStats, error) {
	stats := TransactionStats{Existing: len(txns)}
	var out []model.Transaction

	paid := make(map[int64]bool, len(txns))
	var maxID int64
	for _, tx := range txns {
		paid[tx.OrderID] = true
		if tx.TransactionID > maxID {
			maxID = tx.TransactionID
		}
	}

	ids, groups := master.Orders()
	var pending []model.MasterRow
	for _, id := range ids {
		if paid[id] {
			continue
		}
		first := master[groups[id][0]]
		if !first.TotalAmount.Valid {
			stats.NoTotal++
			continue
		}
		pending = append(pending, first)
	}
	if len(pending) == 0 {
		return out, stats, nil
	}

	dist := newPaymentDist(txns)
	if len(dist.methods) == 0 {
		return nil, stats, eris.New("synth: no payment methods to sample from")
	}
	lo, hi, err := dateRange(txns)
	if err != nil {
		return nil, stats, err
	}
	span := hi.Unix() - lo.Unix()

	for _, row := range pending {
		method := dist.draw(rng)
		at := lo.Add(time.Duration(rng.Int64N(span+1)) * time.Second)
		maxID++
		out = append(out, model.Transaction{
			TransactionID:   maxID,
			OrderID:         row.OrderID,
			PaymentMethod:   method,
			Amount:          row.TotalAmount,
			TransactionDate: at.Format(dataset.TimeLayout),
		})
		stats.Added++
	}

	zap.L().Info("synth: transactions synthesized",
		zap.Int("existing", stats.Existing),
		zap.Int("added", stats.Added),
		zap.Int("no_total", stats.NoTotal),
	)
	return out, stats, nil
}
