package reconcile

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/sells-group/ecom-prep/internal/model"
)

// Result is the reconciled master set and everything learned building it.
type Result struct {
	Master    model.Table        `json:"-"`
	Report    model.Report       `json:"report"`
	Missing   []model.MissingRow `json:"missing,omitempty"`
	Synthesis SynthesisResult    `json:"synthesis"`
	Fill      FillStats          `json:"fill"`
}

// Reconcile threads the master table through merge, synthesis, catalog
// join, price fill and verification, then orders it by OrderItemID.
func Reconcile(in *model.Inputs, rng *rand.Rand) *Result {
	res := &Result{}

	merged, missing := MergeOrders(in.Items, in.Orders)
	res.Missing = append(res.Missing, missing...)

	purchases, missing := PurchaseEvents(in.Events, in.Products)
	res.Missing = append(res.Missing, missing...)

	merged, res.Synthesis = Synthesize(merged, purchases, rng)

	master, missing := AttachProducts(merged, in.Products)
	res.Missing = append(res.Missing, missing...)

	master, res.Fill = FillPrices(master, in.Transactions, rng)
	master, res.Report = Verify(master, in.Transactions)
	res.Master = master.SortByOrderItemID()

	if len(res.Missing) > 0 {
		zap.L().Warn("reconcile: rows without join partner",
			zap.Int("missing", len(res.Missing)),
		)
	}
	zap.L().Info("reconcile: master built",
		zap.Int("rows", len(res.Master)),
		zap.Int("synthesized", res.Synthesis.Added),
		zap.Bool("clean", res.Report.Clean()),
	)
	return res
}
