package main

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/sells-group/ecom-prep/internal/customer"
	"github.com/sells-group/ecom-prep/internal/dataset"
	"github.com/sells-group/ecom-prep/internal/reconcile"
	"github.com/sells-group/ecom-prep/internal/tabular"
)

type cleanSummary struct {
	CustomerBehaviorRows int               `json:"customer_behavior_rows"`
	MasterRows           int               `json:"master_rows"`
	Reconcile            *reconcile.Result `json:"reconcile"`
}

func runClean(ctx context.Context, env *stageEnv) (any, error) {
	var customers, behavior *tabular.Table
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		customers, err = env.dir.Read(gCtx, dataset.Customers)
		return err
	})
	g.Go(func() (err error) {
		behavior, err = env.dir.Read(gCtx, dataset.BehavioralData)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	joined, err := customer.Join(customers, behavior)
	if err != nil {
		return nil, err
	}
	cleaned := customer.Clean(joined)
	if err := env.write(ctx, dataset.CustomerBehavior, cleaned); err != nil {
		return nil, err
	}

	in, err := env.dir.LoadInputs(ctx)
	if err != nil {
		return nil, err
	}
	res := reconcile.Reconcile(in, env.rng)
	if err := env.write(ctx, dataset.OrdersMaster, dataset.EncodeMaster(res.Master)); err != nil {
		return nil, err
	}

	return cleanSummary{
		CustomerBehaviorRows: cleaned.Len(),
		MasterRows:           len(res.Master),
		Reconcile:            res,
	}, nil
}
