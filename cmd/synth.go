package main

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/ecom-prep/internal/config"
	"github.com/sells-group/ecom-prep/internal/cost"
	"github.com/sells-group/ecom-prep/internal/dataset"
	"github.com/sells-group/ecom-prep/internal/synth"
	"github.com/sells-group/ecom-prep/internal/tabular"
	"github.com/sells-group/ecom-prep/pkg/anthropic"
)

func runTransactions(ctx context.Context, env *stageEnv) (any, error) {
	var masterTbl, txnTbl *tabular.Table
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		masterTbl, err = env.dir.Read(gCtx, dataset.OrdersMaster)
		return err
	})
	g.Go(func() (err error) {
		txnTbl, err = env.dir.Read(gCtx, dataset.Transactions)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	master, err := dataset.DecodeMaster(masterTbl)
	if err != nil {
		return nil, err
	}
	txns, err := dataset.DecodeTransactions(txnTbl)
	if err != nil {
		return nil, err
	}

	added, stats, err := synth.SynthesizeTransactions(master, txns, env.rng)
	if err != nil {
		return nil, err
	}
	if err := env.write(ctx, dataset.Transactions, dataset.AppendTransactions(txnTbl, added)); err != nil {
		return nil, err
	}
	return stats, nil
}

type reviewSummary struct {
	synth.ReviewStats
	Provider string                `json:"provider"`
	Usage    *anthropic.TokenUsage `json:"usage,omitempty"`
	CostUSD  *decimal.Decimal      `json:"cost_usd,omitempty"`
}

// newReviewWriter builds the configured review provider.
func newReviewWriter(c *config.Config) (synth.ReviewWriter, *synth.LLMWriter) {
	if c.Reviews.Provider != "anthropic" {
		return synth.TemplateWriter{}, nil
	}
	llm := synth.NewLLMWriter(anthropic.NewClient(c.Anthropic.Key), c.Anthropic.Model, int64(c.Anthropic.MaxTokens))
	return llm, llm
}

func runReviews(ctx context.Context, env *stageEnv) (any, error) {
	master, err := env.dir.Read(ctx, dataset.OrdersMaster)
	if err != nil {
		return nil, err
	}

	w, llm := newReviewWriter(env.cfg)
	stats, err := synth.AddReviews(ctx, master, w, env.rng)
	if err != nil {
		return nil, err
	}
	if err := env.write(ctx, dataset.OrdersMaster, master); err != nil {
		return nil, err
	}

	summary := reviewSummary{ReviewStats: stats, Provider: env.cfg.Reviews.Provider}
	if llm != nil {
		usage := llm.Usage()
		usage.Log(env.cfg.Anthropic.Model, "reviews")
		summary.Usage = &usage
		if usd, ok := cost.NewCalculator(cost.DefaultRates()).Messages(env.cfg.Anthropic.Model, usage); ok {
			summary.CostUSD = &usd
		}
	}
	return summary, nil
}

func runTracking(ctx context.Context, env *stageEnv) (any, error) {
	var tracking, master *tabular.Table
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		tracking, err = env.dir.Read(gCtx, dataset.Tracking)
		return err
	})
	g.Go(func() (err error) {
		master, err = env.dir.Read(gCtx, dataset.OrdersMaster)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out, stats, err := synth.RefreshTracking(tracking, master)
	if err != nil {
		return nil, err
	}
	if err := env.write(ctx, dataset.Tracking, out); err != nil {
		return nil, err
	}
	return stats, nil
}
