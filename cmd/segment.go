package main

import (
	"context"

	"github.com/sells-group/ecom-prep/internal/config"
	"github.com/sells-group/ecom-prep/internal/dataset"
	"github.com/sells-group/ecom-prep/internal/nlp"
)

func nlpOptions(c config.NLPConfig) nlp.Options {
	return nlp.Options{
		MaxFeatures: c.MaxFeatures,
		Topics:      c.Topics,
		Clusters:    c.Clusters,
		NInit:       c.NInit,
		Iterations:  c.Iterations,
	}
}

func runSegment(ctx context.Context, env *stageEnv) (any, error) {
	master, err := env.dir.Read(ctx, dataset.OrdersMaster)
	if err != nil {
		return nil, err
	}
	out, stats, err := nlp.Segment(master, nlp.DefaultLexicon(), nlpOptions(env.cfg.NLP), env.rng)
	if err != nil {
		return nil, err
	}
	if err := env.write(ctx, dataset.OrdersSegmented, out); err != nil {
		return nil, err
	}
	return stats, nil
}
