package main

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sells-group/ecom-prep/internal/config"
	"github.com/sells-group/ecom-prep/internal/dataset"
	"github.com/sells-group/ecom-prep/internal/heatmap"
	"github.com/sells-group/ecom-prep/internal/resilience"
	"github.com/sells-group/ecom-prep/internal/tabular"
	"github.com/sells-group/ecom-prep/pkg/geocode"
)

func secs(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// newGeocoder builds the Photon client described by c.
func newGeocoder(c config.GeocodeConfig) geocode.Client {
	return geocode.NewClient(
		geocode.WithBaseURL(c.BaseURL),
		geocode.WithUserAgent(c.UserAgent),
		geocode.WithHTTPClient(&http.Client{Timeout: time.Duration(c.TimeoutSecs) * time.Second}),
		geocode.WithRequestInterval(secs(c.RequestDelaySecs)),
		geocode.WithRetry(resilience.FromSeconds(c.Retries, c.RetryDelaySecs)),
	)
}

func runHeatmap(ctx context.Context, env *stageEnv) (any, error) {
	var segmented, behavior *tabular.Table
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		segmented, err = env.dir.Read(gCtx, dataset.OrdersSegmented)
		return err
	})
	g.Go(func() (err error) {
		behavior, err = env.dir.Read(gCtx, dataset.CustomerBehavior)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	client := geocode.NewCachedClient(newGeocoder(env.cfg.Geocode), env.store)
	res, err := heatmap.Generate(ctx, segmented, behavior, client, env.cfg.Heatmap.OutDir)
	if err != nil {
		return nil, err
	}
	return res, nil
}
