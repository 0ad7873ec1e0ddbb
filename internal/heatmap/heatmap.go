package heatmap

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/ecom-prep/internal/tabular"
	"github.com/sells-group/ecom-prep/pkg/geocode"
)

// Result summarises a heatmap run.
type Result struct {
	Clusters  int          `json:"clusters"`
	Locations int          `json:"locations"`
	Geocode   GeocodeStats `json:"geocode"`
	Files     []string     `json:"files"`
}

// Generate builds the pivot, geocodes its locations and renders the layers.
func Generate(ctx context.Context, segmented, behavior *tabular.Table, client geocode.Client, outDir string) (*Result, error) {
	p, err := BuildPivot(segmented, behavior)
	if err != nil {
		return nil, err
	}
	coords, stats, err := GeocodeLocations(ctx, client, p.Locations)
	if err != nil {
		return nil, err
	}
	files, err := Render(outDir, p, coords)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Clusters:  len(p.Clusters),
		Locations: len(p.Locations),
		Geocode:   stats,
		Files:     files,
	}
	zap.L().Info("heatmap: layers written",
		zap.Int("clusters", res.Clusters),
		zap.Int("locations", res.Locations),
		zap.Int("resolved", stats.Resolved),
		zap.Int("files", len(files)),
	)
	return res, nil
}
