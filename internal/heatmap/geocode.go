package heatmap

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/ecom-prep/pkg/geocode"
)

// Coord is a WGS84 position.
type Coord struct {
	Lat float64
	Lon float64
}

// GeocodeStats summarises a geocoding pass.
type GeocodeStats struct {
	Resolved   int `json:"resolved"`
	Unresolved int `json:"unresolved"`
	Failed     int `json:"failed"`
}

// GeocodeLocations resolves each location in turn. Unmatched locations
// and locations whose lookup fails are left out of the result; only a
// cancelled context aborts the pass.
func GeocodeLocations(ctx context.Context, client geocode.Client, locations []string) (map[string]Coord, GeocodeStats, error) {
	var stats GeocodeStats
	coords := make(map[string]Coord, len(locations))
	for i, loc := range locations {
		res, err := client.Geocode(ctx, loc)
		if err != nil {
			if ctx.Err() != nil {
				return nil, stats, eris.Wrap(ctx.Err(), "heatmap: geocode")
			}
			zap.L().Warn("heatmap: geocode failed", zap.String("location", loc), zap.Error(err))
			stats.Failed++
			continue
		}
		if !res.Matched {
			stats.Unresolved++
			continue
		}
		coords[loc] = Coord{Lat: res.Latitude, Lon: res.Longitude}
		stats.Resolved++
		zap.L().Debug("heatmap: location resolved",
			zap.String("location", loc),
			zap.String("source", res.Source),
			zap.Int("done", i+1),
			zap.Int("total", len(locations)),
		)
	}
	return coords, stats, nil
}
