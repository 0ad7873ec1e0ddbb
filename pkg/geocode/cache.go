package geocode

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/ecom-prep/internal/model"
)

// Cache persists resolved queries between runs.
type Cache interface {
	GetGeocode(ctx context.Context, query string) (*model.GeoPoint, error)
	PutGeocodes(ctx context.Context, points []model.GeoPoint) error
}

// CachedClient answers from Cache when it can and writes new matches back.
// Unmatched queries are not cached, so a later run tries them again.
type CachedClient struct {
	next  Client
	cache Cache
}

// NewCachedClient wraps next with cache.
func NewCachedClient(next Client, cache Cache) *CachedClient {
	return &CachedClient{next: next, cache: cache}
}

// Geocode implements Client.
func (c *CachedClient) Geocode(ctx context.Context, query string) (*Result, error) {
	hit, err := c.cache.GetGeocode(ctx, query)
	if err != nil {
		zap.L().Warn("geocode: cache lookup failed", zap.String("query", query), zap.Error(err))
	} else if hit != nil {
		return &Result{
			Query:     query,
			Latitude:  hit.Lat,
			Longitude: hit.Lon,
			Source:    "cache",
			Matched:   true,
		}, nil
	}

	res, err := c.next.Geocode(ctx, query)
	if err != nil {
		return nil, err
	}
	if res.Matched {
		point := model.GeoPoint{Query: query, Lat: res.Latitude, Lon: res.Longitude}
		if err := c.cache.PutGeocodes(ctx, []model.GeoPoint{point}); err != nil {
			zap.L().Warn("geocode: cache store failed", zap.String("query", query), zap.Error(eris.Wrap(err, "geocode: cache store")))
		}
	}
	return res, nil
}
