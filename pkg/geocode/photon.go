package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/ecom-prep/internal/resilience"
)

// geocodePhoton issues one search request and takes the first point feature.
func (g *geocoder) geocodePhoton(ctx context.Context, query string) (*Result, error) {
	if strings.TrimSpace(query) == "" {
		return &Result{Query: query, Source: "photon"}, nil
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "geocode: photon rate limit")
	}

	params := url.Values{
		"q":     {query},
		"limit": {"1"},
	}
	reqURL := strings.TrimRight(g.baseURL, "/") + "/api/?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: photon build request")
	}
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: photon request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, resilience.FromHTTPStatus(
			eris.Errorf("geocode: photon returned status %d", resp.StatusCode),
			resp.StatusCode,
		)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: photon read body")
	}

	return parsePhotonResponse(query, body)
}

func parsePhotonResponse(query string, body []byte) (*Result, error) {
	var fc geojson.FeatureCollection
	if err := json.Unmarshal(body, &fc); err != nil {
		return nil, eris.Wrap(err, "geocode: photon parse response")
	}

	for _, f := range fc.Features {
		pt, ok := f.Geometry.(*geom.Point)
		if !ok {
			continue
		}
		label, _ := f.Properties["name"].(string)
		return &Result{
			Query:     query,
			Latitude:  pt.Y(),
			Longitude: pt.X(),
			Label:     label,
			Source:    "photon",
			Matched:   true,
		}, nil
	}
	return &Result{Query: query, Source: "photon"}, nil
}
