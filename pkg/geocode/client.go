// Package geocode resolves free-form place names to coordinates with the
// Photon geocoder.
package geocode

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/sells-group/ecom-prep/internal/resilience"
)

// DefaultBaseURL is the public Photon instance.
const DefaultBaseURL = "https://photon.komoot.io"

// Client geocodes place names.
type Client interface {
	// Geocode resolves a single query. An unresolved query is not an error;
	// the result reports Matched=false.
	Geocode(ctx context.Context, query string) (*Result, error)
}

// Result holds the geocoding output for a query.
type Result struct {
	Query     string
	Latitude  float64
	Longitude float64
	Label     string // name of the matched place
	Source    string // "photon" or "cache"
	Matched   bool
}

// Option configures the geocoder.
type Option func(*geocoder)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(g *geocoder) {
		g.httpClient = hc
	}
}

// WithBaseURL points the client at another Photon instance.
func WithBaseURL(u string) Option {
	return func(g *geocoder) {
		g.baseURL = u
	}
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(g *geocoder) {
		g.userAgent = ua
	}
}

// WithRequestInterval spaces requests at least d apart. Zero disables pacing.
func WithRequestInterval(d time.Duration) Option {
	return func(g *geocoder) {
		if d <= 0 {
			g.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		g.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// WithRetry overrides the retry policy for transient failures.
func WithRetry(cfg resilience.RetryConfig) Option {
	return func(g *geocoder) {
		g.retry = cfg
	}
}

type geocoder struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	retry      resilience.RetryConfig
}

// NewClient creates a Photon Client. Defaults: one request per second,
// three attempts two seconds apart.
func NewClient(opts ...Option) Client {
	g := &geocoder{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    DefaultBaseURL,
		userAgent:  "ecom-prep",
		limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
		retry:      resilience.FixedRetryConfig(3, 2*time.Second),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.retry.OnRetry == nil {
		g.retry.OnRetry = resilience.RetryLogger("photon", "geocode")
	}
	return g
}

// Geocode resolves query, retrying transient failures.
func (g *geocoder) Geocode(ctx context.Context, query string) (*Result, error) {
	return resilience.DoVal(ctx, g.retry, func(ctx context.Context) (*Result, error) {
		return g.geocodePhoton(ctx, query)
	})
}
