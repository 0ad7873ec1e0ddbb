// Package store persists pipeline runs, the snapshots they write and the
// geocode cache.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/ecom-prep/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Stage  string          `json:"stage,omitempty"`
	Status model.RunStatus `json:"status,omitempty"`
	Limit  int             `json:"limit,omitempty"`
}

// Store defines the persistence interface for the pipeline.
type Store interface {
	// Runs
	CreateRun(ctx context.Context, stage string, seed int64) (*model.Run, error)
	FinishRun(ctx context.Context, runID string, status model.RunStatus, summary []byte, errMsg string) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)

	// Snapshots
	SaveSnapshot(ctx context.Context, snap *model.Snapshot) error
	LatestSnapshot(ctx context.Context, name string) (*model.Snapshot, error)

	// Geocode cache
	GetGeocode(ctx context.Context, query string) (*model.GeoPoint, error)
	PutGeocodes(ctx context.Context, points []model.GeoPoint) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Open returns the Store for driver, migrated and ready to use.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	var (
		st  Store
		err error
	)
	switch driver {
	case "sqlite":
		st, err = NewSQLite(dsn)
	case "postgres":
		st, err = NewPostgres(ctx, dsn, nil)
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	return st, nil
}

const defaultRunLimit = 50
