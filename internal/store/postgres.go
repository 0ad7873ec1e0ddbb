package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/ecom-prep/internal/db"
	"github.com/sells-group/ecom-prep/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	pgxCfg.MaxConns = 4
	pgxCfg.MinConns = 1
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			pgxCfg.MaxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			pgxCfg.MinConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	stage       TEXT NOT NULL,
	seed        BIGINT NOT NULL,
	status      TEXT NOT NULL DEFAULT 'running',
	summary     JSONB,
	error       TEXT NOT NULL DEFAULT '',
	started_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	finished_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS snapshots (
	id         TEXT PRIMARY KEY,
	run_id     TEXT NOT NULL REFERENCES runs(id),
	name       TEXT NOT NULL,
	path       TEXT NOT NULL,
	rows       INTEGER NOT NULL,
	sha256     TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS geocode_cache (
	query     TEXT PRIMARY KEY,
	lat       DOUBLE PRECISION NOT NULL,
	lon       DOUBLE PRECISION NOT NULL,
	cached_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at DESC);
CREATE INDEX IF NOT EXISTS idx_snapshots_name ON snapshots(name, created_at DESC);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) CreateRun(ctx context.Context, stage string, seed int64) (*model.Run, error) {
	r := &model.Run{
		ID:        uuid.New().String(),
		Stage:     stage,
		Seed:      seed,
		Status:    model.RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO runs (id, stage, seed, status, started_at) VALUES ($1, $2, $3, $4, $5)`,
		r.ID, r.Stage, r.Seed, string(r.Status), r.StartedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert run")
	}
	return r, nil
}

func (s *PostgresStore) FinishRun(ctx context.Context, runID string, status model.RunStatus, summary []byte, errMsg string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE runs SET status = $1, summary = $2, error = $3, finished_at = $4 WHERE id = $5`,
		string(status), summary, errMsg, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: finish run %s", runID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("run not found: %s", runID)
	}
	return nil
}

func (s *PostgresStore) GetRun(ctx context.Context, runID string) (*model.Run, error) {
	r, err := scanPgRun(s.pool.QueryRow(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id = $1`, runID,
	))
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get run %s", runID)
	}
	return r, nil
}

func (s *PostgresStore) ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error) {
	var (
		where []string
		args  []any
	)
	if filter.Stage != "" {
		args = append(args, filter.Stage)
		where = append(where, fmt.Sprintf("stage = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + runColumns + ` FROM runs`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultRunLimit
	}
	args = append(args, limit)
	query += fmt.Sprintf(` ORDER BY started_at DESC LIMIT $%d`, len(args))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list runs")
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		r, err := scanPgRun(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan run")
		}
		runs = append(runs, *r)
	}
	return runs, eris.Wrap(rows.Err(), "postgres: iterate runs")
}

func (s *PostgresStore) SaveSnapshot(ctx context.Context, snap *model.Snapshot) error {
	if snap.ID == "" {
		snap.ID = uuid.New().String()
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now().UTC()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO snapshots (id, run_id, name, path, rows, sha256, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		snap.ID, snap.RunID, snap.Name, snap.Path, snap.Rows, snap.SHA256, snap.CreatedAt,
	)
	return eris.Wrapf(err, "postgres: save snapshot %s", snap.Name)
}

func (s *PostgresStore) LatestSnapshot(ctx context.Context, name string) (*model.Snapshot, error) {
	var snap model.Snapshot
	err := s.pool.QueryRow(ctx,
		`SELECT id, run_id, name, path, rows, sha256, created_at FROM snapshots WHERE name = $1 ORDER BY created_at DESC LIMIT 1`,
		name,
	).Scan(&snap.ID, &snap.RunID, &snap.Name, &snap.Path, &snap.Rows, &snap.SHA256, &snap.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: latest snapshot %s", name)
	}
	return &snap, nil
}

func (s *PostgresStore) GetGeocode(ctx context.Context, query string) (*model.GeoPoint, error) {
	p := model.GeoPoint{Query: query}
	err := s.pool.QueryRow(ctx,
		`SELECT lat, lon, cached_at FROM geocode_cache WHERE query = $1`, query,
	).Scan(&p.Lat, &p.Lon, &p.CachedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get geocode %q", query)
	}
	return &p, nil
}

var geocodeUpsert = db.UpsertConfig{
	Table:        "geocode_cache",
	Columns:      []string{"query", "lat", "lon", "cached_at"},
	ConflictKeys: []string{"query"},
}

func (s *PostgresStore) PutGeocodes(ctx context.Context, points []model.GeoPoint) error {
	now := time.Now().UTC()
	rows := make([][]any, len(points))
	for i, p := range points {
		rows[i] = []any{p.Query, p.Lat, p.Lon, now}
	}
	_, err := db.BulkUpsert(ctx, s.pool, geocodeUpsert, rows)
	return eris.Wrap(err, "postgres: put geocodes")
}

func scanPgRun(row pgx.Row) (*model.Run, error) {
	var (
		r      model.Run
		status string
	)
	if err := row.Scan(&r.ID, &r.Stage, &r.Seed, &status, &r.Summary, &r.Error, &r.StartedAt, &r.FinishedAt); err != nil {
		return nil, err
	}
	r.Status = model.RunStatus(status)
	return &r, nil
}
