package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/ecom-prep/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	stage       TEXT NOT NULL,
	seed        INTEGER NOT NULL,
	status      TEXT NOT NULL DEFAULT 'running',
	summary     TEXT,
	error       TEXT NOT NULL DEFAULT '',
	started_at  DATETIME NOT NULL,
	finished_at DATETIME
);

CREATE TABLE IF NOT EXISTS snapshots (
	id         TEXT PRIMARY KEY,
	run_id     TEXT NOT NULL REFERENCES runs(id),
	name       TEXT NOT NULL,
	path       TEXT NOT NULL,
	rows       INTEGER NOT NULL,
	sha256     TEXT NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS geocode_cache (
	query     TEXT PRIMARY KEY,
	lat       REAL NOT NULL,
	lon       REAL NOT NULL,
	cached_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
CREATE INDEX IF NOT EXISTS idx_snapshots_name ON snapshots(name, created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateRun(ctx context.Context, stage string, seed int64) (*model.Run, error) {
	r := &model.Run{
		ID:        uuid.New().String(),
		Stage:     stage,
		Seed:      seed,
		Status:    model.RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, stage, seed, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.Stage, r.Seed, string(r.Status), r.StartedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert run")
	}
	return r, nil
}

func (s *SQLiteStore) FinishRun(ctx context.Context, runID string, status model.RunStatus, summary []byte, errMsg string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, summary = ?, error = ?, finished_at = ? WHERE id = ?`,
		string(status), nullString(summary), errMsg, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: finish run %s", runID)
	}
	return checkRowsAffected(res, "run", runID)
}

const runColumns = `id, stage, seed, status, summary, error, started_at, finished_at`

func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*model.Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, runID)
	r, err := scanRun(row)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get run %s", runID)
	}
	return r, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error) {
	var (
		where []string
		args  []any
	)
	if filter.Stage != "" {
		where = append(where, "stage = ?")
		args = append(args, filter.Stage)
	}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(filter.Status))
	}

	query := `SELECT ` + runColumns + ` FROM runs`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultRunLimit
	}
	query += ` ORDER BY started_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close() //nolint:errcheck

	var runs []model.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		runs = append(runs, *r)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: iterate runs")
}

func (s *SQLiteStore) SaveSnapshot(ctx context.Context, snap *model.Snapshot) error {
	if snap.ID == "" {
		snap.ID = uuid.New().String()
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (id, run_id, name, path, rows, sha256, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.RunID, snap.Name, snap.Path, snap.Rows, snap.SHA256, snap.CreatedAt,
	)
	return eris.Wrapf(err, "sqlite: save snapshot %s", snap.Name)
}

func (s *SQLiteStore) LatestSnapshot(ctx context.Context, name string) (*model.Snapshot, error) {
	var snap model.Snapshot
	err := s.db.QueryRowContext(ctx,
		`SELECT id, run_id, name, path, rows, sha256, created_at FROM snapshots WHERE name = ? ORDER BY created_at DESC LIMIT 1`,
		name,
	).Scan(&snap.ID, &snap.RunID, &snap.Name, &snap.Path, &snap.Rows, &snap.SHA256, &snap.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: latest snapshot %s", name)
	}
	return &snap, nil
}

func (s *SQLiteStore) GetGeocode(ctx context.Context, query string) (*model.GeoPoint, error) {
	p := model.GeoPoint{Query: query}
	err := s.db.QueryRowContext(ctx,
		`SELECT lat, lon, cached_at FROM geocode_cache WHERE query = ?`, query,
	).Scan(&p.Lat, &p.Lon, &p.CachedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get geocode %q", query)
	}
	return &p, nil
}

func (s *SQLiteStore) PutGeocodes(ctx context.Context, points []model.GeoPoint) error {
	if len(points) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin geocode tx")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO geocode_cache (query, lat, lon, cached_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(query) DO UPDATE SET lat = excluded.lat, lon = excluded.lon, cached_at = excluded.cached_at`)
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare geocode upsert")
	}
	defer stmt.Close() //nolint:errcheck

	now := time.Now().UTC()
	for _, p := range points {
		if _, err := stmt.ExecContext(ctx, p.Query, p.Lat, p.Lon, now); err != nil {
			return eris.Wrapf(err, "sqlite: put geocode %q", p.Query)
		}
	}
	return eris.Wrap(tx.Commit(), "sqlite: commit geocodes")
}

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Errorf("%s not found: %s", entity, id)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanRun(row scannable) (*model.Run, error) {
	var (
		r        model.Run
		status   string
		summary  sql.NullString
		finished sql.NullTime
	)
	if err := row.Scan(&r.ID, &r.Stage, &r.Seed, &status, &summary, &r.Error, &r.StartedAt, &finished); err != nil {
		return nil, err
	}
	r.Status = model.RunStatus(status)
	if summary.Valid {
		r.Summary = []byte(summary.String)
	}
	if finished.Valid {
		t := finished.Time
		r.FinishedAt = &t
	}
	return &r, nil
}

func nullString(b []byte) sql.NullString {
	if b == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(b), Valid: true}
}
