package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/ecom-prep/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

// --- Runs ---

func TestSQLite_RunLifecycle(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, "clean", 42)
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, model.RunStatusRunning, run.Status)

	got, err := st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, "clean", got.Stage)
	assert.Equal(t, int64(42), got.Seed)
	assert.Nil(t, got.FinishedAt)
	assert.Nil(t, got.Summary)

	require.NoError(t, st.FinishRun(ctx, run.ID, model.RunStatusComplete, []byte(`{"rows":3}`), ""))

	got, err = st.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusComplete, got.Status)
	assert.JSONEq(t, `{"rows":3}`, string(got.Summary))
	assert.NotNil(t, got.FinishedAt)
}

func TestSQLite_FinishRun_NotFound(t *testing.T) {
	st := newTestSQLiteStore(t)

	err := st.FinishRun(context.Background(), "missing", model.RunStatusFailed, nil, "boom")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run not found")
}

func TestSQLite_ListRuns_Filter(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	a, err := st.CreateRun(ctx, "clean", 1)
	require.NoError(t, err)
	_, err = st.CreateRun(ctx, "segment", 1)
	require.NoError(t, err)
	require.NoError(t, st.FinishRun(ctx, a.ID, model.RunStatusFailed, nil, "input missing"))

	all, err := st.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	failed, err := st.ListRuns(ctx, RunFilter{Status: model.RunStatusFailed})
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, "input missing", failed[0].Error)

	seg, err := st.ListRuns(ctx, RunFilter{Stage: "segment", Limit: 1})
	require.NoError(t, err)
	require.Len(t, seg, 1)
	assert.Equal(t, "segment", seg[0].Stage)
}

// --- Snapshots ---

func TestSQLite_Snapshots(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := st.CreateRun(ctx, "clean", 42)
	require.NoError(t, err)

	none, err := st.LatestSnapshot(ctx, "Orders_Master")
	require.NoError(t, err)
	assert.Nil(t, none)

	first := &model.Snapshot{RunID: run.ID, Name: "Orders_Master", Path: "data/Orders_Master.csv", Rows: 10, SHA256: "aaa"}
	require.NoError(t, st.SaveSnapshot(ctx, first))
	assert.NotEmpty(t, first.ID)

	second := &model.Snapshot{RunID: run.ID, Name: "Orders_Master", Path: "data/Orders_Master.csv", Rows: 12, SHA256: "bbb",
		CreatedAt: first.CreatedAt.Add(1e9)}
	require.NoError(t, st.SaveSnapshot(ctx, second))

	latest, err := st.LatestSnapshot(ctx, "Orders_Master")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "bbb", latest.SHA256)
	assert.Equal(t, 12, latest.Rows)
}

// --- Geocode cache ---

func TestSQLite_GeocodeCache(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	miss, err := st.GetGeocode(ctx, "Austin, TX, United States")
	require.NoError(t, err)
	assert.Nil(t, miss)

	require.NoError(t, st.PutGeocodes(ctx, []model.GeoPoint{
		{Query: "Austin, TX, United States", Lat: 30.27, Lon: -97.74},
		{Query: "Boise, ID, United States", Lat: 43.61, Lon: -116.2},
	}))
	require.NoError(t, st.PutGeocodes(ctx, []model.GeoPoint{
		{Query: "Austin, TX, United States", Lat: 30.5, Lon: -97.5},
	}))
	require.NoError(t, st.PutGeocodes(ctx, nil))

	hit, err := st.GetGeocode(ctx, "Austin, TX, United States")
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.InDelta(t, 30.5, hit.Lat, 1e-9)
	assert.InDelta(t, -97.5, hit.Lon, 1e-9)
	assert.False(t, hit.CachedAt.IsZero())
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown driver")
}

func TestOpen_SQLite(t *testing.T) {
	st, err := Open(context.Background(), "sqlite", filepath.Join(t.TempDir(), "open.db"))
	require.NoError(t, err)
	defer st.Close() //nolint:errcheck

	_, err = st.CreateRun(context.Background(), "runs", 0)
	assert.NoError(t, err)
}
