package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var geocodeUpsert = UpsertConfig{
	Table:        "geocode_cache",
	Columns:      []string{"query", "lat", "lon", "cached_at"},
	ConflictKeys: []string{"query"},
}

func TestBulkUpsert_EmptyRows(t *testing.T) {
	n, err := BulkUpsert(context.Background(), nil, geocodeUpsert, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestBulkUpsert_NoColumns(t *testing.T) {
	_, err := BulkUpsert(context.Background(), nil, UpsertConfig{
		Table:        "geocode_cache",
		ConflictKeys: []string{"query"},
	}, [][]any{{"Austin, TX, US"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no columns specified")
}

func TestBulkUpsert_NoConflictKeys(t *testing.T) {
	_, err := BulkUpsert(context.Background(), nil, UpsertConfig{
		Table:   "geocode_cache",
		Columns: []string{"query"},
	}, [][]any{{"Austin, TX, US"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no conflict keys specified")
}

func TestBulkUpsert_Success(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TEMP TABLE "_tmp_upsert_geocode_cache"`).
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"_tmp_upsert_geocode_cache"}, geocodeUpsert.Columns).
		WillReturnResult(2)
	mock.ExpectExec(`INSERT INTO "geocode_cache"`).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()

	rows := [][]any{
		{"Austin, TX, US", 30.27, -97.74, "2026-01-01"},
		{"Boise, ID, US", 43.61, -116.2, "2026-01-01"},
	}
	n, err := BulkUpsert(context.Background(), mock, geocodeUpsert, rows)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestBulkUpsert_CopyError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TEMP TABLE`).WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"_tmp_upsert_geocode_cache"}, geocodeUpsert.Columns).
		WillReturnError(fmt.Errorf("copy failed"))
	mock.ExpectRollback()

	_, err = BulkUpsert(context.Background(), mock, geocodeUpsert, [][]any{{"x", 1.0, 2.0, "t"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COPY into temp table for geocode_cache")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertSQL(t *testing.T) {
	got := upsertSQL(geocodeUpsert, tempTableName(geocodeUpsert.Table))
	assert.Equal(t,
		`INSERT INTO "geocode_cache" ("query", "lat", "lon", "cached_at") SELECT "query", "lat", "lon", "cached_at" FROM "_tmp_upsert_geocode_cache" ON CONFLICT ("query") DO UPDATE SET "lat" = EXCLUDED."lat", "lon" = EXCLUDED."lon", "cached_at" = EXCLUDED."cached_at"`,
		got)

	keysOnly := UpsertConfig{Table: "t", Columns: []string{"id"}, ConflictKeys: []string{"id"}}
	assert.Contains(t, upsertSQL(keysOnly, "tmp"), "ON CONFLICT (\"id\") DO NOTHING")
}

func TestSanitizeTable(t *testing.T) {
	assert.Equal(t, `"simple"`, sanitizeTable("simple"))
	assert.Equal(t, `"prep"."geocode_cache"`, sanitizeTable("prep.geocode_cache"))
}
