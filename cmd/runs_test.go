package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/ecom-prep/internal/model"
)

func TestFormatRunsList(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	finished := now.Add(2 * time.Minute)
	runs := []model.Run{
		{
			ID:         "abc12345-6789-0000-0000-000000000000",
			Stage:      "clean",
			Seed:       42,
			Status:     model.RunStatusComplete,
			StartedAt:  now,
			FinishedAt: &finished,
		},
		{
			ID:        "def12345-6789-0000-0000-000000000000",
			Stage:     "heatmap",
			Seed:      7,
			Status:    model.RunStatusRunning,
			StartedAt: now,
		},
	}

	var buf bytes.Buffer
	formatRunsList(&buf, runs, now.Add(30*time.Second))

	output := buf.String()
	assert.Contains(t, output, "STAGE")
	assert.Contains(t, output, "abc12345")
	assert.NotContains(t, output, "abc12345-6789")
	assert.Contains(t, output, "clean")
	assert.Contains(t, output, "complete")
	assert.Contains(t, output, "2m0s")
	assert.Contains(t, output, "running")
	assert.Contains(t, output, "30s")
	assert.Contains(t, output, "2025-06-15 10:30")
}

func TestWriteRun_InlinesSummary(t *testing.T) {
	run := &model.Run{
		ID:      "r1",
		Stage:   "transactions",
		Status:  model.RunStatusComplete,
		Summary: []byte(`{"added":3}`),
	}

	var buf bytes.Buffer
	require.NoError(t, writeRun(&buf, run))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "transactions", got["stage"])
	assert.Equal(t, map[string]any{"added": float64(3)}, got["summary"])
}

func TestTruncateID(t *testing.T) {
	assert.Equal(t, "abc12345", truncateID("abc12345-6789"))
	assert.Equal(t, "short", truncateID("short"))
}
