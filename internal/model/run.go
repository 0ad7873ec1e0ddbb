package model

import "time"

// RunStatus represents the current state of a pipeline run.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run is one invocation of a pipeline stage.
type Run struct {
	ID         string     `json:"id"`
	Stage      string     `json:"stage"`
	Seed       int64      `json:"seed"`
	Status     RunStatus  `json:"status"`
	Summary    []byte     `json:"summary,omitempty"`
	Error      string     `json:"error,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// Snapshot describes a derived file written by a run. Snapshots are never
// updated; a rerun records a new one.
type Snapshot struct {
	ID        string    `json:"id"`
	RunID     string    `json:"run_id"`
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Rows      int       `json:"rows"`
	SHA256    string    `json:"sha256"`
	CreatedAt time.Time `json:"created_at"`
}
