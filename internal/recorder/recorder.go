package recorder

import "time"

// RunRecord summarizes one pipeline run. Only operational metadata is kept;
// computed indicator values are never persisted.
type RunRecord struct {
	StartedAt       time.Time
	Duration        time.Duration
	Succeeded       int // instruments with a non-empty series
	Failed          int // instruments that contributed no rows
	Rows            int // total indicator rows entering aggregation
	OverheatedCount int
	Published       bool
	PublishError    string
}

// Recorder persists run history for operational review.
type Recorder interface {
	RecordRun(rec *RunRecord) error
	Close() error
}
