package recorder

import "time"

// RunRecord describes one pipeline run. It carries outcome metadata only;
// the series itself is never persisted.
type RunRecord struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Source     string
	SeriesKey  string
	Status     string // "data", "empty" or "failed"
	Points     int
	LastValue  *float64
	Error      string
}

// Recorder keeps a journal of pipeline runs.
type Recorder interface {
	RecordRun(rec *RunRecord) error
	RecentRuns(limit int) ([]RunRecord, error)
	Close() error
}
