package recorder

// NoopRecorder is used when no database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRun(_ *RunRecord) error { return nil }

func (n *NoopRecorder) RecentRuns(_ int) ([]RunRecord, error) { return nil, nil }

func (n *NoopRecorder) Close() error { return nil }
