package server

import (
	"time"

	"ProfitChart/internal/recorder"
)

type runView struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Source     string    `json:"source"`
	SeriesKey  string    `json:"series_key"`
	Status     string    `json:"status"`
	Points     int       `json:"points"`
	LastValue  *float64  `json:"last_value,omitempty"`
	Error      string    `json:"error,omitempty"`
}

func newRunView(r recorder.RunRecord) runView {
	return runView{
		ID:         r.ID,
		StartedAt:  r.StartedAt.UTC(),
		FinishedAt: r.FinishedAt.UTC(),
		Source:     r.Source,
		SeriesKey:  r.SeriesKey,
		Status:     r.Status,
		Points:     r.Points,
		LastValue:  r.LastValue,
		Error:      r.Error,
	}
}
