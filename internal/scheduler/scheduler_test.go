package scheduler

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ProfitChart/internal/collector"
	"ProfitChart/internal/model"
	"ProfitChart/internal/recorder"
	"ProfitChart/internal/render"
)

const seriesKey = "4_bybit__profitPoint"

func newTestScheduler(t *testing.T, f collector.Fetcher, rec recorder.Recorder) *Scheduler {
	t.Helper()
	col := collector.NewCollector(f, seriesKey, false, zerolog.Nop())
	return NewScheduler(col, rec, time.UTC, render.DefaultLabels(), zerolog.Nop())
}

func TestScheduler_StartsLoading(t *testing.T) {
	s := newTestScheduler(t, &collector.MockFetcher{}, recorder.NewNoopRecorder())
	assert.Equal(t, model.ViewLoading, s.State().Kind)
}

func TestScheduler_RunOnce_Ready(t *testing.T) {
	m := &collector.MockFetcher{Points: []model.RawPoint{
		{Date: "2024-03-05", RValue: model.NewRate(0.10)},
		{Date: "2024-03-06", RValue: model.NewRate(-0.05)},
		{Date: "2024-03-07", RValue: model.NewRate(0.02)},
	}}
	s := newTestScheduler(t, m, recorder.NewNoopRecorder())

	state := s.RunOnce(context.Background())
	require.Equal(t, model.ViewReady, state.Kind)
	require.Len(t, state.Points, 3)
	assert.Equal(t, "07.03", state.Points[2].DateFormatted)
	assert.InDelta(t, 6.59, state.Points[2].Value, 1e-9)

	// the startup run happens once
	s.RunOnce(context.Background())
	assert.Equal(t, 1, m.Calls)
}

func TestScheduler_RunOnce_Empty(t *testing.T) {
	s := newTestScheduler(t, &collector.MockFetcher{Points: []model.RawPoint{}}, recorder.NewNoopRecorder())
	state := s.RunOnce(context.Background())
	assert.True(t, state.Empty())
}

func TestScheduler_RunOnce_FetchFailure(t *testing.T) {
	cause := &collector.FetchError{Op: "fetch series", Err: errors.New("network is unreachable")}
	s := newTestScheduler(t, &collector.MockFetcher{Err: cause}, recorder.NewNoopRecorder())

	var fromLoading, errorMessages int
	s.OnTransition(func(from, to model.ViewState) {
		if from.Kind == model.ViewLoading {
			fromLoading++
		}
		if to.Kind == model.ViewError {
			errorMessages++
		}
	})

	s.RunOnce(context.Background())
	s.RunOnce(context.Background())

	state := s.State()
	assert.Equal(t, model.ViewError, state.Kind)
	assert.Contains(t, state.Message, "network is unreachable")
	assert.True(t, strings.HasPrefix(state.Message, render.DefaultLabels().ErrorPrefix))
	assert.Equal(t, 1, fromLoading, "loading cleared exactly once")
	assert.Equal(t, 1, errorMessages, "exactly one error surfaced")
}

func TestScheduler_WarnsOnInvalidDates(t *testing.T) {
	m := &collector.MockFetcher{Points: []model.RawPoint{
		{Date: "2024-03-05", RValue: model.NewRate(0.1)},
		{Date: "someday", RValue: model.NewRate(0.1)},
		{Date: "", RValue: model.NewRate(0.1)},
	}}
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.WarnLevel)
	col := collector.NewCollector(m, seriesKey, false, zerolog.Nop())
	s := NewScheduler(col, recorder.NewNoopRecorder(), time.UTC, render.DefaultLabels(), log)

	state := s.RunOnce(context.Background())
	require.Equal(t, model.ViewReady, state.Kind)
	assert.Contains(t, buf.String(), `"invalid_dates":2`)
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestScheduler_RefreshReplacesState(t *testing.T) {
	m := &collector.MockFetcher{Points: []model.RawPoint{{Date: "2024-03-05", RValue: model.NewRate(0.1)}}}
	s := newTestScheduler(t, m, recorder.NewNoopRecorder())

	// refresh before the startup run is ignored
	s.Refresh(context.Background())
	assert.Equal(t, 0, m.Calls)

	s.RunOnce(context.Background())
	m.Points = append(m.Points, model.RawPoint{Date: "2024-03-06", RValue: model.NewRate(0.1)})
	s.Refresh(context.Background())

	state := s.State()
	require.Len(t, state.Points, 2)
	assert.InDelta(t, 21.0, state.Points[1].Value, 1e-9)
	assert.Equal(t, 2, m.Calls)
}

func TestScheduler_StateIsACopy(t *testing.T) {
	m := &collector.MockFetcher{Points: []model.RawPoint{{Date: "2024-03-05", RValue: model.NewRate(0.1)}}}
	s := newTestScheduler(t, m, recorder.NewNoopRecorder())
	s.RunOnce(context.Background())

	st := s.State()
	st.Points[0].Value = -1
	assert.InDelta(t, 10.0, s.State().Points[0].Value, 1e-9)
}

func TestScheduler_RecordsRuns(t *testing.T) {
	rec, err := recorder.NewSQLiteRecorder(filepath.Join(t.TempDir(), "runs.db"), zerolog.Nop())
	require.NoError(t, err)
	defer rec.Close()

	m := &collector.MockFetcher{Points: []model.RawPoint{{Date: "2024-03-05", RValue: model.NewRate(0.015)}}}
	s := newTestScheduler(t, m, rec)
	s.RunOnce(context.Background())

	runs, err := rec.RecentRuns(5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "data", runs[0].Status)
	assert.Equal(t, "mock", runs[0].Source)
	assert.Equal(t, seriesKey, runs[0].SeriesKey)
	assert.Equal(t, 1, runs[0].Points)
	require.NotNil(t, runs[0].LastValue)
	assert.Equal(t, 1.5, *runs[0].LastValue)
	assert.NotEmpty(t, runs[0].ID)
}

func TestScheduler_RegisterRefresh(t *testing.T) {
	s := newTestScheduler(t, &collector.MockFetcher{}, recorder.NewNoopRecorder())
	assert.NoError(t, s.RegisterRefresh(context.Background(), ""))
	assert.Empty(t, s.Cron.Entries())

	assert.NoError(t, s.RegisterRefresh(context.Background(), "0 */5 * * * *"))
	assert.Len(t, s.Cron.Entries(), 1)

	assert.Error(t, s.RegisterRefresh(context.Background(), "not a cron"))
}
