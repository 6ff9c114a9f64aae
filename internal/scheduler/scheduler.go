package scheduler

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"ProfitChart/internal/collector"
	"ProfitChart/internal/model"
	"ProfitChart/internal/recorder"
	"ProfitChart/internal/render"
)

// TransitionFunc observes every change of the view state.
type TransitionFunc func(from, to model.ViewState)

// Scheduler owns the current view state. The pipeline runs once at startup;
// an optional cron expression re-runs it and replaces the state wholesale.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Recorder  recorder.Recorder
	Location  *time.Location
	Labels    render.Labels

	mu        sync.RWMutex
	state     model.ViewState
	once      sync.Once
	observers []TransitionFunc
	log       zerolog.Logger
}

// NewScheduler creates a Scheduler in the Loading state.
func NewScheduler(col *collector.Collector, rec recorder.Recorder, loc *time.Location, labels render.Labels, log zerolog.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	c := cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	return &Scheduler{
		Cron:      c,
		Collector: col,
		Recorder:  rec,
		Location:  loc,
		Labels:    labels,
		state:     model.Loading(),
		log:       log.With().Str("component", "scheduler").Logger(),
	}
}

// OnTransition registers an observer. Call before Start or RunOnce.
func (s *Scheduler) OnTransition(fn TransitionFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// State returns a copy of the current view state.
func (s *Scheduler) State() model.ViewState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// RunOnce executes the startup pipeline run. Later calls are no-ops and
// return the settled state.
func (s *Scheduler) RunOnce(ctx context.Context) model.ViewState {
	s.once.Do(func() {
		s.run(ctx, "startup")
	})
	return s.State()
}

// RegisterRefresh schedules repeated runs. An empty spec leaves the state
// settled after the startup run.
func (s *Scheduler) RegisterRefresh(ctx context.Context, spec string) error {
	if spec == "" {
		return nil
	}
	if _, err := s.Cron.AddFunc(spec, func() {
		s.Refresh(ctx)
	}); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	s.log.Info().Str("cron", spec).Msg("refresh task registered")
	return nil
}

// Refresh re-runs the pipeline and replaces the state. It does nothing
// until the startup run has settled the state.
func (s *Scheduler) Refresh(ctx context.Context) {
	if !s.State().Settled() {
		s.log.Warn().Msg("refresh skipped, startup run not finished")
		return
	}
	s.run(ctx, "refresh")
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running refresh.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info().Msg("scheduler stopped")
}

func (s *Scheduler) run(ctx context.Context, trigger string) {
	runID := uuid.New().String()
	started := time.Now()
	s.log.Info().Str("run_id", runID).Str("trigger", trigger).Msg("running pipeline")

	res := s.Collector.Collect(ctx)
	next := render.BuildView(res, s.Location, s.Labels.ErrorPrefix)
	if bad := render.CountInvalidDates(next.Points); bad > 0 {
		s.log.Warn().Str("run_id", runID).Int("invalid_dates", bad).Msg("series contains unparseable dates")
	}
	s.setState(next)

	s.record(runID, started, res)
}

func (s *Scheduler) setState(next model.ViewState) {
	s.mu.Lock()
	prev := s.state
	s.state = next.Clone()
	observers := append([]TransitionFunc(nil), s.observers...)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(prev, next)
	}
}

func (s *Scheduler) record(runID string, started time.Time, res collector.Result) {
	rec := &recorder.RunRecord{
		ID:         runID,
		StartedAt:  started,
		FinishedAt: time.Now(),
		Source:     s.Collector.Fetcher.Name(),
		SeriesKey:  s.Collector.SeriesKey,
		Status:     res.Status.String(),
		Points:     len(res.Points),
	}
	if n := len(res.Points); n > 0 {
		if v := res.Points[n-1].Value; !math.IsNaN(v) && !math.IsInf(v, 0) {
			rec.LastValue = &v
		}
	}
	if res.Err != nil {
		rec.Error = res.Err.Error()
	}
	if err := s.Recorder.RecordRun(rec); err != nil {
		s.log.Error().Err(err).Str("run_id", runID).Msg("record run")
	}
}
