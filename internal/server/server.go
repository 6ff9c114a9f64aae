package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"ProfitChart/internal/model"
	"ProfitChart/internal/recorder"
	"ProfitChart/internal/render"
)

// StateSource provides the current view state.
type StateSource interface {
	State() model.ViewState
}

// Config holds server configuration
type Config struct {
	Addr     string
	Log      zerolog.Logger
	State    StateSource
	Recorder recorder.Recorder
	Page     render.PageOptions
}

// Server serves the rendered chart and its data.
type Server struct {
	router   *chi.Mux
	server   *http.Server
	log      zerolog.Logger
	state    StateSource
	recorder recorder.Recorder
	page     render.PageOptions
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	rec := cfg.Recorder
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	s := &Server{
		router:   chi.NewRouter(),
		log:      cfg.Log.With().Str("component", "server").Logger(),
		state:    cfg.State,
		recorder: rec,
		page:     cfg.Page,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	s.router.Use(middleware.Compress(5))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Get("/", s.handlePage)
	s.router.Get("/chart.png", s.handleChartPNG)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/profit", s.handleProfit)
		r.Get("/state", s.handleState)
		r.Get("/runs", s.handleRuns)
	})
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("starting HTTP server")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"state":  string(s.state.State().Kind),
	})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := render.Page(&buf, s.state.State(), s.page); err != nil {
		s.log.Error().Err(err).Msg("render page")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// handleChartPNG serves the curve as an image once data is available.
func (s *Server) handleChartPNG(w http.ResponseWriter, r *http.Request) {
	state := s.state.State()
	switch state.Kind {
	case model.ViewLoading:
		http.Error(w, s.page.Labels.Loading, http.StatusServiceUnavailable)
		return
	case model.ViewError:
		http.Error(w, state.Message, http.StatusBadGateway)
		return
	}

	var buf bytes.Buffer
	if err := render.PNG(&buf, state.Points, s.page.Chart, s.page.Labels); err != nil {
		if errors.Is(err, render.ErrNoChartData) {
			http.Error(w, s.page.Labels.NoData, http.StatusNotFound)
			return
		}
		s.log.Error().Err(err).Msg("render png")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(buf.Bytes())
}

// handleProfit returns the chart points. 503 while loading, 502 after a failed fetch.
func (s *Server) handleProfit(w http.ResponseWriter, r *http.Request) {
	state := s.state.State()
	switch state.Kind {
	case model.ViewLoading:
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": s.page.Labels.Loading})
	case model.ViewError:
		s.writeJSON(w, http.StatusBadGateway, map[string]string{"error": state.Message})
	default:
		s.writeJSON(w, http.StatusOK, state.Points)
	}
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.state.State())
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.recorder.RecentRuns(20)
	if err != nil {
		s.log.Error().Err(err).Msg("list runs")
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	out := make([]runView, 0, len(runs))
	for _, run := range runs {
		out = append(out, newRunView(run))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	var buf bytes.Buffer
	if err := render.JSON(&buf, v); err != nil {
		s.log.Error().Err(err).Msg("encode response")
		http.Error(w, "encode failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
