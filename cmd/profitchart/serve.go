package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/subcommands"

	"ProfitChart/internal/model"
	"ProfitChart/internal/server"
)

type serveCmd struct {
	configPath *string
	addr       string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the chart over HTTP" }
func (*serveCmd) Usage() string {
	return `profitchart serve [-addr <host:port>]

  Starts the HTTP server. The series is fetched once at startup; the page
  shows the loading state until the fetch settles. When server.refresh_cron
  is set the series is re-fetched on that schedule.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "listen address (overrides server.addr)")
}

func (c *serveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp(*c.configPath, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	defer a.Close()

	addr := a.cfg.Server.Addr
	if c.addr != "" {
		addr = c.addr
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.sched.OnTransition(func(from, to model.ViewState) {
		a.log.Info().
			Str("from", string(from.Kind)).
			Str("to", string(to.Kind)).
			Int("points", len(to.Points)).
			Msg("view state changed")
	})
	go a.sched.RunOnce(ctx)

	if err := a.sched.RegisterRefresh(ctx, a.cfg.Server.RefreshCron); err != nil {
		a.log.Error().Err(err).Msg("register refresh")
		return subcommands.ExitFailure
	}
	a.sched.Start()
	defer a.sched.Stop()

	srv := server.New(server.Config{
		Addr:     addr,
		Log:      a.log,
		State:    a.sched,
		Recorder: a.rec,
		Page:     a.page,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	a.log.Info().Str("addr", addr).Msg("ProfitChart is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	status := subcommands.ExitSuccess
	select {
	case <-sigCh:
		a.log.Info().Msg("shutdown signal received, stopping...")
	case err := <-errCh:
		if err != nil {
			a.log.Error().Err(err).Msg("HTTP server failed")
			status = subcommands.ExitFailure
		}
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error().Err(err).Msg("HTTP server shutdown")
	}

	a.log.Info().Msg("ProfitChart stopped")
	return status
}
