package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"ProfitChart/internal/model"
	"ProfitChart/internal/render"
)

type renderCmd struct {
	configPath *string
	output     string
	format     string

	stdout io.Writer
	stderr io.Writer
}

func (*renderCmd) Name() string     { return "render" }
func (*renderCmd) Synopsis() string { return "fetch the series once and write the chart" }
func (*renderCmd) Usage() string {
	return `profitchart render [-o <file>] [-format html|json|png]

  Fetches the profit series, computes the cumulative curve and writes
  the chart page, the view state as JSON, or a PNG image to stdout or
  a file.
  Exits non-zero when the data could not be loaded.
`
}

func (c *renderCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "output file (defaults to stdout)")
	f.StringVar(&c.format, "format", "html", "output format (html, json, png)")
}

func (c *renderCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	stdout, stderr := c.writers()
	switch c.format {
	case "html", "json", "png":
	default:
		fmt.Fprintf(stderr, "Error: unknown format %q\n", c.format)
		return subcommands.ExitUsageError
	}

	a, err := newApp(*c.configPath, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	defer a.Close()

	state := a.sched.RunOnce(ctx)

	w := stdout
	if c.output != "" {
		file, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		w = file
	}

	switch {
	case c.format == "json":
		err = render.JSON(w, state)
	case c.format == "png" && state.Kind == model.ViewReady:
		err = render.PNG(w, state.Points, a.page.Chart, a.page.Labels)
	case c.format == "png":
		// the error state is reported below
	default:
		err = render.Page(w, state, a.page)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if state.Kind == model.ViewError {
		fmt.Fprintf(stderr, "Error: %s\n", state.Message)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *renderCmd) writers() (io.Writer, io.Writer) {
	stdout, stderr := c.stdout, c.stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return stdout, stderr
}
