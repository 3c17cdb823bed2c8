// Package cli implements the sigil command-line interface.
//
// This package provides commands for pouring seals from identifiers,
// inspecting their layout, colorways and document trees, serving them over
// HTTP, and managing the local cache. The CLI is built using cobra and logs
// through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - pour: Render one seal to SVG, PNG, PDF, JSON or DOT
//   - batch: Render many seals concurrently
//   - layout: Print the grid geometry for a symbol count
//   - colorways: List, inspect or interactively pick a colorway
//   - tree: Draw a seal's document tree with Graphviz
//   - serve: Run the HTTP API
//   - cache: Manage the local cache
//
// # Configuration
//
// Defaults are read from $XDG_CONFIG_HOME/sigil/config.toml (or --config).
// Flags override the file; the file overrides built-in defaults.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/matzehuels/sigil/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger writing to w at level, with "15:04:05.00"
// timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs the completion of a multi-seal operation with its elapsed
// time, e.g. "Poured 12 of 12 seals (1.234s)". Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// poured logs how many of total seals rendered.
func (p *progress) poured(ok, total int) {
	p.done(fmt.Sprintf("Poured %d of %d seals", ok, total))
}

func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx. The root command does this for every
// subcommand, so code that only has a context can still log.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() when there is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
