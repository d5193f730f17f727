// Package cli implements the woo-release command-line interface.
//
// Every command loads the configuration (woo-release.toml, its .local
// override and the GITHUB_TOKEN from .env), builds the clients it needs and
// runs one component from pkg/. The audit command chains the post collector
// and the changelog pipeline and can check which artifacts exist.
//
// # Commands
//
//   - changelog: Save the changelog of a release as CSV
//   - posts: Download release announcements as text files
//   - pr-descriptions: Insert pull request descriptions into a changelog file
//   - spreadsheet: Export a year of blog posts by month and category
//   - audit: Fetch or check everything a release review needs
//   - cache: Manage the pull request response cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Each run gets
// a short id attached to its logger, which travels through context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Saved 42 entries (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
