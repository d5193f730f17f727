package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bacoords/woo-dev-blog-tools/pkg/observability"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(10 * time.Millisecond)
	prog.done("Saved 3 entries")

	if !strings.Contains(buf.String(), "Saved 3 entries (") {
		t.Errorf("progress.done() output = %q", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Error("loggerFromContext should fall back to the default logger")
	}

	custom := newLogger(&bytes.Buffer{}, log.InfoLevel)
	if got := loggerFromContext(withLogger(context.Background(), custom)); got != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
}

func TestSetupAttachesRunID(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "from-env")
	var buf bytes.Buffer
	c := New(&buf, log.InfoLevel)
	c.configPath = filepath.Join(t.TempDir(), "woo-release.toml")

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	if err := c.setup(cmd); err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	if c.cfg.Token != "from-env" {
		t.Errorf("Token = %q, want from-env", c.cfg.Token)
	}

	loggerFromContext(cmd.Context()).Info("hello")
	if !strings.Contains(buf.String(), "run=") {
		t.Errorf("log line %q has no run id", buf.String())
	}
}

func TestReportStats(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	t.Cleanup(observability.Reset)

	var buf bytes.Buffer
	c := New(&buf, log.DebugLevel)
	c.configPath = filepath.Join(t.TempDir(), "woo-release.toml")

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	if err := c.setup(cmd); err != nil {
		t.Fatalf("setup() failed: %v", err)
	}

	observability.HTTP().OnRequest(cmd.Context(), "GET", "api.github.com", "/repos")
	observability.Cache().OnCacheHit(cmd.Context(), "github")
	c.reportStats(cmd.Context())

	out := buf.String()
	if !strings.Contains(out, "requests=1") || !strings.Contains(out, "cache_hits=1") {
		t.Errorf("stats line missing counters: %q", out)
	}
}
