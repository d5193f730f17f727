package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bacoords/woo-dev-blog-tools/pkg/buildinfo"
	"github.com/bacoords/woo-dev-blog-tools/pkg/cache"
	"github.com/bacoords/woo-dev-blog-tools/pkg/config"
	"github.com/bacoords/woo-dev-blog-tools/pkg/htmltext"
	"github.com/bacoords/woo-dev-blog-tools/pkg/httputil"
	"github.com/bacoords/woo-dev-blog-tools/pkg/integrations"
	"github.com/bacoords/woo-dev-blog-tools/pkg/integrations/github"
	"github.com/bacoords/woo-dev-blog-tools/pkg/integrations/wordpress"
	"github.com/bacoords/woo-dev-blog-tools/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "woo-release"

	// envFile holds GITHUB_TOKEN.
	envFile = ".env"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        config.Config
	stats      *observability.Counter

	// Replaced in tests.
	sleep       httputil.SleepFunc
	interactive func() bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:      newLogger(w, level),
		cfg:         config.Default(),
		interactive: stdinIsTerminal,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "woo-release gathers WooCommerce release data for the developer blog",
		Long: `woo-release fetches release metadata from GitHub and the WooCommerce developer blog
and stores it as local CSV and text files for review.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			c.reportStats(cmd.Context())
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", config.DefaultFile, "config file")

	root.AddCommand(c.changelogCommand())
	root.AddCommand(c.postsCommand())
	root.AddCommand(c.prDescriptionsCommand())
	root.AddCommand(c.spreadsheetCommand())
	root.AddCommand(c.auditCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// setup loads configuration and attaches a run-scoped logger to the command
// context.
func (c *CLI) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	token, err := config.LoadToken(filepath.Join(filepath.Dir(c.configPath), envFile))
	if err != nil {
		return err
	}
	cfg.Token = token
	c.cfg = cfg

	c.stats = &observability.Counter{}
	observability.SetHTTPHooks(c.stats)
	observability.SetCacheHooks(c.stats)

	logger := c.Logger.With("run", uuid.NewString()[:8])
	logger.Debug("loaded config", "file", c.configPath, "token", token != "", "cache", cfg.Cache.Backend)
	cmd.SetContext(withLogger(cmd.Context(), logger))
	return nil
}

// reportStats logs the upstream traffic of the finished command.
func (c *CLI) reportStats(ctx context.Context) {
	if c.stats == nil {
		return
	}
	s := c.stats.Snapshot()
	loggerFromContext(ctx).Debug("upstream",
		"requests", s.Requests, "errors", s.Errors, "rate_limited", s.RateLimited,
		"http_time", s.Elapsed.Round(time.Millisecond),
		"cache_hits", s.CacheHits, "cache_misses", s.CacheMisses)
}

// =============================================================================
// Client Factories
// =============================================================================

// httpClient creates the shared HTTP client from the [http] settings.
func (c *CLI) httpClient(logger *log.Logger, store cache.Cache, headers map[string]string) *integrations.Client {
	return integrations.NewClient(integrations.Options{
		UserAgent: c.cfg.HTTP.UserAgent,
		Timeout:   c.cfg.HTTP.Timeout.Std(),
		Headers:   headers,
		Retry: httputil.Policy{
			Attempts: c.cfg.HTTP.MaxAttempts,
			Delay:    c.cfg.HTTP.RateLimitDelay.Std(),
			Sleep:    c.sleep,
		},
		Cache:    store,
		CacheTTL: c.cfg.Cache.TTL.Std(),
		Logger:   logger,
	})
}

// githubClient creates a GitHub client and the cache backing it. The caller
// closes the cache.
func (c *CLI) githubClient(ctx context.Context) (*github.Client, *integrations.Client, cache.Cache, error) {
	logger := loggerFromContext(ctx)
	store, err := c.newCache(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	hc := c.httpClient(logger, store, github.Headers())
	gh, err := github.NewClient(hc, c.cfg.GitHub.APIURL, c.cfg.GitHub.Repo, c.cfg.Token)
	if err != nil {
		store.Close()
		return nil, nil, nil, err
	}
	gh.SetLogger(logger)
	return gh, hc, store, nil
}

// wordpressClient creates a client for the configured blog. Blog responses
// are never cached.
func (c *CLI) wordpressClient(ctx context.Context) *wordpress.Client {
	hc := c.httpClient(loggerFromContext(ctx), nil, nil)
	return wordpress.NewClient(hc, c.cfg.SiteAPI())
}

func (c *CLI) converter() htmltext.Converter {
	return htmltext.New(c.cfg.WordPress.Converter)
}

// =============================================================================
// Cache
// =============================================================================

// newCache opens the backend selected by cache.backend.
func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	switch c.cfg.Cache.Backend {
	case "file":
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	case "redis":
		rc, err := cache.NewRedisCache(ctx, c.cfg.Cache.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("open redis cache: %w", err)
		}
		return rc, nil
	default:
		return cache.NewNullCache(), nil
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/woo-release/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
