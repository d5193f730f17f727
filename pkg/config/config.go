// Package config loads woo-release settings.
//
// Settings come from three layers, later layers winning field by field:
//
//  1. built-in defaults ([Default])
//  2. woo-release.toml
//  3. woo-release.local.toml (next to the main file, meant to stay untracked)
//
// The GitHub token is read separately from a .env file (see [LoadToken]) and
// stored on the returned Config, which callers pass explicitly to every
// client they construct.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/BurntSushi/toml"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "woo-release.toml"

// Config is the full woo-release configuration.
type Config struct {
	GitHub    GitHub    `toml:"github"`
	WordPress WordPress `toml:"wordpress"`
	Output    Output    `toml:"output"`
	HTTP      HTTP      `toml:"http"`
	Cache     Cache     `toml:"cache"`

	// Token is the GitHub access token. It is never read from TOML.
	Token string `toml:"-"`
}

// GitHub configures the changelog pipeline's upstream.
type GitHub struct {
	Repo          string `toml:"repo"`           // owner/name
	APIURL        string `toml:"api_url"`        // REST API root
	TrunkURL      string `toml:"trunk_url"`      // raw readme.txt on trunk
	SentinelLabel string `toml:"sentinel_label"` // label dropped from every entry
}

// WordPress configures the developer blog.
type WordPress struct {
	SiteURL         string   `toml:"site_url"`
	ReleaseCategory string   `toml:"release_category"`
	SkipTerms       []string `toml:"skip_terms"`
	Converter       string   `toml:"converter"` // "regex" or "dom"
}

// Output holds artifact locations.
type Output struct {
	ChangelogDir string `toml:"changelog_dir"`
	PostsDir     string `toml:"posts_dir"`
	ExportsDir   string `toml:"exports_dir"`
}

// HTTP tunes the shared client.
type HTTP struct {
	UserAgent      string   `toml:"user_agent"`
	Timeout        Duration `toml:"timeout"`
	RateLimitDelay Duration `toml:"rate_limit_delay"`
	MaxAttempts    int      `toml:"max_attempts"`
}

// Cache selects the response cache backend.
type Cache struct {
	Backend  string   `toml:"backend"` // "none", "file" or "redis"
	TTL      Duration `toml:"ttl"`
	RedisURL string   `toml:"redis_url"`
}

// Duration is a time.Duration written as a string ("60s", "24h") in TOML.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Default returns the settings used when no config file is present.
func Default() Config {
	return Config{
		GitHub: GitHub{
			Repo:          "woocommerce/woocommerce",
			APIURL:        "https://api.github.com",
			TrunkURL:      "https://raw.githubusercontent.com/woocommerce/woocommerce/trunk/plugins/woocommerce/readme.txt",
			SentinelLabel: "plugin: woocommerce",
		},
		WordPress: WordPress{
			SiteURL:         "https://developer.woocommerce.com",
			ReleaseCategory: "Release Posts",
			SkipTerms:       []string{"woocommerce-blocks", "delayed", "dot-release"},
			Converter:       "regex",
		},
		Output: Output{
			ChangelogDir: "changelogs",
			PostsDir:     "release-posts",
			ExportsDir:   "exports",
		},
		HTTP: HTTP{
			Timeout:        Duration(30 * time.Second),
			RateLimitDelay: Duration(time.Minute),
			MaxAttempts:    5,
		},
		Cache: Cache{
			Backend: "none",
			TTL:     Duration(24 * time.Hour),
		},
	}
}

// Load reads path and its ".local" sibling on top of [Default].
// Missing files are not an error; with neither present Load returns the
// defaults. An empty path means [DefaultFile].
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultFile
	}
	cfg := Default()

	for _, p := range []string{path, localPath(path)} {
		var layer Config
		if _, err := toml.DecodeFile(p, &layer); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return cfg, fmt.Errorf("read config %s: %w", p, err)
		}
		if err := mergo.Merge(&cfg, layer, mergo.WithOverride); err != nil {
			return cfg, fmt.Errorf("merge config %s: %w", p, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports settings no command can work with.
func (c Config) Validate() error {
	if _, _, ok := strings.Cut(c.GitHub.Repo, "/"); !ok {
		return fmt.Errorf("github.repo %q: want owner/name", c.GitHub.Repo)
	}
	switch c.WordPress.Converter {
	case "regex", "dom":
	default:
		return fmt.Errorf("wordpress.converter %q: want regex or dom", c.WordPress.Converter)
	}
	switch c.Cache.Backend {
	case "none", "file":
	case "redis":
		if c.Cache.RedisURL == "" {
			return errors.New("cache.redis_url is required when cache.backend is redis")
		}
	default:
		return fmt.Errorf("cache.backend %q: want none, file or redis", c.Cache.Backend)
	}
	if c.HTTP.MaxAttempts < 1 {
		return fmt.Errorf("http.max_attempts must be at least 1, got %d", c.HTTP.MaxAttempts)
	}
	return nil
}

// SiteAPI returns the WordPress REST root, e.g. https://developer.woocommerce.com/wp-json/wp/v2.
func (c Config) SiteAPI() string {
	return strings.TrimRight(c.WordPress.SiteURL, "/") + "/wp-json/wp/v2"
}

// localPath maps "dir/woo-release.toml" to "dir/woo-release.local.toml".
func localPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".local" + ext
}
