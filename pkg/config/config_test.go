package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "woo-release.toml"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Load() without files = %+v, want defaults", cfg)
	}
	if cfg.SiteAPI() != "https://developer.woocommerce.com/wp-json/wp/v2" {
		t.Errorf("SiteAPI() = %q", cfg.SiteAPI())
	}
}

func TestLoadLocalOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "woo-release.toml")

	writeFile(t, path, `
[github]
repo = "example/shop"

[wordpress]
skip_terms = ["beta"]

[http]
rate_limit_delay = "5s"
`)
	writeFile(t, filepath.Join(dir, "woo-release.local.toml"), `
[github]
sentinel_label = "plugin: shop"

[http]
rate_limit_delay = "1s"
max_attempts = 2
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.GitHub.Repo != "example/shop" {
		t.Errorf("Repo = %q, want %q", cfg.GitHub.Repo, "example/shop")
	}
	if cfg.GitHub.SentinelLabel != "plugin: shop" {
		t.Errorf("SentinelLabel = %q, want %q", cfg.GitHub.SentinelLabel, "plugin: shop")
	}
	if cfg.GitHub.APIURL != "https://api.github.com" {
		t.Errorf("APIURL = %q, want default kept", cfg.GitHub.APIURL)
	}
	if !reflect.DeepEqual(cfg.WordPress.SkipTerms, []string{"beta"}) {
		t.Errorf("SkipTerms = %v, want [beta]", cfg.WordPress.SkipTerms)
	}
	if cfg.HTTP.RateLimitDelay.Std() != time.Second {
		t.Errorf("RateLimitDelay = %s, want 1s", cfg.HTTP.RateLimitDelay.Std())
	}
	if cfg.HTTP.MaxAttempts != 2 {
		t.Errorf("MaxAttempts = %d, want 2", cfg.HTTP.MaxAttempts)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad toml", "[github\nrepo="},
		{"bad duration", "[http]\ntimeout = \"soon\""},
		{"bad repo", "[github]\nrepo = \"woocommerce\""},
		{"bad converter", "[wordpress]\nconverter = \"pandoc\""},
		{"redis without url", "[cache]\nbackend = \"redis\""},
		{"unknown backend", "[cache]\nbackend = \"memcached\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "woo-release.toml")
			writeFile(t, path, tt.content)
			if _, err := Load(path); err == nil {
				t.Error("Load() succeeded, want error")
			}
		})
	}
}

func TestLoadToken(t *testing.T) {
	tests := []struct {
		name    string
		dotenv  string // empty means no file
		environ string
		want    string
	}{
		{name: "plain", dotenv: "GITHUB_TOKEN=abc123\n", want: "abc123"},
		{name: "quoted with comments", dotenv: "# token for api\n\nGITHUB_TOKEN=\"ghp_quoted\"\nOTHER=1\n", want: "ghp_quoted"},
		{name: "single quoted", dotenv: "GITHUB_TOKEN='ghp_single'\n", want: "ghp_single"},
		{name: "file wins over env", dotenv: "GITHUB_TOKEN=fromfile\n", environ: "fromenv", want: "fromfile"},
		{name: "env fallback", environ: "fromenv", want: "fromenv"},
		{name: "nothing", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(TokenKey, tt.environ)
			path := filepath.Join(t.TempDir(), ".env")
			if tt.dotenv != "" {
				writeFile(t, path, tt.dotenv)
			}

			got, err := LoadToken(path)
			if err != nil {
				t.Fatalf("LoadToken() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("LoadToken() = %q, want %q", got, tt.want)
			}
		})
	}
}
