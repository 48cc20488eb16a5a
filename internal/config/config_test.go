package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestNewConfig tests default configuration values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	if cfg.FetchTimeout != DefaultFetchTimeout {
		t.Errorf("expected fetch timeout %s, got %s", DefaultFetchTimeout, cfg.FetchTimeout)
	}
	if cfg.MaxDepth != DefaultMaxDepth {
		t.Errorf("expected depth %d, got %d", DefaultMaxDepth, cfg.MaxDepth)
	}
	if cfg.SitemapLimit != DefaultSitemapLimit {
		t.Errorf("expected sitemap limit %d, got %d", DefaultSitemapLimit, cfg.SitemapLimit)
	}
	if cfg.Concurrency != DefaultConcurrency {
		t.Errorf("expected concurrency %d, got %d", DefaultConcurrency, cfg.Concurrency)
	}
	if cfg.UserAgent == "" {
		t.Error("expected a default User-Agent")
	}
	if cfg.SiteConfigs == nil {
		t.Error("expected site configs to be initialized")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

// TestValidate tests configuration validation against sentinel errors.
func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"zero fetch timeout", func(c *Config) { c.FetchTimeout = 0 }, ErrInvalidTimeout},
		{"negative probe timeout", func(c *Config) { c.ProbeTimeout = -time.Second }, ErrInvalidTimeout},
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }, ErrDepthOutOfRange},
		{"depth above ceiling", func(c *Config) { c.MaxDepth = MaxDepthCeiling + 1 }, ErrDepthOutOfRange},
		{"zero sitemap limit", func(c *Config) { c.SitemapLimit = 0 }, ErrInvalidLimit},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }, ErrInvalidConcurrency},
		{"negative body size", func(c *Config) { c.MaxBodySize = -1 }, ErrInvalidMaxBodySize},
		{"conflicting report formats", func(c *Config) { c.JSONReport = true; c.MarkdownReport = true }, ErrConflictingReportFormats},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	t.Run("depth at ceiling is valid", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.MaxDepth = MaxDepthCeiling
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected depth %d to validate, got %v", MaxDepthCeiling, err)
		}
	})
}

// TestGetSiteConfig tests merging site entries over defaults.
func TestGetSiteConfig(t *testing.T) {
	t.Parallel()

	cf := &File{
		Defaults: SiteConfig{
			Depth:          1,
			Headers:        map[string]string{"Accept-Language": "en"},
			IgnorePatterns: []string{"/logout*"},
		},
		Sites: map[string]SiteConfig{
			"example.com": {
				Depth:   3,
				Headers: map[string]string{"Authorization": "Bearer token"},
			},
			"docs.example.com": {
				FollowPatterns: []string{"/docs/*"},
			},
		},
	}

	t.Run("unknown host gets defaults", func(t *testing.T) {
		t.Parallel()

		got := cf.GetSiteConfig("unknown.example")
		if got.Depth != 1 {
			t.Errorf("expected default depth 1, got %d", got.Depth)
		}
		if got.Headers["Accept-Language"] != "en" {
			t.Errorf("expected default headers, got %v", got.Headers)
		}
	})

	t.Run("site entry overrides depth and merges headers", func(t *testing.T) {
		t.Parallel()

		got := cf.GetSiteConfig("example.com")
		if got.Depth != 3 {
			t.Errorf("expected depth 3, got %d", got.Depth)
		}
		if got.Headers["Authorization"] != "Bearer token" {
			t.Errorf("expected site header, got %v", got.Headers)
		}
		if len(got.IgnorePatterns) != 1 {
			t.Errorf("expected default ignore patterns to survive, got %v", got.IgnorePatterns)
		}
	})

	t.Run("zero depth keeps the default", func(t *testing.T) {
		t.Parallel()

		got := cf.GetSiteConfig("docs.example.com")
		if got.Depth != 1 {
			t.Errorf("expected default depth 1, got %d", got.Depth)
		}
		if len(got.FollowPatterns) != 1 {
			t.Errorf("expected site follow patterns, got %v", got.FollowPatterns)
		}
	})
}

// TestLoadConfigFile tests YAML configuration loading.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("parses sites and defaults", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		content := `defaults:
  depth: 1
sites:
  example.com:
    depth: 3
    headers:
      Authorization: Bearer token
    ignorePatterns:
      - "/admin/*"
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if cf.Defaults.Depth != 1 {
			t.Errorf("expected defaults depth 1, got %d", cf.Defaults.Depth)
		}
		site := cf.Sites["example.com"]
		if site.Depth != 3 {
			t.Errorf("expected site depth 3, got %d", site.Depth)
		}
		if site.Headers["Authorization"] != "Bearer token" {
			t.Errorf("unexpected headers: %v", site.Headers)
		}
		if len(site.IgnorePatterns) != 1 || site.IgnorePatterns[0] != "/admin/*" {
			t.Errorf("unexpected ignore patterns: %v", site.IgnorePatterns)
		}
	})

	t.Run("missing file yields ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("malformed yaml fails", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte("sites: [not: a map"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if _, err := LoadConfigFile(path); err == nil {
			t.Fatal("expected error for malformed YAML")
		}
	})
}

// TestFindConfigFile tests configuration file lookup.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit path wins when it exists", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "custom.yml")
		if err := os.WriteFile(path, []byte("sites: {}"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if got := FindConfigFile(path); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("missing explicit path yields empty", func(t *testing.T) {
		t.Parallel()

		if got := FindConfigFile(filepath.Join(t.TempDir(), "nope")); got != "" {
			t.Errorf("expected empty path, got %q", got)
		}
	})
}
