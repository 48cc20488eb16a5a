package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values. Targets are ordinary web sites, so the
// timeouts are much tighter than a Tor-style crawler would need.
const (
	// DefaultFetchTimeout bounds each full page fetch. 10 seconds is
	// generous for a single HTML document while keeping a crawl with a
	// few slow pages from stalling for minutes.
	DefaultFetchTimeout = 10 * time.Second

	// DefaultProbeTimeout bounds each reachability probe. Probes carry
	// no body, so they get half the fetch budget.
	DefaultProbeTimeout = 5 * time.Second

	// DefaultMaxDepth is the crawl depth used when the caller does not
	// specify one. Depth 0 is only the seed page; 2 covers most small
	// sites without a large fan-out.
	DefaultMaxDepth = 2

	// MaxDepthCeiling is the hard upper bound on caller-supplied depth.
	// Network fan-out grows multiplicatively with depth and branching
	// factor, so a single invocation is never allowed past this.
	MaxDepthCeiling = 5

	// DefaultSitemapLimit caps the number of <url> entries in a generated
	// sitemap. 5000 stays well under the 50000-entry protocol maximum.
	DefaultSitemapLimit = 5000

	// DefaultConcurrency is the number of fetches or probes in flight at
	// once. Higher values speed up large crawls but risk rate limiting.
	DefaultConcurrency = 10

	// DefaultUserAgent identifies sitewalk in HTTP requests so operators
	// can recognize the traffic in their logs.
	DefaultUserAgent = "sitewalk/1.0 (+https://github.com/sitewalk/sitewalk)"

	// DefaultMaxBodySize limits the response body size read per page.
	// 5MB is ample for HTML while preventing memory exhaustion from
	// mislabeled large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// AppName is the application name used for XDG directory paths.
	AppName = "sitewalk"
)

// Config holds all options for a sitewalk invocation. It is populated
// from CLI flags and passed through the application via dependency
// injection rather than global state.
//
// Design decision: a single flat struct, following the same reasoning as
// the rest of the CLI: the option count is manageable and nesting would
// add indirection without benefit.
type Config struct {
	// FetchTimeout bounds each full page fetch.
	FetchTimeout time.Duration

	// ProbeTimeout bounds each reachability probe.
	ProbeTimeout time.Duration

	// MaxDepth is the crawl depth bound. 0 means only the seed page.
	// Must be within [0, MaxDepthCeiling].
	MaxDepth int

	// SitemapLimit caps the number of entries in a generated sitemap.
	SitemapLimit int

	// Concurrency is the number of fetches or probes in flight at once.
	Concurrency int

	// UserAgent is the User-Agent header sent with all requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64

	// Verbose enables debug-level log output.
	Verbose bool

	// JSONReport selects JSON report output. Mutually exclusive with
	// MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown report output. Mutually exclusive
	// with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for reports. When empty, output
	// goes to stdout.
	ReportFile string

	// ConfigFilePath is an explicit path to the .sitewalk file. When
	// empty, the current directory and then the home directory are
	// searched.
	ConfigFilePath string

	// SiteConfigs holds per-host overrides loaded from the config file.
	SiteConfigs *File

	// SaveToDB indicates whether to save crawl results to the history
	// database under DBDir.
	SaveToDB bool

	// DBDir is the directory holding the history database. Defaults to
	// the XDG data directory.
	DBDir string
}

// NewConfig creates a Config with default values. Many defaults are
// non-zero, so relying on zero values would be misleading; the
// constructor doubles as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		FetchTimeout: DefaultFetchTimeout,
		ProbeTimeout: DefaultProbeTimeout,
		MaxDepth:     DefaultMaxDepth,
		SitemapLimit: DefaultSitemapLimit,
		Concurrency:  DefaultConcurrency,
		UserAgent:    DefaultUserAgent,
		MaxBodySize:  DefaultMaxBodySize,
		SiteConfigs:  &File{Sites: make(map[string]SiteConfig)},
	}
}

// Validate checks the configuration for values that would make an
// invocation meaningless or dangerous. It returns one of the package's
// sentinel errors, so callers can match with errors.Is.
func (c *Config) Validate() error {
	if c.FetchTimeout <= 0 || c.ProbeTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxDepth < 0 || c.MaxDepth > MaxDepthCeiling {
		return ErrDepthOutOfRange
	}
	if c.SitemapLimit <= 0 {
		return ErrInvalidLimit
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}

// XDGDataDir returns the XDG data directory for sitewalk.
// On Linux: ~/.local/share/sitewalk
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}
