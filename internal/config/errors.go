package config

import "errors"

// Configuration validation errors returned by Config.Validate().
//
// Design decision: package-level sentinel errors rather than error values
// created inside Validate(), so callers can use errors.Is() while still
// getting human-readable messages.
var (
	// ErrInvalidTimeout is returned when a timeout is zero or negative.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrDepthOutOfRange is returned when the crawl depth is negative or
	// exceeds MaxDepthCeiling.
	ErrDepthOutOfRange = errors.New("invalid depth: must be between 0 and 5")

	// ErrInvalidLimit is returned when the sitemap entry limit is not positive.
	ErrInvalidLimit = errors.New("invalid limit: must be positive")

	// ErrInvalidConcurrency is returned when the concurrency is not positive.
	// Zero concurrent requests would stop the crawl entirely.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// Use 0 to fall back to the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
