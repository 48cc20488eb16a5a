// Package config provides configuration structures and utilities for
// sitewalk. It defines the defaults and validation rules for crawling,
// link checking, and report generation, plus the optional .sitewalk file
// with per-host overrides.
package config
