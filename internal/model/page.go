package model

import (
	"net/http"
	"strings"
	"time"
)

// Page represents a single fetched web page.
//
// Design decision: We keep the raw body on the page rather than a parsed
// document because:
//  1. Parsing is the link resolver's concern, not the fetcher's
//  2. Single-page tools (markdown, search) want the raw HTML
//  3. The body is already capped by the fetcher's size limit
type Page struct {
	// URL is the absolute URL the page was fetched from.
	URL string

	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// ContentType is the Content-Type header of the response.
	ContentType string

	// Body is the response body, decoded to UTF-8 and capped at the
	// fetcher's maximum body size.
	Body []byte

	// Headers are the response headers.
	Headers http.Header

	// FetchedAt is the time the fetch completed.
	FetchedAt time.Time
}

// IsHTML reports whether the response declared an HTML content type.
// Servers mislabel responses often enough that callers should treat a
// false result as a warning, not a hard failure.
func (p *Page) IsHTML() bool {
	ct := strings.ToLower(p.ContentType)
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml+xml")
}
