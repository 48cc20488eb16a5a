package model

import "time"

// CrawlError records a fetch failure for one URL during a traversal.
// Errors are data here: a failing page terminates only its own branch.
type CrawlError struct {
	// URL is the page whose fetch failed.
	URL string `json:"url"`

	// Reason is a human-readable description of the failure.
	Reason string `json:"reason"`
}

// CrawlResult is the outcome of a single traversal invocation.
// It is immutable once the traversal returns.
type CrawlResult struct {
	// URLs are the discovered URLs in discovery order. Each URL appears
	// at most once. A URL is present even when its own expansion failed:
	// visiting it is itself a successful discovery.
	URLs []string `json:"urls"`

	// Errors lists the pages whose fetch failed, in completion order.
	Errors []CrawlError `json:"errors,omitempty"`
}

// CrawlReport wraps a CrawlResult with invocation metadata for rendering
// and persistence.
type CrawlReport struct {
	// Seed is the normalized starting URL of the crawl.
	Seed string `json:"seed"`

	// MaxDepth is the depth bound the crawl ran with.
	MaxDepth int `json:"max_depth"`

	// StartedAt is the time the crawl began.
	StartedAt time.Time `json:"started_at"`

	// Duration is the total wall-clock time of the crawl.
	Duration time.Duration `json:"duration"`

	// URLs are the discovered URLs in discovery order.
	URLs []string `json:"urls"`

	// Errors lists pages that failed to fetch.
	Errors []CrawlError `json:"errors,omitempty"`
}

// TotalURLs returns the number of discovered URLs.
func (r *CrawlReport) TotalURLs() int {
	return len(r.URLs)
}

// LinkCheckReport is the outcome of checking every link on a single page.
type LinkCheckReport struct {
	// PageURL is the page whose links were checked.
	PageURL string `json:"page_url"`

	// CheckedAt is the time the check ran.
	CheckedAt time.Time `json:"checked_at"`

	// Results holds one entry per distinct link target.
	Results []LinkCheck `json:"results"`
}

// BrokenCount returns the number of links with status broken.
func (r *LinkCheckReport) BrokenCount() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == LinkStatusBroken {
			n++
		}
	}
	return n
}

// InvalidCount returns the number of links with status invalid_url.
func (r *LinkCheckReport) InvalidCount() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == LinkStatusInvalidURL {
			n++
		}
	}
	return n
}
