package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/sitewalk/sitewalk/internal/config"
	"github.com/sitewalk/sitewalk/internal/model"
)

// FetchError describes a failed page fetch: a network error, a timeout,
// or a non-2xx response.
type FetchError struct {
	// URL is the URL whose fetch failed.
	URL string

	// StatusCode is the HTTP status code, or 0 when no response arrived.
	StatusCode int

	// Err is the underlying cause, nil for status failures.
	Err error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

// Unwrap returns the underlying cause, if any.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher retrieves pages over HTTP.
type Fetcher struct {
	// client performs the requests. Its Timeout bounds each fetch.
	client *http.Client

	// userAgent is sent with every request so site operators can identify
	// sitewalk traffic in their logs.
	userAgent string

	// maxBodySize caps how many bytes of a response body are read.
	maxBodySize int64

	// headers are extra headers added to every request (site overrides).
	headers map[string]string

	// logger receives fetch diagnostics.
	logger *slog.Logger
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithTimeout sets the per-fetch timeout.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.client.Timeout = d
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response body size to read.
func WithMaxBodySize(size int64) FetcherOption {
	return func(f *Fetcher) {
		f.maxBodySize = size
	}
}

// WithHeaders sets extra headers added to every request.
func WithHeaders(headers map[string]string) FetcherOption {
	return func(f *Fetcher) {
		f.headers = headers
	}
}

// WithLogger sets the logger used for fetch diagnostics.
func WithLogger(logger *slog.Logger) FetcherOption {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher creates a Fetcher with the default timeout, User-Agent, and
// body size cap from the config package.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:      &http.Client{Timeout: config.DefaultFetchTimeout},
		userAgent:   config.DefaultUserAgent,
		maxBodySize: config.DefaultMaxBodySize,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch retrieves the given URL and returns the page. It fails with a
// *FetchError on network failure, timeout, or non-2xx status. Non-HTML
// content types are accepted but logged as a warning, since some servers
// mislabel responses.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*model.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	contentType := resp.Header.Get("Content-Type")

	// Decode to UTF-8 based on the declared charset (and meta hints).
	// charset.NewReader falls back to a pass-through reader when the
	// encoding is unknown, so this never rejects a page.
	bodyReader, err := charset.NewReader(io.LimitReader(resp.Body, f.maxBodySize), contentType)
	if err != nil {
		bodyReader = io.LimitReader(resp.Body, f.maxBodySize)
	}

	body, err := io.ReadAll(bodyReader)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}

	page := &model.Page{
		URL:         rawURL,
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Body:        body,
		Headers:     resp.Header,
		FetchedAt:   time.Now(),
	}

	if !page.IsHTML() {
		f.logger.Warn("non-HTML content type",
			"url", rawURL,
			"content_type", contentType)
	}

	return page, nil
}
