package fetch

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sitewalk/sitewalk/internal/config"
)

// Prober issues lightweight existence checks against single URLs.
// It never transfers a body and never returns an error: reachability
// failures are data for the link-check report, not exceptions.
type Prober struct {
	// client performs the requests. Its Timeout bounds each probe and is
	// shorter than the fetcher's, since a probe carries no body.
	client *http.Client

	// userAgent is sent with every probe.
	userAgent string

	// logger receives probe diagnostics at debug level.
	logger *slog.Logger
}

// ProberOption configures a Prober.
type ProberOption func(*Prober)

// WithProbeTimeout sets the per-probe timeout.
func WithProbeTimeout(d time.Duration) ProberOption {
	return func(p *Prober) {
		p.client.Timeout = d
	}
}

// WithProbeUserAgent sets a custom User-Agent header for probes.
func WithProbeUserAgent(ua string) ProberOption {
	return func(p *Prober) {
		p.userAgent = ua
	}
}

// WithProbeLogger sets the logger used for probe diagnostics.
func WithProbeLogger(logger *slog.Logger) ProberOption {
	return func(p *Prober) {
		p.logger = logger
	}
}

// NewProber creates a Prober with the default probe timeout.
func NewProber(opts ...ProberOption) *Prober {
	p := &Prober{
		client:    &http.Client{Timeout: config.DefaultProbeTimeout},
		userAgent: config.DefaultUserAgent,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Probe reports whether the URL answers with a 2xx status. It issues a
// HEAD request first; servers that reject HEAD outright (405, 501) get
// one GET whose body is discarded, since treating a method restriction
// as a broken link would produce false positives.
func (p *Prober) Probe(ctx context.Context, rawURL string) bool {
	status, ok := p.request(ctx, http.MethodHead, rawURL)
	if !ok {
		return false
	}

	if status == http.StatusMethodNotAllowed || status == http.StatusNotImplemented {
		status, ok = p.request(ctx, http.MethodGet, rawURL)
		if !ok {
			return false
		}
	}

	return status >= 200 && status < 300
}

// request performs a single probe request and returns the status code.
// The second return value is false when no response arrived at all.
func (p *Prober) request(ctx context.Context, method, rawURL string) (int, bool) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return 0, false
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Debug("probe failed", "url", rawURL, "method", method, "error", err)
		return 0, false
	}
	defer resp.Body.Close()

	// Drain a GET fallback so the connection can be reused; the body
	// itself is never inspected.
	if method == http.MethodGet {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
	}

	return resp.StatusCode, true
}
