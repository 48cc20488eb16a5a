package view

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sitewalk/sitewalk/internal/config"
	"github.com/sitewalk/sitewalk/internal/crawler"
	"github.com/sitewalk/sitewalk/internal/model"
)

// Prober issues an existence check against a single URL.
type Prober interface {
	Probe(ctx context.Context, rawURL string) bool
}

// LinkChecker validates every link found on a single page. It is the
// depth-0 degenerate form of the multi-page tools: it uses the same link
// extraction but never the traversal engine.
type LinkChecker struct {
	fetcher     crawler.Fetcher
	prober      Prober
	concurrency int
}

// LinkCheckerOption configures a LinkChecker.
type LinkCheckerOption func(*LinkChecker)

// WithCheckConcurrency sets the bound on probes in flight at once.
func WithCheckConcurrency(n int) LinkCheckerOption {
	return func(c *LinkChecker) {
		c.concurrency = n
	}
}

// NewLinkChecker creates a LinkChecker using the given fetcher and prober.
func NewLinkChecker(fetcher crawler.Fetcher, prober Prober, opts ...LinkCheckerOption) *LinkChecker {
	c := &LinkChecker{
		fetcher:     fetcher,
		prober:      prober,
		concurrency: config.DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Check fetches pageURL, extracts its links, and probes each distinct
// resolved URL concurrently. Link extraction already deduplicates by
// absolute URL, so a link appearing twice on the page is probed once.
// Malformed hrefs are reported with status invalid_url rather than
// silently dropped.
func (c *LinkChecker) Check(ctx context.Context, pageURL string) (*model.LinkCheckReport, error) {
	page, err := c.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}

	parsed, err := crawler.ExtractLinks(bytes.NewReader(page.Body), pageURL)
	if err != nil {
		return nil, fmt.Errorf("extracting links: %w", err)
	}

	report := &model.LinkCheckReport{
		PageURL:   pageURL,
		CheckedAt: time.Now(),
		Results:   make([]model.LinkCheck, 0, len(parsed.Links)+len(parsed.Invalid)),
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for _, link := range parsed.Links {
		target := link.URL
		g.Go(func() error {
			status := model.LinkStatusBroken
			if c.prober.Probe(ctx, target) {
				status = model.LinkStatusValid
			}
			mu.Lock()
			report.Results = append(report.Results, model.LinkCheck{URL: target, Status: status})
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	// Probe completion order is nondeterministic; sort so output is
	// stable across runs.
	sort.Slice(report.Results, func(i, j int) bool {
		return report.Results[i].URL < report.Results[j].URL
	})

	for _, href := range parsed.Invalid {
		report.Results = append(report.Results, model.LinkCheck{
			URL:    href,
			Status: model.LinkStatusInvalidURL,
		})
	}

	return report, nil
}
