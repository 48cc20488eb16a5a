package crawler

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/sitewalk/sitewalk/internal/config"
	"github.com/sitewalk/sitewalk/internal/model"
)

// Fetcher retrieves a single page. It is the engine's only dependency on
// the network, kept behind an interface so tests can substitute fixed
// page graphs without a server.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*model.Page, error)
}

// Engine drives bounded-depth, same-origin, deduplicating traversals.
// An Engine is reusable and safe for concurrent Traverse calls: all
// per-invocation state lives in the traversal, not the Engine.
type Engine struct {
	// fetcher retrieves pages.
	fetcher Fetcher

	// maxDepth limits how deep to crawl from the seed URL.
	// 0 means only the seed page, 1 means one level of links, etc.
	maxDepth int

	// concurrency bounds the number of fetches in flight at once across
	// the whole traversal, not per node.
	concurrency int

	// ignorePatterns are URL path patterns never followed.
	ignorePatterns []string

	// followPatterns, when set, restrict following to matching paths.
	followPatterns []string

	// logger receives traversal diagnostics.
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxDepth sets the maximum crawl depth.
// 0 = only the seed page, 1 = seed plus linked pages, etc.
func WithMaxDepth(depth int) Option {
	return func(e *Engine) {
		e.maxDepth = depth
	}
}

// WithConcurrency sets the bound on fetches in flight at once.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		e.concurrency = n
	}
}

// WithIgnorePatterns sets URL path patterns to skip during crawling.
// Patterns use glob syntax (e.g. "/admin/*", "*.pdf").
func WithIgnorePatterns(patterns []string) Option {
	return func(e *Engine) {
		e.ignorePatterns = patterns
	}
}

// WithFollowPatterns sets URL path patterns to follow during crawling.
// If set, only URLs matching at least one pattern are followed.
func WithFollowPatterns(patterns []string) Option {
	return func(e *Engine) {
		e.followPatterns = patterns
	}
}

// WithLogger sets the logger used for traversal diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an Engine using the given fetcher.
func New(fetcher Fetcher, opts ...Option) *Engine {
	e := &Engine{
		fetcher:     fetcher,
		maxDepth:    config.DefaultMaxDepth,
		concurrency: config.DefaultConcurrency,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Traverse crawls same-origin pages reachable from seedURL within the
// engine's depth bound and returns the discovered URLs and per-page
// errors. The error return covers only seed validation; fetch failures
// during the traversal are recorded on the result instead.
func (e *Engine) Traverse(ctx context.Context, seedURL string) (*model.CrawlResult, error) {
	seed, err := url.Parse(seedURL)
	if err != nil {
		return nil, fmt.Errorf("invalid seed URL: %w", err)
	}
	if seed.Scheme != "http" && seed.Scheme != "https" {
		return nil, fmt.Errorf("invalid seed URL %q: scheme must be http or https", seedURL)
	}
	if seed.Host == "" {
		return nil, fmt.Errorf("invalid seed URL %q: missing host", seedURL)
	}

	t := &traversal{
		engine:  e,
		origin:  strings.ToLower(seed.Scheme) + "://" + strings.ToLower(seed.Host),
		visited: make(map[string]bool),
		result:  &model.CrawlResult{URLs: make([]string, 0)},
		sem:     make(chan struct{}, e.concurrency),
	}

	t.visit(ctx, normalizeURL(seed.String()), 0)

	e.logger.Debug("traversal finished",
		"seed", seedURL,
		"urls", len(t.result.URLs),
		"errors", len(t.result.Errors))

	return t.result, nil
}

// traversal holds the state of one Traverse invocation. The visited set
// and result are the only state shared across branches; both are guarded
// by mu. The set is discarded when the invocation returns.
type traversal struct {
	engine *Engine
	origin string

	mu      sync.Mutex
	visited map[string]bool
	result  *model.CrawlResult

	// sem bounds fetches in flight across all branches.
	sem chan struct{}
}

// visit expands one frontier node. It returns only after every branch it
// spawned (transitively) has reached a terminal state.
func (t *traversal) visit(ctx context.Context, pageURL string, depth int) {
	if depth > t.engine.maxDepth {
		return
	}

	// Claim the URL before fetching. Whichever branch wins this race
	// proceeds; the loser observes membership and prunes. Recording at
	// claim time means a URL counts as discovered even if its own
	// expansion fails later.
	if !t.claim(pageURL) {
		return
	}

	t.sem <- struct{}{}
	page, err := t.engine.fetcher.Fetch(ctx, pageURL)
	<-t.sem
	if err != nil {
		t.fail(pageURL, err)
		return
	}

	parsed, err := ExtractLinks(bytes.NewReader(page.Body), pageURL)
	if err != nil {
		t.fail(pageURL, err)
		return
	}

	g := new(errgroup.Group)
	for _, link := range parsed.Links {
		child := normalizeURL(link.URL)
		if !t.sameOrigin(child) {
			continue
		}
		if !t.engine.shouldFollow(child) {
			continue
		}
		nextDepth := depth + 1
		g.Go(func() error {
			t.visit(ctx, child, nextDepth)
			return nil
		})
	}
	// Branches never surface errors through the group; failures were
	// already recorded per node.
	_ = g.Wait()
}

// claim marks a URL as visited and records it as discovered. It returns
// false when another branch already claimed it.
func (t *traversal) claim(pageURL string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.visited[pageURL] {
		return false
	}
	t.visited[pageURL] = true
	t.result.URLs = append(t.result.URLs, pageURL)
	return true
}

// fail records a fetch failure for one page. The branch terminates with
// zero children; siblings are unaffected.
func (t *traversal) fail(pageURL string, err error) {
	t.engine.logger.Debug("page failed", "url", pageURL, "error", err)
	t.mu.Lock()
	defer t.mu.Unlock()
	t.result.Errors = append(t.result.Errors, model.CrawlError{
		URL:    pageURL,
		Reason: err.Error(),
	})
}

// sameOrigin reports whether a URL shares the seed's scheme, host, and
// port. Cross-origin links are discovered as text but never followed.
func (t *traversal) sameOrigin(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.ToLower(u.Scheme)+"://"+strings.ToLower(u.Host) == t.origin
}

// normalizeURL normalizes a URL for deduplication: the fragment is
// dropped, scheme and host are lowercased, and an empty path becomes "/"
// so http://example.com and http://example.com/ claim the same slot.
func normalizeURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	u.Fragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if u.Path == "" {
		u.Path = "/"
	}

	return u.String()
}
