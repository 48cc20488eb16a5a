package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/sitewalk/sitewalk/internal/model"
)

// fakeFetcher serves a fixed page graph from memory and records calls,
// so traversal behavior can be tested without a server.
type fakeFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	fail  map[string]bool
	calls map[string]int
}

func newFakeFetcher(pages map[string]string) *fakeFetcher {
	return &fakeFetcher{
		pages: pages,
		fail:  make(map[string]bool),
		calls: make(map[string]int),
	}
}

func (f *fakeFetcher) Fetch(_ context.Context, rawURL string) (*model.Page, error) {
	f.mu.Lock()
	f.calls[rawURL]++
	f.mu.Unlock()

	if f.fail[rawURL] {
		return nil, fmt.Errorf("fetch %s: unexpected status 500", rawURL)
	}
	body, ok := f.pages[rawURL]
	if !ok {
		return nil, fmt.Errorf("fetch %s: unexpected status 404", rawURL)
	}
	return &model.Page{
		URL:         rawURL,
		StatusCode:  http.StatusOK,
		ContentType: "text/html; charset=utf-8",
		Body:        []byte(body),
		FetchedAt:   time.Now(),
	}, nil
}

func (f *fakeFetcher) callCount(rawURL string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[rawURL]
}

// page builds a minimal HTML page linking to the given hrefs.
func page(hrefs ...string) string {
	body := "<html><body>"
	for _, h := range hrefs {
		body += fmt.Sprintf(`<a href=%q>link</a>`, h)
	}
	return body + "</body></html>"
}

// sorted returns a sorted copy for set comparison.
func sorted(urls []string) []string {
	out := append([]string(nil), urls...)
	sort.Strings(out)
	return out
}

func assertURLSet(t *testing.T, got, want []string) {
	t.Helper()
	g, w := sorted(got), sorted(want)
	if len(g) != len(w) {
		t.Fatalf("expected %d urls %v, got %d: %v", len(w), w, len(g), g)
	}
	for i := range g {
		if g[i] != w[i] {
			t.Fatalf("url set mismatch: expected %v, got %v", w, g)
		}
	}
}

// TestTraverse tests the traversal engine against fixed page graphs.
func TestTraverse(t *testing.T) {
	t.Parallel()

	t.Run("depth bound prunes deeper pages", func(t *testing.T) {
		t.Parallel()

		fetcher := newFakeFetcher(map[string]string{
			"https://example.com/":  page("/b"),
			"https://example.com/b": page("/c"),
			"https://example.com/c": page("/d"),
			"https://example.com/d": page(),
		})
		engine := New(fetcher, WithMaxDepth(2))

		result, err := engine.Traverse(context.Background(), "https://example.com")
		if err != nil {
			t.Fatalf("traverse failed: %v", err)
		}

		assertURLSet(t, result.URLs, []string{
			"https://example.com/",
			"https://example.com/b",
			"https://example.com/c",
		})
		if fetcher.callCount("https://example.com/d") != 0 {
			t.Error("page beyond the depth bound was fetched")
		}
	})

	t.Run("depth zero visits only the seed", func(t *testing.T) {
		t.Parallel()

		fetcher := newFakeFetcher(map[string]string{
			"https://example.com/":  page("/b"),
			"https://example.com/b": page(),
		})
		engine := New(fetcher, WithMaxDepth(0))

		result, err := engine.Traverse(context.Background(), "https://example.com")
		if err != nil {
			t.Fatalf("traverse failed: %v", err)
		}

		assertURLSet(t, result.URLs, []string{"https://example.com/"})
	})

	t.Run("cycle terminates with each page once", func(t *testing.T) {
		t.Parallel()

		fetcher := newFakeFetcher(map[string]string{
			"https://example.com/":  page("/b"),
			"https://example.com/b": page("/"),
		})
		engine := New(fetcher, WithMaxDepth(5))

		result, err := engine.Traverse(context.Background(), "https://example.com")
		if err != nil {
			t.Fatalf("traverse failed: %v", err)
		}

		assertURLSet(t, result.URLs, []string{
			"https://example.com/",
			"https://example.com/b",
		})
		if n := fetcher.callCount("https://example.com/"); n != 1 {
			t.Errorf("seed fetched %d times, expected once", n)
		}
	})

	t.Run("cross-origin links are not followed", func(t *testing.T) {
		t.Parallel()

		fetcher := newFakeFetcher(map[string]string{
			"https://example.com/":      page("/about", "https://other.com"),
			"https://example.com/about": page(),
			"https://other.com/":        page(),
		})
		engine := New(fetcher, WithMaxDepth(1))

		result, err := engine.Traverse(context.Background(), "https://example.com")
		if err != nil {
			t.Fatalf("traverse failed: %v", err)
		}

		assertURLSet(t, result.URLs, []string{
			"https://example.com/",
			"https://example.com/about",
		})
		if fetcher.callCount("https://other.com/") != 0 {
			t.Error("cross-origin page was fetched")
		}
	})

	t.Run("same host different port is a different origin", func(t *testing.T) {
		t.Parallel()

		fetcher := newFakeFetcher(map[string]string{
			"http://example.com:8080/": page("http://example.com:9090/x"),
			"http://example.com:9090/x": page(),
		})
		engine := New(fetcher, WithMaxDepth(1))

		result, err := engine.Traverse(context.Background(), "http://example.com:8080")
		if err != nil {
			t.Fatalf("traverse failed: %v", err)
		}

		assertURLSet(t, result.URLs, []string{"http://example.com:8080/"})
	})

	t.Run("failing sibling does not abort the crawl", func(t *testing.T) {
		t.Parallel()

		fetcher := newFakeFetcher(map[string]string{
			"https://example.com/":   page("/ok", "/boom"),
			"https://example.com/ok": page(),
		})
		fetcher.fail["https://example.com/boom"] = true
		engine := New(fetcher, WithMaxDepth(1))

		result, err := engine.Traverse(context.Background(), "https://example.com")
		if err != nil {
			t.Fatalf("traverse failed: %v", err)
		}

		// The failing page was still visited: discovery happens at claim
		// time, before the fetch.
		assertURLSet(t, result.URLs, []string{
			"https://example.com/",
			"https://example.com/ok",
			"https://example.com/boom",
		})
		if len(result.Errors) != 1 {
			t.Fatalf("expected 1 error, got %v", result.Errors)
		}
		if result.Errors[0].URL != "https://example.com/boom" {
			t.Errorf("unexpected error URL: %q", result.Errors[0].URL)
		}
		if n := fetcher.callCount("https://example.com/boom"); n != 1 {
			t.Errorf("failing page fetched %d times, expected once (no retry)", n)
		}
	})

	t.Run("converging branches expand a page exactly once", func(t *testing.T) {
		t.Parallel()

		fetcher := newFakeFetcher(map[string]string{
			"https://example.com/":  page("/b", "/c"),
			"https://example.com/b": page("/d"),
			"https://example.com/c": page("/d"),
			"https://example.com/d": page(),
		})
		engine := New(fetcher, WithMaxDepth(3))

		result, err := engine.Traverse(context.Background(), "https://example.com")
		if err != nil {
			t.Fatalf("traverse failed: %v", err)
		}

		assertURLSet(t, result.URLs, []string{
			"https://example.com/",
			"https://example.com/b",
			"https://example.com/c",
			"https://example.com/d",
		})
		if n := fetcher.callCount("https://example.com/d"); n != 1 {
			t.Errorf("converged page fetched %d times, expected once", n)
		}
	})

	t.Run("urls are normalized before claiming", func(t *testing.T) {
		t.Parallel()

		fetcher := newFakeFetcher(map[string]string{
			"https://example.com/":  page("https://example.com", "https://example.com/", "/b#section"),
			"https://example.com/b": page(),
		})
		engine := New(fetcher, WithMaxDepth(1))

		result, err := engine.Traverse(context.Background(), "https://example.com")
		if err != nil {
			t.Fatalf("traverse failed: %v", err)
		}

		assertURLSet(t, result.URLs, []string{
			"https://example.com/",
			"https://example.com/b",
		})
	})

	t.Run("no duplicates in any traversal", func(t *testing.T) {
		t.Parallel()

		pages := map[string]string{"https://example.com/": page("/p0", "/p1", "/p2")}
		for i := 0; i < 3; i++ {
			pages[fmt.Sprintf("https://example.com/p%d", i)] = page("/p0", "/p1", "/p2", "/leaf")
		}
		pages["https://example.com/leaf"] = page()

		engine := New(newFakeFetcher(pages), WithMaxDepth(3))
		result, err := engine.Traverse(context.Background(), "https://example.com")
		if err != nil {
			t.Fatalf("traverse failed: %v", err)
		}

		seen := make(map[string]bool)
		for _, u := range result.URLs {
			if seen[u] {
				t.Errorf("duplicate URL in result: %q", u)
			}
			seen[u] = true
		}
		if len(result.URLs) != 5 {
			t.Errorf("expected 5 urls, got %d: %v", len(result.URLs), result.URLs)
		}
	})

	t.Run("idempotent for an unchanged target", func(t *testing.T) {
		t.Parallel()

		pages := map[string]string{
			"https://example.com/":  page("/b", "/c"),
			"https://example.com/b": page("/c"),
			"https://example.com/c": page(),
		}
		engine := New(newFakeFetcher(pages), WithMaxDepth(2))

		first, err := engine.Traverse(context.Background(), "https://example.com")
		if err != nil {
			t.Fatalf("first traverse failed: %v", err)
		}
		second, err := engine.Traverse(context.Background(), "https://example.com")
		if err != nil {
			t.Fatalf("second traverse failed: %v", err)
		}

		assertURLSet(t, second.URLs, first.URLs)
	})

	t.Run("ignore patterns prune matching paths", func(t *testing.T) {
		t.Parallel()

		fetcher := newFakeFetcher(map[string]string{
			"https://example.com/":      page("/docs", "/admin/panel"),
			"https://example.com/docs":  page(),
			"https://example.com/admin/panel": page(),
		})
		engine := New(fetcher, WithMaxDepth(1), WithIgnorePatterns([]string{"/admin/*"}))

		result, err := engine.Traverse(context.Background(), "https://example.com")
		if err != nil {
			t.Fatalf("traverse failed: %v", err)
		}

		assertURLSet(t, result.URLs, []string{
			"https://example.com/",
			"https://example.com/docs",
		})
	})

	t.Run("rejects invalid seed URLs", func(t *testing.T) {
		t.Parallel()

		engine := New(newFakeFetcher(nil))

		for _, seed := range []string{"ftp://example.com", "notaurl::badsyntax", "https://"} {
			if _, err := engine.Traverse(context.Background(), seed); err == nil {
				t.Errorf("expected error for seed %q", seed)
			}
		}
	})
}

// TestTraverseHTTP runs the engine against a real HTTP server with the
// production parser wiring.
func TestTraverseHTTP(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, page("/a", "/b"))
	})
	mux.HandleFunc("/a", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, page("/b"))
	})
	mux.HandleFunc("/b", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, page())
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	engine := New(httpFetcher{}, WithMaxDepth(2), WithConcurrency(4))
	result, err := engine.Traverse(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("traverse failed: %v", err)
	}

	assertURLSet(t, result.URLs, []string{
		srv.URL + "/",
		srv.URL + "/a",
		srv.URL + "/b",
	})
	if len(result.Errors) != 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
}

// httpFetcher is a minimal real fetcher for the HTTP integration test,
// kept local to avoid importing the fetch package into its dependency.
type httpFetcher struct{}

func (httpFetcher) Fetch(ctx context.Context, rawURL string) (*model.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &model.Page{
		URL:         rawURL,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
		FetchedAt:   time.Now(),
	}, nil
}
