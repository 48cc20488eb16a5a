package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// TestFetch tests page fetching against a local HTTP server.
func TestFetch(t *testing.T) {
	t.Parallel()

	t.Run("returns page on success", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprint(w, "<html><body>hello</body></html>")
		}))
		defer srv.Close()

		fetcher := NewFetcher()
		page, err := fetcher.Fetch(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("fetch failed: %v", err)
		}

		if page.StatusCode != http.StatusOK {
			t.Errorf("expected status 200, got %d", page.StatusCode)
		}
		if !strings.Contains(string(page.Body), "hello") {
			t.Errorf("unexpected body: %q", page.Body)
		}
		if !page.IsHTML() {
			t.Error("expected page to report HTML content")
		}
		if page.FetchedAt.IsZero() {
			t.Error("expected FetchedAt to be set")
		}
	})

	t.Run("sends user agent and extra headers", func(t *testing.T) {
		t.Parallel()

		var gotUA, gotToken string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			gotToken = r.Header.Get("X-Api-Token")
			fmt.Fprint(w, "<html></html>")
		}))
		defer srv.Close()

		fetcher := NewFetcher(
			WithUserAgent("custom-agent/2.0"),
			WithHeaders(map[string]string{"X-Api-Token": "secret"}),
		)
		if _, err := fetcher.Fetch(context.Background(), srv.URL); err != nil {
			t.Fatalf("fetch failed: %v", err)
		}

		if gotUA != "custom-agent/2.0" {
			t.Errorf("expected custom User-Agent, got %q", gotUA)
		}
		if gotToken != "secret" {
			t.Errorf("expected extra header to be sent, got %q", gotToken)
		}
	})

	t.Run("non-2xx status yields FetchError with code", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		fetcher := NewFetcher()
		_, err := fetcher.Fetch(context.Background(), srv.URL)
		if err == nil {
			t.Fatal("expected error for 404 response")
		}

		var fetchErr *FetchError
		if !errors.As(err, &fetchErr) {
			t.Fatalf("expected *FetchError, got %T", err)
		}
		if fetchErr.StatusCode != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", fetchErr.StatusCode)
		}
		if !strings.Contains(fetchErr.Error(), "404") {
			t.Errorf("expected status in message, got %q", fetchErr.Error())
		}
	})

	t.Run("network failure yields FetchError without status", func(t *testing.T) {
		t.Parallel()

		fetcher := NewFetcher(WithTimeout(500 * time.Millisecond))
		_, err := fetcher.Fetch(context.Background(), "http://127.0.0.1:1")
		if err == nil {
			t.Fatal("expected error for unreachable host")
		}

		var fetchErr *FetchError
		if !errors.As(err, &fetchErr) {
			t.Fatalf("expected *FetchError, got %T", err)
		}
		if fetchErr.StatusCode != 0 {
			t.Errorf("expected status 0, got %d", fetchErr.StatusCode)
		}
		if fetchErr.Unwrap() == nil {
			t.Error("expected underlying cause to be preserved")
		}
	})

	t.Run("body is capped at the configured size", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			fmt.Fprint(w, strings.Repeat("x", 4096))
		}))
		defer srv.Close()

		fetcher := NewFetcher(WithMaxBodySize(100))
		page, err := fetcher.Fetch(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("fetch failed: %v", err)
		}
		if len(page.Body) > 100 {
			t.Errorf("expected body capped at 100 bytes, got %d", len(page.Body))
		}
	})

	t.Run("non-HTML content is accepted", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"ok":true}`)
		}))
		defer srv.Close()

		fetcher := NewFetcher()
		page, err := fetcher.Fetch(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("fetch failed: %v", err)
		}
		if page.IsHTML() {
			t.Error("expected non-HTML content type")
		}
	})

	t.Run("declared charset is decoded to UTF-8", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
			// "café" in Latin-1: the é is the single byte 0xE9.
			_, _ = w.Write([]byte{'c', 'a', 'f', 0xE9})
		}))
		defer srv.Close()

		fetcher := NewFetcher()
		page, err := fetcher.Fetch(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("fetch failed: %v", err)
		}
		if string(page.Body) != "café" {
			t.Errorf("expected decoded UTF-8 body, got %q", page.Body)
		}
	})
}
