package crawler

import (
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/sitewalk/sitewalk/internal/model"
)

// ParseResult contains what a single parsing pass extracts from a page.
type ParseResult struct {
	// Title is the page title from the <title> tag.
	Title string

	// Links are the outbound hyperlinks as absolute URLs, deduplicated
	// within this page. A link appearing twice in the DOM yields one
	// record, keeping the first anchor's text.
	Links []model.Link

	// Invalid holds raw href values that could not be resolved to an
	// absolute URL. The traversal ignores them; link checking reports
	// them so malformed hrefs are never silently dropped.
	Invalid []string
}

// ExtractLinks parses HTML content and extracts the page title and every
// navigational link, resolved against sourceURL.
//
// Hrefs that are empty or begin with "#", "mailto:", "tel:", "javascript:",
// or "data:" are not navigational and are discarded outright. A malformed
// href discards that single link and never aborts extraction.
//
// Design decision: golang.org/x/net/html rather than regex or a CSS
// selector library, following the reasoning that it correctly handles the
// malformed HTML common on the web and a single DOM walk collects title
// and links together.
func ExtractLinks(content io.Reader, sourceURL string) (*ParseResult, error) {
	base, err := url.Parse(sourceURL)
	if err != nil {
		return nil, err
	}

	doc, err := html.Parse(content)
	if err != nil {
		return nil, err
	}

	result := &ParseResult{
		Links:   make([]model.Link, 0),
		Invalid: make([]string, 0),
	}
	seen := make(map[string]bool)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if result.Title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					result.Title = strings.TrimSpace(n.FirstChild.Data)
				}
			case "a":
				if href := getAttr(n, "href"); href != "" {
					processHref(n, href, base, seen, result)
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return result, nil
}

// processHref classifies one href value and appends a link record or an
// invalid entry to the result.
func processHref(n *html.Node, href string, base *url.URL, seen map[string]bool, result *ParseResult) {
	href = strings.TrimSpace(href)
	if !isNavigational(href) {
		return
	}

	u, err := url.Parse(href)
	if err != nil {
		result.Invalid = append(result.Invalid, href)
		return
	}

	target := base.ResolveReference(u)
	// Hrefs like "notaurl::badsyntax" parse as opaque URLs with a bogus
	// scheme; they are not fetchable and count as malformed.
	if target.Scheme != "http" && target.Scheme != "https" || target.Host == "" {
		result.Invalid = append(result.Invalid, href)
		return
	}

	resolved := target.String()
	if seen[resolved] {
		return
	}
	seen[resolved] = true

	text := strings.TrimSpace(anchorText(n))
	if text == "" {
		text = model.NoAnchorText
	}

	result.Links = append(result.Links, model.Link{URL: resolved, Text: text})
}

// isNavigational reports whether an href points at another document.
// Fragments, mailto:, tel:, javascript:, and data: hrefs do not.
func isNavigational(href string) bool {
	if href == "" || strings.HasPrefix(href, "#") {
		return false
	}
	for _, scheme := range []string{"mailto:", "tel:", "javascript:", "data:"} {
		if strings.HasPrefix(href, scheme) {
			return false
		}
	}
	return true
}

// anchorText collects the visible text of an anchor's subtree.
func anchorText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
