package content

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelectors are HTML elements removed before extraction.
// These contribute no meaningful content to the page text.
var noiseSelectors = []string{
	"script", "style", "noscript",
	"nav", "footer", "header",
	"iframe", "svg", "canvas",
	"form", "button", "input", "select", "textarea",
	".sidebar", ".menu", ".navigation", ".ads", ".advertisement",
}

// MainContent strips noise from raw HTML and returns the fragment holding
// the main content, preferring <main>, then <article>, then <body>.
func MainContent(rawHTML string) (string, error) {
	content, err := mainSelection(rawHTML)
	if err != nil {
		return "", err
	}

	result, err := goquery.OuterHtml(content)
	if err != nil {
		return "", fmt.Errorf("serializing content: %w", err)
	}

	return result, nil
}

// blankLines collapses runs of three or more newlines left behind by
// removed elements.
var blankLines = regexp.MustCompile(`\n{3,}`)

// Text returns the visible text of the page's main content with noise
// elements removed and whitespace tidied.
func Text(rawHTML string) (string, error) {
	content, err := mainSelection(rawHTML)
	if err != nil {
		return "", err
	}

	lines := strings.Split(content.Text(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}

	text := strings.TrimSpace(blankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n"))
	return text, nil
}

// mainSelection parses the HTML, removes noise elements, and picks the
// best content container.
func mainSelection(rawHTML string) (*goquery.Selection, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	// <main> is the most semantically correct, then <article>, then <body>.
	for _, tag := range []string{"main", "article", "body"} {
		sel := doc.Find(tag)
		if sel.Length() > 0 {
			return sel.First(), nil
		}
	}

	return nil, fmt.Errorf("no content container found in HTML")
}
