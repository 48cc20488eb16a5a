package content

import (
	"fmt"
	"regexp"
	"strings"
)

// Match is one line of page text matching a search pattern.
type Match struct {
	// Line is the 1-based line number within the page's visible text.
	Line int `json:"line"`

	// Text is the matching line, trimmed.
	Text string `json:"text"`
}

// Search compiles pattern and returns every line of the page's visible
// text that matches it. An invalid pattern is a validation failure
// reported before any matching happens.
func Search(rawHTML, pattern string, ignoreCase bool) ([]Match, error) {
	if ignoreCase {
		pattern = "(?i)" + pattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}

	text, err := Text(rawHTML)
	if err != nil {
		return nil, err
	}

	matches := make([]Match, 0)
	for i, line := range strings.Split(text, "\n") {
		if re.MatchString(line) {
			matches = append(matches, Match{Line: i + 1, Text: strings.TrimSpace(line)})
		}
	}

	return matches, nil
}
