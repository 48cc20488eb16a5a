package content

import (
	"fmt"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// ToMarkdown converts a page's main content into Markdown. Noise elements
// are stripped first, so the output reads like the document rather than
// the chrome around it.
func ToMarkdown(rawHTML string) (string, error) {
	fragment, err := MainContent(rawHTML)
	if err != nil {
		return "", err
	}

	markdown, err := htmltomarkdown.ConvertString(fragment)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}

	return markdown, nil
}
