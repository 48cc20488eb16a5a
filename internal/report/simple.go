package report

import (
	"fmt"
	"io"

	"github.com/sitewalk/sitewalk/internal/model"
)

// SimpleWriter outputs human-readable plain text. This is the default
// format for terminal use.
type SimpleWriter struct {
	baseWriter
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer) *SimpleWriter {
	return &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteCrawl outputs the crawl report as plain text.
func (w *SimpleWriter) WriteCrawl(report *model.CrawlReport) error {
	fmt.Fprintf(w.output, "Crawl of %s\n", report.Seed)
	fmt.Fprintf(w.output, "  depth:    %d\n", report.MaxDepth)
	fmt.Fprintf(w.output, "  started:  %s\n", report.StartedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(w.output, "  duration: %s\n", report.Duration.Round(1e6))
	fmt.Fprintf(w.output, "  urls:     %d\n\n", report.TotalURLs())

	for _, u := range report.URLs {
		fmt.Fprintf(w.output, "%s\n", u)
	}

	if len(report.Errors) > 0 {
		fmt.Fprintf(w.output, "\nErrors (%d):\n", len(report.Errors))
		for _, e := range report.Errors {
			fmt.Fprintf(w.output, "  %s: %s\n", e.URL, e.Reason)
		}
	}

	return nil
}

// WriteLinkCheck outputs the link-check report as plain text.
func (w *SimpleWriter) WriteLinkCheck(report *model.LinkCheckReport) error {
	fmt.Fprintf(w.output, "Link check of %s\n", report.PageURL)
	fmt.Fprintf(w.output, "  checked: %s\n", report.CheckedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(w.output, "  links:   %d (%d broken, %d invalid)\n\n",
		len(report.Results), report.BrokenCount(), report.InvalidCount())

	for _, res := range report.Results {
		fmt.Fprintf(w.output, "%-11s %s\n", res.Status, res.URL)
	}

	return nil
}
