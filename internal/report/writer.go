package report

import (
	"io"

	"github.com/sitewalk/sitewalk/internal/model"
)

// Writer defines the interface for report output. Implementations render
// results in various formats.
//
// Design decision: an interface lets commands write to files, stdout, or
// several destinations at once with the same API.
type Writer interface {
	// WriteCrawl outputs a crawl report to the configured destination.
	WriteCrawl(report *model.CrawlReport) error

	// WriteLinkCheck outputs a link-check report.
	WriteLinkCheck(report *model.LinkCheckReport) error
}

// MultiWriter writes to multiple Writers simultaneously, useful for
// outputting to both terminal and file.
//
// Design decision: a separate type rather than io.MultiWriter because our
// Writer interface writes reports, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// WriteCrawl outputs the crawl report to all configured Writers.
// It stops on the first error encountered.
func (m *MultiWriter) WriteCrawl(report *model.CrawlReport) error {
	for _, w := range m.writers {
		if err := w.WriteCrawl(report); err != nil {
			return err
		}
	}
	return nil
}

// WriteLinkCheck outputs the link-check report to all configured Writers.
func (m *MultiWriter) WriteLinkCheck(report *model.LinkCheckReport) error {
	for _, w := range m.writers {
		if err := w.WriteLinkCheck(report); err != nil {
			return err
		}
	}
	return nil
}

// baseWriter provides the shared output destination for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
