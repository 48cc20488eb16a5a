package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/sitewalk/sitewalk/internal/model"
)

// MarkdownWriter outputs reports in GitHub Flavored Markdown, designed
// for documentation and sharing.
//
// Design decision: the nao1215/markdown library gives type-safe fluent
// markdown generation with tables, so no format strings to keep in sync.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteCrawl outputs the crawl report in Markdown format.
func (w *MarkdownWriter) WriteCrawl(report *model.CrawlReport) error {
	md := markdown.NewMarkdown(w.output)

	md.H1("Crawl Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Seed", "`" + report.Seed + "`"},
			{"Max Depth", strconv.Itoa(report.MaxDepth)},
			{"Started", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", report.Duration.Round(1e6).String()},
			{"URLs", strconv.Itoa(report.TotalURLs())},
			{"Errors", strconv.Itoa(len(report.Errors))},
		},
	})
	md.PlainText("")

	md.H2("Discovered URLs")
	md.PlainText("")
	urls := make([]string, 0, len(report.URLs))
	for _, u := range report.URLs {
		urls = append(urls, "`"+u+"`")
	}
	md.BulletList(urls...)
	md.PlainText("")

	if len(report.Errors) > 0 {
		md.H2("Errors")
		md.PlainText("")
		rows := make([][]string, 0, len(report.Errors))
		for _, e := range report.Errors {
			rows = append(rows, []string{"`" + e.URL + "`", e.Reason})
		}
		md.Table(markdown.TableSet{
			Header: []string{"URL", "Reason"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	return md.Build()
}

// WriteLinkCheck outputs the link-check report in Markdown format.
func (w *MarkdownWriter) WriteLinkCheck(report *model.LinkCheckReport) error {
	md := markdown.NewMarkdown(w.output)

	md.H1("Link Check Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Page", "`" + report.PageURL + "`"},
			{"Checked", report.CheckedAt.Format("2006-01-02 15:04:05 MST")},
			{"Links", strconv.Itoa(len(report.Results))},
			{"Broken", strconv.Itoa(report.BrokenCount())},
			{"Invalid", strconv.Itoa(report.InvalidCount())},
		},
	})
	md.PlainText("")

	md.H2("Links")
	md.PlainText("")
	rows := make([][]string, 0, len(report.Results))
	for _, res := range report.Results {
		rows = append(rows, []string{"`" + res.URL + "`", string(res.Status)})
	}
	md.Table(markdown.TableSet{
		Header: []string{"URL", "Status"},
		Rows:   rows,
	})
	md.PlainText("")

	return md.Build()
}
