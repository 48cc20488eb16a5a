package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sitewalk/sitewalk/internal/config"
	"github.com/sitewalk/sitewalk/internal/content"
	"github.com/sitewalk/sitewalk/internal/fetch"
)

// NewFetchCmd creates the fetch command.
func NewFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Fetch a page and print its main content",
		Long: `Fetch retrieves one page, strips navigation and other noise, and
prints the main content.

Formats:
  markdown  the cleaned content converted to Markdown (default)
  html      the cleaned content as an HTML fragment
  text      the visible text only

Examples:
  sitewalk fetch https://example.com/article
  sitewalk fetch -f text https://example.com/article`,
		Args: cobra.ExactArgs(1),
		RunE: runFetchCmd,
	}

	cmd.Flags().StringP("format", "f", "markdown",
		"Output format: markdown, html, or text")
	cmd.Flags().DurationP("timeout", "t", config.DefaultFetchTimeout,
		"Timeout for the page fetch")
	cmd.Flags().StringP("output", "o", "",
		"Write content to specified file path (creates directories if needed)")

	return cmd
}

// runFetchCmd executes the fetch command.
func runFetchCmd(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if format != "markdown" && format != "html" && format != "text" {
		return fmt.Errorf("invalid format %q: must be markdown, html, or text", format)
	}

	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return err
	}
	if timeout <= 0 {
		return fmt.Errorf("configuration error: %w", config.ErrInvalidTimeout)
	}

	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	pageURL := args[0]
	if err := validateTargetURL(pageURL); err != nil {
		return err
	}

	logger := setupLogging(cmd)
	ctx, cancel := signalContext(logger)
	defer cancel()

	fetcher := fetch.NewFetcher(
		fetch.WithTimeout(timeout),
		fetch.WithLogger(logger),
	)

	page, err := fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return err
	}

	var rendered string
	switch format {
	case "markdown":
		rendered, err = content.ToMarkdown(string(page.Body))
	case "html":
		rendered, err = content.MainContent(string(page.Body))
	case "text":
		rendered, err = content.Text(string(page.Body))
	}
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(cmd, outputPath)
	if err != nil {
		return err
	}
	defer func() { _ = closeOut() }()

	_, err = fmt.Fprintln(out, rendered)
	return err
}
