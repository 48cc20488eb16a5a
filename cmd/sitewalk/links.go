package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sitewalk/sitewalk/internal/config"
	"github.com/sitewalk/sitewalk/internal/crawler"
	"github.com/sitewalk/sitewalk/internal/fetch"
)

// NewLinksCmd creates the links command.
func NewLinksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "links <url>",
		Short: "List the links on a page with their anchor text",
		Long: `Links fetches one page and lists its outbound hyperlinks as absolute
URLs with their anchor text. Duplicate targets are listed once, keeping
the first anchor's text; anchors without text show "[No text]".

Examples:
  sitewalk links https://example.com
  sitewalk links --json https://example.com`,
		Args: cobra.ExactArgs(1),
		RunE: runLinksCmd,
	}

	cmd.Flags().DurationP("timeout", "t", config.DefaultFetchTimeout,
		"Timeout for the page fetch")
	cmd.Flags().BoolP("json", "j", false,
		"Output links as JSON")

	return cmd
}

// runLinksCmd executes the links command.
func runLinksCmd(cmd *cobra.Command, args []string) error {
	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return err
	}
	if timeout <= 0 {
		return fmt.Errorf("configuration error: %w", config.ErrInvalidTimeout)
	}

	asJSON, err := cmd.Flags().GetBool("json")
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

	parsed, err := crawler.ExtractLinks(bytes.NewReader(page.Body), pageURL)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(parsed.Links)
	}

	for _, link := range parsed.Links {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", link.URL, link.Text)
	}
	return nil
}
