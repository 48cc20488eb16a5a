package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sitewalk/sitewalk/internal/config"
	"github.com/sitewalk/sitewalk/internal/content"
	"github.com/sitewalk/sitewalk/internal/fetch"
)

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <url> <pattern>",
		Short: "Search a page's visible text with a regular expression",
		Long: `Search fetches one page and prints every line of its visible text
matching the given Go regular expression, with 1-based line numbers.

Examples:
  sitewalk search https://example.com 'pricing'
  sitewalk search -i https://example.com 'open[ -]source'`,
		Args: cobra.ExactArgs(2),
		RunE: runSearchCmd,
	}

	cmd.Flags().BoolP("ignore-case", "i", false,
		"Case-insensitive matching")
	cmd.Flags().DurationP("timeout", "t", config.DefaultFetchTimeout,
		"Timeout for the page fetch")
	cmd.Flags().BoolP("json", "j", false,
		"Output matches as JSON")

	return cmd
}

// runSearchCmd executes the search command.
func runSearchCmd(cmd *cobra.Command, args []string) error {
	ignoreCase, err := cmd.Flags().GetBool("ignore-case")
	if err != nil {
		return err
	}

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

	pageURL, pattern := args[0], args[1]
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

	matches, err := content.Search(string(page.Body), pattern, ignoreCase)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(matches)
	}

	for _, m := range matches {
		fmt.Fprintf(cmd.OutOrStdout(), "%d:%s\n", m.Line, m.Text)
	}
	return nil
}
