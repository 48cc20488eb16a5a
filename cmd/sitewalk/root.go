// Package main provides the entry point for the sitewalk CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for sitewalk.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sitewalk",
		Short: "On-demand web-content tools built around a site traversal engine",
		Long: `sitewalk is a set of on-demand web-content tools.

The multi-page tools (crawl, sitemap) walk a site with a bounded-depth,
same-origin, deduplicating traversal; check-links validates every link on
one page; fetch, links, and search operate on a single document.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewSitemapCmd())
	cmd.AddCommand(NewCheckLinksCmd())
	cmd.AddCommand(NewFetchCmd())
	cmd.AddCommand(NewLinksCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
