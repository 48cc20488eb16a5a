package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sitewalk/sitewalk/internal/config"
	"github.com/sitewalk/sitewalk/internal/fetch"
	"github.com/sitewalk/sitewalk/internal/report"
	"github.com/sitewalk/sitewalk/internal/view"
)

// NewCheckLinksCmd creates the check-links command.
func NewCheckLinksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check-links <url>",
		Short: "Check every link on a page for reachability",
		Long: `Check-links fetches a single page, extracts its links, and probes each
distinct target once. Statuses:

  valid        the target answered with a 2xx status
  broken       network failure, timeout, or non-2xx status
  invalid_url  the href could not be resolved, so no probe was attempted

Examples:
  sitewalk check-links https://example.com
  sitewalk check-links --json https://example.com/docs`,
		Args: cobra.ExactArgs(1),
		RunE: runCheckLinksCmd,
	}

	cmd.Flags().DurationP("timeout", "t", config.DefaultProbeTimeout,
		"Timeout for each reachability probe")
	cmd.Flags().Int("concurrency", config.DefaultConcurrency,
		"Maximum number of probes in flight at once")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runCheckLinksCmd executes the check-links command.
func runCheckLinksCmd(cmd *cobra.Command, args []string) error {
	cfg := config.NewConfig()
	var err error

	cfg.ProbeTimeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return err
	}
	cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return err
	}
	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	pageURL := args[0]
	if err := validateTargetURL(pageURL); err != nil {
		return err
	}

	logger := setupLogging(cmd)
	ctx, cancel := signalContext(logger)
	defer cancel()

	fetcher := fetch.NewFetcher(
		fetch.WithTimeout(cfg.FetchTimeout),
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
		fetch.WithLogger(logger),
	)
	prober := fetch.NewProber(
		fetch.WithProbeTimeout(cfg.ProbeTimeout),
		fetch.WithProbeUserAgent(cfg.UserAgent),
		fetch.WithProbeLogger(logger),
	)
	checker := view.NewLinkChecker(fetcher, prober,
		view.WithCheckConcurrency(cfg.Concurrency))

	checkReport, err := checker.Check(ctx, pageURL)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(cmd, cfg.ReportFile)
	if err != nil {
		return err
	}
	defer func() { _ = closeOut() }()

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewJSONWriter(out, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(out)
	default:
		w = report.NewSimpleWriter(out)
	}

	return w.WriteLinkCheck(checkReport)
}
