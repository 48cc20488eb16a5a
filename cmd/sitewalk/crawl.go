package main

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/cobra"

	"github.com/sitewalk/sitewalk/internal/config"
	"github.com/sitewalk/sitewalk/internal/crawler"
	"github.com/sitewalk/sitewalk/internal/fetch"
	"github.com/sitewalk/sitewalk/internal/history"
	"github.com/sitewalk/sitewalk/internal/model"
	"github.com/sitewalk/sitewalk/internal/report"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl <url>",
		Short: "Crawl a site and list every discovered same-origin URL",
		Long: `Crawl walks a site starting from the given URL, following only
same-origin links up to the depth bound, and lists every discovered URL.

Each URL appears at most once. Pages that fail to fetch stay in the
discovered list and are reported separately; a broken page never aborts
the crawl.

Examples:
  # Crawl two levels deep (the default)
  sitewalk crawl https://example.com

  # Only the seed page and its direct links
  sitewalk crawl -d 1 https://example.com

  # JSON report written to a file
  sitewalk crawl --json -o report.json https://example.com

  # Keep the result in the history database
  sitewalk crawl --save https://example.com

Configuration file (.sitewalk) example:
  sites:
    example.com:
      depth: 3
      ignorePatterns:
        - "/logout*"
        - "*.pdf"`,
		Args: cobra.ExactArgs(1),
		RunE: runCrawlCmd,
	}

	cmd.Flags().IntP("depth", "d", config.DefaultMaxDepth,
		fmt.Sprintf("Maximum crawl depth (0-%d)", config.MaxDepthCeiling))
	cmd.Flags().DurationP("timeout", "t", config.DefaultFetchTimeout,
		"Timeout for each page fetch")
	cmd.Flags().Int("concurrency", config.DefaultConcurrency,
		"Maximum number of fetches in flight at once")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .sitewalk in current or home directory)")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().BoolP("save", "s", false,
		"Save the crawl result to the history database")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildCrawlConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	seedURL := args[0]
	if err := validateTargetURL(seedURL); err != nil {
		return err
	}

	logger := setupLogging(cmd)
	ctx, cancel := signalContext(logger)
	defer cancel()

	// Per-host overrides from the config file.
	seed, _ := url.Parse(seedURL)
	site := cfg.SiteConfigs.GetSiteConfig(seed.Host)
	depth := cfg.MaxDepth
	if site.Depth != 0 {
		depth = site.Depth
		if depth > config.MaxDepthCeiling {
			return fmt.Errorf("configuration error: site depth for %s: %w", seed.Host, config.ErrDepthOutOfRange)
		}
	}

	fetcher := fetch.NewFetcher(
		fetch.WithTimeout(cfg.FetchTimeout),
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
		fetch.WithHeaders(site.Headers),
		fetch.WithLogger(logger),
	)
	engine := crawler.New(fetcher,
		crawler.WithMaxDepth(depth),
		crawler.WithConcurrency(cfg.Concurrency),
		crawler.WithIgnorePatterns(site.IgnorePatterns),
		crawler.WithFollowPatterns(site.FollowPatterns),
		crawler.WithLogger(logger),
	)

	logger.Info("starting crawl", "seed", seedURL, "depth", depth)
	started := time.Now()

	result, err := engine.Traverse(ctx, seedURL)
	if err != nil {
		return err
	}

	crawlReport := &model.CrawlReport{
		Seed:      seedURL,
		MaxDepth:  depth,
		StartedAt: started,
		Duration:  time.Since(started),
		URLs:      result.URLs,
		Errors:    result.Errors,
	}

	if cfg.SaveToDB {
		if err := saveCrawl(cmd, cfg, crawlReport); err != nil {
			// Saving is best-effort; the report is still written.
			logger.Warn("failed to save crawl to history", "error", err)
		}
	}

	return writeCrawlReport(cmd, cfg, crawlReport)
}

// buildCrawlConfig creates a Config from the crawl command's flags.
func buildCrawlConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	var err error

	cfg.MaxDepth, err = cmd.Flags().GetInt("depth")
	if err != nil {
		return nil, err
	}

	cfg.FetchTimeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if err := loadSiteConfigs(cfg); err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.SaveToDB, err = cmd.Flags().GetBool("save")
	if err != nil {
		return nil, err
	}
	cfg.DBDir = config.XDGDataDir()

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// writeCrawlReport renders the crawl report in the configured format.
func writeCrawlReport(cmd *cobra.Command, cfg *config.Config, crawlReport *model.CrawlReport) error {
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

	return w.WriteCrawl(crawlReport)
}

// saveCrawl appends the crawl report to the history database.
func saveCrawl(cmd *cobra.Command, cfg *config.Config, crawlReport *model.CrawlReport) error {
	db, err := history.Open(cfg.DBDir, history.DefaultOptions())
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	id, err := db.Save(cmd.Context(), crawlReport)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "saved crawl as history entry %d\n", id)
	return nil
}
