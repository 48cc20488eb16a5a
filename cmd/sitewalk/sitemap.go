package main

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/cobra"

	"github.com/sitewalk/sitewalk/internal/config"
	"github.com/sitewalk/sitewalk/internal/crawler"
	"github.com/sitewalk/sitewalk/internal/fetch"
	"github.com/sitewalk/sitewalk/internal/view"
)

// NewSitemapCmd creates the sitemap command.
func NewSitemapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sitemap <url>",
		Short: "Generate an XML sitemap for a site",
		Long: `Sitemap crawls a site the same way crawl does and serializes the
discovered URLs as sitemap XML (<urlset> with <loc> and <lastmod> entries).

The lastmod value is the generation time: the crawler has no knowledge of
real page modification dates.

Examples:
  sitewalk sitemap https://example.com
  sitewalk sitemap -d 3 -l 100 -o sitemap.xml https://example.com`,
		Args: cobra.ExactArgs(1),
		RunE: runSitemapCmd,
	}

	cmd.Flags().IntP("depth", "d", config.DefaultMaxDepth,
		fmt.Sprintf("Maximum crawl depth (0-%d)", config.MaxDepthCeiling))
	cmd.Flags().IntP("limit", "l", config.DefaultSitemapLimit,
		"Maximum number of URLs in the sitemap")
	cmd.Flags().DurationP("timeout", "t", config.DefaultFetchTimeout,
		"Timeout for each page fetch")
	cmd.Flags().Int("concurrency", config.DefaultConcurrency,
		"Maximum number of fetches in flight at once")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .sitewalk in current or home directory)")
	cmd.Flags().StringP("output", "o", "",
		"Write sitemap to specified file path (creates directories if needed)")

	return cmd
}

// runSitemapCmd executes the sitemap command.
func runSitemapCmd(cmd *cobra.Command, args []string) error {
	cfg := config.NewConfig()
	var err error

	cfg.MaxDepth, err = cmd.Flags().GetInt("depth")
	if err != nil {
		return err
	}
	cfg.SitemapLimit, err = cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	cfg.FetchTimeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return err
	}
	cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return err
	}
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	if err := loadSiteConfigs(cfg); err != nil {
		return err
	}
	cfg.ReportFile, err = cmd.Flags().GetString("output")
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

	seed, _ := url.Parse(seedURL)
	site := cfg.SiteConfigs.GetSiteConfig(seed.Host)

	fetcher := fetch.NewFetcher(
		fetch.WithTimeout(cfg.FetchTimeout),
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
		fetch.WithHeaders(site.Headers),
		fetch.WithLogger(logger),
	)
	engine := crawler.New(fetcher,
		crawler.WithMaxDepth(cfg.MaxDepth),
		crawler.WithConcurrency(cfg.Concurrency),
		crawler.WithIgnorePatterns(site.IgnorePatterns),
		crawler.WithFollowPatterns(site.FollowPatterns),
		crawler.WithLogger(logger),
	)

	result, err := engine.Traverse(ctx, seedURL)
	if err != nil {
		return err
	}

	xmlDoc, err := view.BuildSitemap(result, cfg.SitemapLimit, time.Now())
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(cmd, cfg.ReportFile)
	if err != nil {
		return err
	}
	defer func() { _ = closeOut() }()

	_, err = fmt.Fprint(out, xmlDoc)
	return err
}
