package view

import "github.com/sitewalk/sitewalk/internal/model"

// Crawl is the site-crawl view: the discovered URLs plus their count.
// URLs are already unique; the engine guarantees it.
type Crawl struct {
	CrawledURLs []string `json:"crawled_urls"`
	TotalURLs   int      `json:"total_urls"`
}

// BuildCrawl builds the site-crawl view from a traversal result.
func BuildCrawl(result *model.CrawlResult) Crawl {
	return Crawl{
		CrawledURLs: result.URLs,
		TotalURLs:   len(result.URLs),
	}
}
