package view

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/sitewalk/sitewalk/internal/model"
)

// sitemapNamespace is the standard sitemap protocol namespace.
const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// sitemapEntry is one <url> element of a sitemap.
type sitemapEntry struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod"`
}

// urlSet is the <urlset> root element of a sitemap.
type urlSet struct {
	XMLName xml.Name       `xml:"urlset"`
	Xmlns   string         `xml:"xmlns,attr"`
	URLs    []sitemapEntry `xml:"url"`
}

// BuildSitemap serializes a traversal result into sitemap XML, keeping at
// most limit entries. The count cap is applied here, after traversal, by
// truncating the ordered result; the engine itself has no URL count limit.
//
// lastmod is the generation time, i.e. the time of discovery: the engine
// has no knowledge of real page modification times, and pretending
// otherwise would be misleading.
func BuildSitemap(result *model.CrawlResult, limit int, generatedAt time.Time) (string, error) {
	urls := result.URLs
	if len(urls) > limit {
		urls = urls[:limit]
	}

	lastMod := generatedAt.Format("2006-01-02")
	set := urlSet{
		Xmlns: sitemapNamespace,
		URLs:  make([]sitemapEntry, 0, len(urls)),
	}
	for _, u := range urls {
		set.URLs = append(set.URLs, sitemapEntry{Loc: u, LastMod: lastMod})
	}

	// xml.Marshal escapes URL text, so &, <, and friends are safe.
	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing sitemap: %w", err)
	}

	return xml.Header + string(out) + "\n", nil
}
