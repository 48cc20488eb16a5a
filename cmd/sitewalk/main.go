// Package main provides the entry point for the sitewalk CLI.
//
// sitewalk is a set of on-demand web-content tools: site crawling,
// sitemap generation, broken-link checking, fetch-as-markdown, link
// listing, and pattern search.
//
// Usage:
//
//	sitewalk crawl <url>
//	sitewalk sitemap <url>
//	sitewalk check-links <url>
//
// See --help for all available commands and options.
package main

// main is the entry point for sitewalk.
func main() {
	Execute()
}
