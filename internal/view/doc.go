// Package view builds the user-facing views derived from the traversal
// engine's output: the crawl summary, the XML sitemap, and the per-link
// reachability report. Builders format and bound results; they never
// change what the engine discovered.
package view
