// Package report renders crawl and link-check results in text, JSON, and
// Markdown. Writers share the Writer interface so commands can target
// stdout, files, or both without caring about format.
package report
