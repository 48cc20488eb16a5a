// Package content implements the single-page tools: main-content
// extraction, HTML-to-Markdown conversion, plain-text rendering, and
// regex search over a page's visible text. These are thin wrappers over
// one fetched document; none of them touch the traversal engine.
package content
