// Package history provides SQLite-based storage of finished crawl runs
// so past results can be listed and inspected later. Only final results
// are stored; crawl state (frontier, visited set) never outlives an
// invocation.
package history
