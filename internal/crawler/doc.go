// Package crawler provides the traversal engine at the core of sitewalk:
// bounded-depth, same-origin, deduplicating expansion over the links of a
// web site, plus the HTML parser that feeds it.
//
// # Architecture
//
//   - Engine: drives one traversal per Traverse call. Each call owns a
//     private visited set; nothing persists between invocations.
//   - ExtractLinks: single-pass HTML walk producing deduplicated absolute
//     link records and the page title.
//
// # Concurrency
//
// All children of a node are expanded in parallel and awaited jointly; the
// traversal is a single awaited tree, not a fire-and-forget job. The
// visited set is the only state shared across branches. A branch claims a
// URL under the mutex before fetching, so two branches converging on the
// same URL resolve to exactly one winner; the loser observes membership and
// prunes. An unguarded check-then-add here would reintroduce duplicate
// expansion and, on cyclic graphs, unbounded recursion.
//
// Total in-flight fetches are bounded by a semaphore so a wide site cannot
// open arbitrarily many connections at once.
//
// # Failure isolation
//
// A failed fetch records (url, reason) on the result and terminates only
// its own branch. The URL stays in the discovered set: visiting it was
// itself a successful discovery.
//
// # Usage
//
//	engine := crawler.New(fetcher, crawler.WithMaxDepth(2))
//	result, err := engine.Traverse(ctx, "https://example.com")
package crawler
