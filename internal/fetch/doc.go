// Package fetch provides the two leaf network services used by sitewalk:
// the page fetcher (full GET with body) and the reachability prober
// (existence check without body transfer).
//
// # Design
//
//   - Fetcher: one GET per call, identifying User-Agent, bounded body size,
//     charset-aware decoding to UTF-8. No retries: a failed fetch is the
//     caller's data, not something to paper over.
//   - Prober: HEAD with a shorter timeout. Reachability failures are data,
//     not errors, so Probe returns a bare bool.
//
// Both services are stateless with respect to a single call and safe for
// concurrent use.
package fetch
