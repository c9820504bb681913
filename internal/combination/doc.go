// Package combination enumerates fixed-size product bundles within a price ceiling.
//
// The search is recursive backtracking over source index positions: each
// level picks the next item from the suffix after the previous pick, so a
// bundle is an order-respecting subsequence of the input and every subset is
// produced exactly once. Results come out in lexicographic source-index order.
//
// # Pruning
//
// A candidate is skipped when adding its unit price would push the running
// total over the ceiling. This is only sound while no price is negative, so
// pruning is switched off for inputs containing a negative price and the
// search falls back to full enumeration with the final ceiling check. The
// result set is the same in both modes.
//
// # Cancellation
//
// The context is polled every Options.CheckEvery expanded nodes. A cancelled
// search returns domain.ErrCancelled and no partial results.
package combination
