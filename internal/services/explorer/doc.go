// Package explorer coordinates an interactive session: the target size, the
// latest enumeration result, a status line, and commits.
//
// At most one enumeration is in flight. Starting a new one cancels the
// previous run, whose results are discarded. Commits cancel and wait for any
// running enumeration before touching the inventory.
package explorer
