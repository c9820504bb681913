// Package inventory holds the in-memory inventory store.
//
// Store is an explicit, passed-by-reference state container: the active item
// list in catalog order plus the price ceiling. Every mutation produces a new
// version, recomputes the snapshot digest and notifies subscribers. Callers
// only ever receive copies, so a snapshot used for enumeration can never
// alias the list a commit is mutating.
//
// Invariants held by the store:
//   - item ids are unique;
//   - every item has stock > 0 (zero-stock items are not admitted);
//   - Version increases by one per successful mutation.
package inventory
