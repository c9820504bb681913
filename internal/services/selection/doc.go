// Package selection commits chosen combinations against the inventory.
//
// A commit decrements each referenced item's stock by one, drops exhausted
// items and records the selection plus one removal record per dropped item.
// Commits are all-or-nothing.
package selection
