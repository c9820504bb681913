package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Combination is an order-respecting subsequence of the inventory whose
// total unit price is within a ceiling. It is an ephemeral search result.
type Combination struct {
	Items []Item          `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// NewCombination copies items and computes their total unit price.
func NewCombination(items []Item) Combination {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.UnitPrice)
	}
	return Combination{Items: Clone(items), Total: total}
}

// Len returns the number of items in the combination.
func (c Combination) Len() int { return len(c.Items) }

// IDs returns the item ids in combination order.
func (c Combination) IDs() []ItemID {
	ids := make([]ItemID, len(c.Items))
	for i, it := range c.Items {
		ids[i] = it.ID
	}
	return ids
}

// Names joins the product names the way the combination tables display them.
func (c Combination) Names() string {
	names := make([]string, len(c.Items))
	for i, it := range c.Items {
		names[i] = it.Name
	}
	return strings.Join(names, ", ")
}

// Difference returns how far the total sits below ceiling (negative when above).
func (c Combination) Difference(ceiling decimal.Decimal) decimal.Decimal {
	return ceiling.Sub(c.Total)
}

// EnumerationResult is the output of one enumeration run.
type EnumerationResult struct {
	Combinations    []Combination   `json:"combinations"`
	Size            int             `json:"size"`
	Ceiling         decimal.Decimal `json:"ceiling"`
	SnapshotVersion uint64          `json:"snapshot_version"`
	Digest          Digest          `json:"digest"`
	// Visited counts search nodes expanded, for diagnostics.
	Visited int `json:"visited"`
	// Truncated is set when a result cap stopped the search early.
	Truncated bool `json:"truncated"`
}
