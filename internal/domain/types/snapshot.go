package types

import "github.com/shopspring/decimal"

// Snapshot is an immutable copy of the inventory store at one version.
type Snapshot struct {
	Items   []Item          `json:"items"`
	Ceiling decimal.Decimal `json:"ceiling"`
	Version uint64          `json:"version"`
	Digest  Digest          `json:"digest"`
}
