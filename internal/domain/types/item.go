package types

import "github.com/shopspring/decimal"

// Item is a single catalog product. Identity is immutable; Stock is mutated only by commits.
type Item struct {
	ID              ItemID          `json:"id"`
	Name            string          `json:"product"`
	Stock           int             `json:"stock"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Importer        string          `json:"importer"`
	StockForAllUnit decimal.Decimal `json:"stockForAllUnit"`
}

// Clone returns a copy of items with a fresh backing array.
func Clone(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
