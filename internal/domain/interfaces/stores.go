package interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	domaintypes "stockpick/internal/domain/types"
)

// InventoryStore is the single source of truth for the active inventory and ceiling.
type InventoryStore interface {
	ReplaceItems(items []domaintypes.Item) error
	SetCeiling(ceiling decimal.Decimal) error
	Items() []domaintypes.Item
	Ceiling() decimal.Decimal
	Snapshot() domaintypes.Snapshot

	// Update applies fn to a copy of the items atomically. fn's error aborts
	// the update and leaves the store untouched.
	Update(fn func(items []domaintypes.Item) ([]domaintypes.Item, error)) (domaintypes.Snapshot, error)

	// Sort reorders the items by column; enumeration order follows.
	Sort(column domaintypes.Column, descending bool) error

	// Subscribe delivers the newest snapshot after every mutation.
	Subscribe() (<-chan domaintypes.Snapshot, func())
}

// CatalogSource loads the initial ordered item list.
type CatalogSource interface {
	LoadCatalog(ctx context.Context) ([]domaintypes.Item, error)
}
