package domain

import (
	interfaces "stockpick/internal/domain/interfaces"
	types "stockpick/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	ItemID            = types.ItemID
	Digest            = types.Digest
	Column            = types.Column
	Item              = types.Item
	Combination       = types.Combination
	EnumerationResult = types.EnumerationResult
	SelectionRecord   = types.SelectionRecord
	RemovalRecord     = types.RemovalRecord
	CommitOutcome     = types.CommitOutcome
	Snapshot          = types.Snapshot
	Status            = types.Status
	StatusKind        = types.StatusKind
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	InventoryStore   = interfaces.InventoryStore
	CatalogSource    = interfaces.CatalogSource
	Enumerator       = interfaces.Enumerator
	SelectionService = interfaces.SelectionService
	Exporter         = interfaces.Exporter
	Table            = interfaces.Table
)

// Re-exported constants.
const (
	ColumnID              = types.ColumnID
	ColumnName            = types.ColumnName
	ColumnStock           = types.ColumnStock
	ColumnImporter        = types.ColumnImporter
	ColumnUnitPrice       = types.ColumnUnitPrice
	ColumnStockForAllUnit = types.ColumnStockForAllUnit

	StatusOK        = types.StatusOK
	StatusError     = types.StatusError
	StatusCancelled = types.StatusCancelled
)

// NewCombination copies items and computes their total unit price.
func NewCombination(items []Item) Combination { return types.NewCombination(items) }

// CloneItems returns a copy of items with a fresh backing array.
func CloneItems(items []Item) []Item { return types.Clone(items) }
