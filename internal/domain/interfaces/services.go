package interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	domaintypes "stockpick/internal/domain/types"
)

// Enumerator lists every size-exact combination within a ceiling.
type Enumerator interface {
	Enumerate(
		ctx context.Context,
		items []domaintypes.Item,
		size int,
		ceiling decimal.Decimal,
	) (domaintypes.EnumerationResult, error)
}

// SelectionService commits combinations against the inventory and keeps history.
type SelectionService interface {
	Commit(ctx context.Context, combination domaintypes.Combination) (domaintypes.CommitOutcome, error)
	Selections() []domaintypes.SelectionRecord
	Removals() []domaintypes.RemovalRecord
	Reset()
}
