package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SelectionRecord is a combination the user committed to.
// It is never re-validated against stock after commit.
type SelectionRecord struct {
	ID          uuid.UUID       `json:"id"`
	Combination Combination     `json:"combination"`
	Ceiling     decimal.Decimal `json:"ceiling"`
	CommittedAt time.Time       `json:"committed_at"`
}

// RemovalRecord audits an item whose stock reached zero as a side effect of a commit.
type RemovalRecord struct {
	ID          uuid.UUID `json:"id"`
	SelectionID uuid.UUID `json:"selection_id"`
	Item        Item      `json:"item"`
	RemovedAt   time.Time `json:"removed_at"`
}

// CommitOutcome is the functional result of applying a selection to an inventory.
type CommitOutcome struct {
	Items     []Item
	Selection SelectionRecord
	Removed   []RemovalRecord
}
