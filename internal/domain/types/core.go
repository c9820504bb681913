package types

import "strconv"

// ItemID uniquely identifies a catalog item. Two items are the same entity iff their ids match.
type ItemID int64

// String returns the decimal form of the identifier.
func (id ItemID) String() string { return strconv.FormatInt(int64(id), 10) }

// Digest is a short content hash of an inventory snapshot, presented to users.
type Digest string

// String returns the string form of the digest.
func (d Digest) String() string { return string(d) }

// Column names a sortable catalog column.
type Column string

// String returns the string form of the column.
func (c Column) String() string { return string(c) }

// Sortable catalog columns, named after the catalog file keys.
const (
	ColumnID              Column = "id"
	ColumnName            Column = "product"
	ColumnStock           Column = "stock"
	ColumnImporter        Column = "importer"
	ColumnUnitPrice       Column = "unit_price"
	ColumnStockForAllUnit Column = "stock_for_all_unit"
)
