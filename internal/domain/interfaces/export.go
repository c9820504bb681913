package interfaces

import "context"

// Table is a plain tabular record set: ordered columns and one map per row.
type Table struct {
	Name    string
	Columns []string
	Rows    []map[string]any
}

// Exporter serialises tables to an external file format.
type Exporter interface {
	Export(ctx context.Context, path string, tables ...Table) error
}
