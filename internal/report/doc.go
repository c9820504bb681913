// Package report turns inventory items, combinations and session history into
// plain tables (ordered columns plus rows keyed by column) for rendering and
// export.
package report
