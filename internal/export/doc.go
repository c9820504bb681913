// Package export writes report tables to xlsx workbooks, one sheet per table.
package export
