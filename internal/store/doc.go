// Package store loads product catalogs from disk and writes files atomically.
//
// Catalogs come either as a JSON array of product records or as an xlsx
// workbook with a header row, the shape the products export produces. Every
// loader validates rows and reports the failing row number.
//
// Writes go to a temp file in the target directory and are renamed into
// place, so readers never observe a partial file.
package store
