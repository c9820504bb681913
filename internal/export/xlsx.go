package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"stockpick/internal/domain"
	"stockpick/internal/store"
)

// Default file names for each export.
const (
	ProductsFile     = "products.xlsx"
	CombinationsFile = "combinations.xlsx"
	SelectedFile     = "selected.xlsx"
	RemovedFile      = "removed.xlsx"
)

// XLSXExporter writes tables as worksheets.
type XLSXExporter struct {
	log *logrus.Entry
}

func NewXLSXExporter(log *logrus.Entry) *XLSXExporter {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &XLSXExporter{log: log.WithField("component", "export")}
}

// Export builds a workbook from tables and atomically replaces path with it.
func (e *XLSXExporter) Export(ctx context.Context, path string, tables ...domain.Table) error {
	if len(tables) == 0 {
		return domain.InvalidArgumentf("nothing to export")
	}
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	f := excelize.NewFile()
	defer f.Close()

	first := f.GetSheetName(0)
	used := make(map[string]bool, len(tables))
	rows := 0
	for i, t := range tables {
		name := sheetName(t.Name, i, used)
		if i == 0 {
			if err := f.SetSheetName(first, name); err != nil {
				return errors.Wrapf(err, "sheet %q", name)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return errors.Wrapf(err, "sheet %q", name)
		}
		if err := writeTable(f, name, t); err != nil {
			return err
		}
		rows += len(t.Rows)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return errors.Wrap(err, "encode workbook")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WithStack(err)
	}
	if err := store.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return err
	}

	e.log.WithFields(logrus.Fields{"path": path, "sheets": len(tables), "rows": rows}).Info("workbook written")
	return nil
}

func writeTable(f *excelize.File, sheet string, t domain.Table) error {
	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return errors.Wrapf(err, "sheet %q header", sheet)
	}
	for r, row := range t.Rows {
		values := make([]any, len(t.Columns))
		for i, c := range t.Columns {
			values[i] = cellValue(row[c])
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return errors.WithStack(err)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return errors.Wrapf(err, "sheet %q row %d", sheet, r+1)
		}
	}
	return nil
}

// cellValue converts decimals to numbers; excelize handles the rest.
func cellValue(v any) any {
	switch x := v.(type) {
	case nil:
		return ""
	case decimal.Decimal:
		return x.InexactFloat64()
	default:
		return v
	}
}

// sheetName returns a unique worksheet name within excelize's length limit.
func sheetName(name string, i int, used map[string]bool) string {
	if name == "" {
		name = fmt.Sprintf("Sheet%d", i+1)
	}
	if len(name) > excelize.MaxSheetNameLength {
		name = name[:excelize.MaxSheetNameLength]
	}
	base, n := name, 2
	for used[name] {
		suffix := fmt.Sprintf(" (%d)", n)
		if len(base)+len(suffix) > excelize.MaxSheetNameLength {
			base = base[:excelize.MaxSheetNameLength-len(suffix)]
		}
		name = base + suffix
		n++
	}
	used[name] = true
	return name
}

// Compile-time assertion that XLSXExporter implements domain.Exporter.
var _ domain.Exporter = (*XLSXExporter)(nil)
