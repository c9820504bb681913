package store

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"stockpick/internal/domain"
	"stockpick/internal/report"
)

// OpenCatalog picks a loader for path by its extension.
func OpenCatalog(path string) (domain.CatalogSource, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return &JSONCatalog{Path: path}, nil
	case ".xlsx":
		return &XLSXCatalog{Path: path}, nil
	default:
		return nil, domain.CatalogFormatf("unsupported catalog file %q (want .json or .xlsx)", path)
	}
}

// record is one catalog row before validation. Pointer fields are required.
type record struct {
	ID              *int64              `json:"id"`
	Product         *string             `json:"product"`
	Stock           *int                `json:"stock"`
	UnitPrice       *decimal.Decimal    `json:"unit_price"`
	Importer        string              `json:"importer"`
	StockForAllUnit decimal.NullDecimal `json:"stockForAllUnit"`
}

func (r record) item(row int) (domain.Item, error) {
	switch {
	case r.ID == nil:
		return domain.Item{}, domain.CatalogFormatf("row %d: missing %s", row, report.KeyID)
	case r.Product == nil:
		return domain.Item{}, domain.CatalogFormatf("row %d: missing %s", row, report.KeyProduct)
	case r.Stock == nil:
		return domain.Item{}, domain.CatalogFormatf("row %d: missing %s", row, report.KeyStock)
	case r.UnitPrice == nil:
		return domain.Item{}, domain.CatalogFormatf("row %d: missing %s", row, report.KeyUnitPrice)
	}
	it := domain.Item{
		ID:        domain.ItemID(*r.ID),
		Name:      *r.Product,
		Stock:     *r.Stock,
		UnitPrice: *r.UnitPrice,
		Importer:  r.Importer,
	}
	if r.StockForAllUnit.Valid {
		it.StockForAllUnit = r.StockForAllUnit.Decimal
	} else {
		it.StockForAllUnit = it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Stock)))
	}
	return it, nil
}

// JSONCatalog reads a JSON array of product records.
type JSONCatalog struct {
	Path string
}

// LoadCatalog implements domain.CatalogSource.
func (c *JSONCatalog) LoadCatalog(ctx context.Context) ([]domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	var recs []record
	if err := readJSON(c.Path, &recs); err != nil {
		return nil, err
	}
	items := make([]domain.Item, 0, len(recs))
	for i, r := range recs {
		it, err := r.item(i + 1)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// XLSXCatalog reads a worksheet whose first row holds column headers. Both
// the catalog keys (id, unit_price, ...) and the on-screen headers (Product,
// Unit Price, ...) are recognised. Without an id column rows are numbered
// from one. Sheet defaults to the first sheet of the workbook.
type XLSXCatalog struct {
	Path  string
	Sheet string
}

// LoadCatalog implements domain.CatalogSource.
func (c *XLSXCatalog) LoadCatalog(ctx context.Context) ([]domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	f, err := excelize.OpenFile(c.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", c.Path)
	}
	defer f.Close()

	sheet := c.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, domain.CatalogFormatf("sheet %q: %v", sheet, err)
	}
	if len(rows) == 0 {
		return []domain.Item{}, nil
	}

	cols := headerIndex(rows[0])
	items := make([]domain.Item, 0, len(rows)-1)
	for i, cells := range rows[1:] {
		if blank(cells) {
			continue
		}
		row := i + 2
		r, err := parseRow(cols, cells, row)
		if err != nil {
			return nil, err
		}
		if r.ID == nil && cols[report.KeyID] < 0 {
			id := int64(len(items) + 1)
			r.ID = &id
		}
		it, err := r.item(row)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

var headerAliases = map[string]string{
	"id":                  report.KeyID,
	"product":             report.KeyProduct,
	"stock":               report.KeyStock,
	"importer":            report.KeyImporter,
	"unit_price":          report.KeyUnitPrice,
	"unit price":          report.KeyUnitPrice,
	"stockforallunit":     report.KeyStockForAllUnit,
	"stock_for_all_unit":  report.KeyStockForAllUnit,
	"stock for all units": report.KeyStockForAllUnit,
}

// headerIndex maps catalog keys to column positions; absent keys map to -1.
func headerIndex(header []string) map[string]int {
	cols := map[string]int{
		report.KeyID:              -1,
		report.KeyProduct:         -1,
		report.KeyStock:           -1,
		report.KeyImporter:        -1,
		report.KeyUnitPrice:       -1,
		report.KeyStockForAllUnit: -1,
	}
	for i, h := range header {
		if key, ok := headerAliases[strings.ToLower(strings.TrimSpace(h))]; ok && cols[key] < 0 {
			cols[key] = i
		}
	}
	return cols
}

func parseRow(cols map[string]int, cells []string, row int) (record, error) {
	cell := func(key string) (string, bool) {
		i := cols[key]
		if i < 0 || i >= len(cells) {
			return "", false
		}
		v := strings.TrimSpace(cells[i])
		return v, v != ""
	}

	var r record
	if v, ok := cell(report.KeyID); ok {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return r, domain.CatalogFormatf("row %d: bad %s %q", row, report.KeyID, v)
		}
		r.ID = &id
	}
	if v, ok := cell(report.KeyProduct); ok {
		r.Product = &v
	}
	if v, ok := cell(report.KeyStock); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return r, domain.CatalogFormatf("row %d: bad %s %q", row, report.KeyStock, v)
		}
		r.Stock = &n
	}
	if v, ok := cell(report.KeyUnitPrice); ok {
		d, err := parseMoney(v)
		if err != nil {
			return r, domain.CatalogFormatf("row %d: bad %s %q", row, report.KeyUnitPrice, v)
		}
		r.UnitPrice = &d
	}
	if v, ok := cell(report.KeyImporter); ok {
		r.Importer = v
	}
	if v, ok := cell(report.KeyStockForAllUnit); ok {
		d, err := parseMoney(v)
		if err != nil {
			return r, domain.CatalogFormatf("row %d: bad %s %q", row, report.KeyStockForAllUnit, v)
		}
		r.StockForAllUnit = decimal.NewNullDecimal(d)
	}
	return r, nil
}

// parseMoney accepts plain numbers and the "$5.00" form used on screen.
func parseMoney(v string) (decimal.Decimal, error) {
	v = strings.TrimPrefix(v, "$")
	v = strings.ReplaceAll(v, ",", "")
	return decimal.NewFromString(v)
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Compile-time assertions that both loaders implement domain.CatalogSource.
var (
	_ domain.CatalogSource = (*JSONCatalog)(nil)
	_ domain.CatalogSource = (*XLSXCatalog)(nil)
)
