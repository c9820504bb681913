package commands

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"

	"stockpick/internal/domain"
)

// renderTable prints t as a bordered text table.
func renderTable(w io.Writer, t domain.Table) {
	if len(t.Rows) == 0 {
		fmt.Fprintf(w, "(no %s)\n", tableNoun(t.Name))
		return
	}
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(t.Columns)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	for _, row := range t.Rows {
		cells := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			cells[i] = formatCell(row[c])
		}
		tw.Append(cells)
	}
	tw.Render()
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case decimal.Decimal:
		return x.StringFixed(2)
	default:
		return fmt.Sprint(v)
	}
}

func tableNoun(name string) string {
	if name == "" {
		return "rows"
	}
	return "rows in " + name
}
