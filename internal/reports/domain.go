// Package reports generates sales, item and team reports for a date range and
// exports them as CSV or PDF.
package reports

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"github.com/platehub/backoffice/internal/shared"
)

// Report types offered by the generator.
const (
	TypeSales = "sales"
	TypeItems = "items"
	TypeTeam  = "team"
)

// Types lists the report types in menu order.
var Types = []string{TypeSales, TypeItems, TypeTeam}

// Filter is the generator form.
type Filter struct {
	Type     string
	Range    shared.DateRange
	BranchID *int64
}

// Validate checks the report type.
func (f Filter) Validate() error {
	if !slices.Contains(Types, f.Type) {
		return shared.FieldErrors{"type": "Choose a report type"}
	}
	return nil
}

// SalesRow is one day of the sales report.
type SalesRow struct {
	Date          string  `json:"date"`
	Orders        int64   `json:"orders"`
	Cancelled     int64   `json:"cancelled"`
	Revenue       float64 `json:"revenue"`
	AverageTicket float64 `json:"average_ticket"`
}

// ItemRow is one food of the items report.
type ItemRow struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Quantity int64   `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// TeamRow is one member of the team report.
type TeamRow struct {
	Name    string  `json:"name"`
	Role    string  `json:"role"`
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// Cell is a table value. Amount marks money so the page can format it.
type Cell struct {
	Text   string
	Value  float64
	Amount bool
}

// Report is a generated report flattened into a table.
type Report struct {
	Type     string
	Title    string
	Range    shared.DateRange
	Currency string
	Columns  []string
	Rows     [][]Cell
	Totals   []Cell
}

func text(s string) Cell { return Cell{Text: s} }
func count(n int64) Cell { return Cell{Text: strconv.FormatInt(n, 10), Value: float64(n)} }
func amount(v float64) Cell { return Cell{Text: strconv.FormatFloat(v, 'f', 2, 64), Value: v, Amount: true} }
func blank() Cell { return Cell{} }

func sumCell(c Cell, v float64) Cell {
	c.Value += v
	if c.Amount {
		c.Text = strconv.FormatFloat(c.Value, 'f', 2, 64)
	} else {
		c.Text = strconv.FormatInt(int64(c.Value), 10)
	}
	return c
}

// build decodes raw rows of the given type into a table.
func build(kind string, raw json.RawMessage) (columns []string, rows [][]Cell, totals []Cell, err error) {
	switch kind {
	case TypeSales:
		var in []SalesRow
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, nil, nil, err
		}
		columns = []string{"Date", "Orders", "Cancelled", "Revenue", "Average ticket"}
		totals = []Cell{text("Total"), count(0), count(0), amount(0), blank()}
		for _, r := range in {
			rows = append(rows, []Cell{text(r.Date), count(r.Orders), count(r.Cancelled), amount(r.Revenue), amount(r.AverageTicket)})
			totals[1] = sumCell(totals[1], float64(r.Orders))
			totals[2] = sumCell(totals[2], float64(r.Cancelled))
			totals[3] = sumCell(totals[3], r.Revenue)
		}
		if orders := totals[1].Value; orders > 0 {
			totals[4] = amount(totals[3].Value / orders)
		}
	case TypeItems:
		var in []ItemRow
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, nil, nil, err
		}
		columns = []string{"Item", "Category", "Quantity", "Revenue"}
		totals = []Cell{text("Total"), blank(), count(0), amount(0)}
		for _, r := range in {
			rows = append(rows, []Cell{text(r.Name), text(r.Category), count(r.Quantity), amount(r.Revenue)})
			totals[2] = sumCell(totals[2], float64(r.Quantity))
			totals[3] = sumCell(totals[3], r.Revenue)
		}
	case TypeTeam:
		var in []TeamRow
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, nil, nil, err
		}
		columns = []string{"Member", "Role", "Orders", "Revenue"}
		totals = []Cell{text("Total"), blank(), count(0), amount(0)}
		for _, r := range in {
			rows = append(rows, []Cell{text(r.Name), text(r.Role), count(r.Orders), amount(r.Revenue)})
			totals[2] = sumCell(totals[2], float64(r.Orders))
			totals[3] = sumCell(totals[3], r.Revenue)
		}
	default:
		return nil, nil, nil, fmt.Errorf("reports: unknown type %q", kind)
	}
	return columns, rows, totals, nil
}

func title(kind string) string {
	switch kind {
	case TypeSales:
		return "Sales report"
	case TypeItems:
		return "Items report"
	case TypeTeam:
		return "Team report"
	}
	return "Report"
}
