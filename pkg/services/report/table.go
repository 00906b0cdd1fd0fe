package report

import (
	"strings"

	"github.com/pidim-smart/report-dashboard/pkg/models/domain"
	"github.com/pidim-smart/report-dashboard/pkg/models/store"
)

// TableOpts adjusts how a table view is built.
type TableOpts struct {
	Title    string
	Subtitle string
	// NoFooter suppresses the totals footer entirely.
	NoFooter bool
}

// Classify determines the row kind from the branch name convention.
func Classify(row store.Row) domain.RowKind {
	name, _ := row[domain.BranchNameField].(string)
	if name == domain.GrandTotalName {
		return domain.RowGrandTotal
	}
	if strings.HasSuffix(name, domain.TotalSuffix) {
		return domain.RowSubtotal
	}
	return domain.RowData
}

// BuildTable renders rows against the column descriptors, computing footer
// totals for summable columns. The footer total of a column is only computed
// when the first row holds a numeric value for it; within the sum, missing
// and non-numeric values count as zero. Totals always reflect exactly the
// rows passed in, so swapping the dataset swaps the totals.
func BuildTable(rows []store.Row, cols []domain.Column, opts TableOpts) domain.Table {
	table := domain.Table{
		Title:    opts.Title,
		Subtitle: opts.Subtitle,
		Headers:  make([]string, len(cols)),
	}
	for i, col := range cols {
		table.Headers[i] = col.Label
	}

	table.Rows = make([]domain.TableRow, 0, len(rows))
	for _, row := range rows {
		rendered := domain.TableRow{
			Cells: make([]string, len(cols)),
			Kind:  Classify(row),
		}
		for i, col := range cols {
			format := col.Format
			if format == nil {
				format = formatValue
			}
			rendered.Cells[i] = format(row[col.Key])
		}
		table.Rows = append(table.Rows, rendered)
	}

	if opts.NoFooter || len(rows) == 0 {
		return table
	}

	table.Footer = make([]string, len(cols))
	for i, col := range cols {
		if !col.Summable {
			continue
		}
		if _, numeric := toNumber(rows[0][col.Key]); !numeric {
			continue
		}
		var total float64
		for _, row := range rows {
			n, _ := toNumber(row[col.Key])
			total += n
		}
		format := col.Format
		if format == nil {
			format = formatValue
		}
		table.Footer[i] = format(total)
	}
	return table
}
