package report

import (
	"github.com/pidim-smart/report-dashboard/pkg/models/domain"
	"github.com/pidim-smart/report-dashboard/pkg/models/store"
)

// chartSpec tells the projection which fields feed the chart for one report.
// An empty categoryField projects a fixed category label instead.
type chartSpec struct {
	categoryField string
	fixedCategory string
	valueField    string
	// loan only: drop subtotal rows and rows without a category value
	dropSubtotals   bool
	requireCategory bool
}

func specFor(name domain.ReportName) chartSpec {
	switch name {
	case domain.ReportPoultry:
		return chartSpec{categoryField: poultryTypeField, valueField: poultryBirdField}
	case domain.ReportGrants:
		return chartSpec{fixedCategory: "Grants", valueField: grantsAmtField}
	default:
		return chartSpec{
			categoryField:   loanTypeField,
			valueField:      loanAmountField,
			dropSubtotals:   true,
			requireCategory: true,
		}
	}
}

// ChartPoints projects a dataset to {branch, category, value} tuples for the
// bar chart. Grand-total rows never chart; the loan report also drops branch
// subtotal rows and rows missing a loan type. Missing numeric values chart
// as zero. A fresh slice is returned on every call.
func ChartPoints(name domain.ReportName, rows []store.Row) []domain.ChartPoint {
	spec := specFor(name)
	points := make([]domain.ChartPoint, 0, len(rows))
	for _, row := range rows {
		kind := Classify(row)
		if kind == domain.RowGrandTotal {
			continue
		}
		if spec.dropSubtotals && kind == domain.RowSubtotal {
			continue
		}

		category := spec.fixedCategory
		if spec.categoryField != "" {
			category, _ = row[spec.categoryField].(string)
		}
		if spec.requireCategory && category == "" {
			continue
		}

		branch, _ := row[domain.BranchNameField].(string)
		value, _ := toNumber(row[spec.valueField])
		points = append(points, domain.ChartPoint{
			Branch:   branch,
			Category: category,
			Value:    value,
		})
	}
	return points
}
