package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pidim-smart/report-dashboard/pkg/models/domain"
	"github.com/pidim-smart/report-dashboard/pkg/models/store"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		branch   any
		expected domain.RowKind
	}{
		{"plain branch", "Mirpur", domain.RowData},
		{"branch subtotal", "Mirpur Total", domain.RowSubtotal},
		{"grand total", "Grand Total", domain.RowGrandTotal},
		{"total without space is data", "Total", domain.RowData},
		{"missing branch name", nil, domain.RowData},
		{"non-string branch name", 42.0, domain.RowData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := store.Row{}
			if tt.branch != nil {
				row[domain.BranchNameField] = tt.branch
			}
			assert.Equal(t, tt.expected, Classify(row))
		})
	}
}

func TestBuildTable_TotalsOverDisplayedRows(t *testing.T) {
	// Data row, subtotal, and grand total all count toward the footer.
	rows := []store.Row{
		{"Branch Name": "A", "Amount of Loan": 100.0},
		{"Branch Name": "A Total", "Amount of Loan": 100.0},
		{"Branch Name": "Grand Total", "Amount of Loan": 100.0},
	}
	cols := []domain.Column{
		{Key: "Branch Name", Label: "Branch Name"},
		{Key: "Amount of Loan", Label: "Amount of Loan", Summable: true, Format: FormatNumber},
	}

	table := BuildTable(rows, cols, TableOpts{Title: "Loan Disbursement"})

	require.Len(t, table.Rows, 3)
	assert.Equal(t, domain.RowData, table.Rows[0].Kind)
	assert.Equal(t, domain.RowSubtotal, table.Rows[1].Kind)
	assert.Equal(t, domain.RowGrandTotal, table.Rows[2].Kind)

	require.NotNil(t, table.Footer)
	assert.Equal(t, "", table.Footer[0])
	assert.Equal(t, "300", table.Footer[1])
}

func TestBuildTable_CoercesMissingAndNonNumericToZero(t *testing.T) {
	rows := []store.Row{
		{"Branch Name": "A", "Amount of Loan": 50.0},
		{"Branch Name": "B"},
		{"Branch Name": "C", "Amount of Loan": "not a number"},
		{"Branch Name": "D", "Amount of Loan": "25"},
	}
	cols := []domain.Column{
		{Key: "Branch Name", Label: "Branch Name"},
		{Key: "Amount of Loan", Label: "Amount of Loan", Summable: true, Format: FormatNumber},
	}

	table := BuildTable(rows, cols, TableOpts{})

	require.NotNil(t, table.Footer)
	assert.Equal(t, "75", table.Footer[1])
}

func TestBuildTable_NoTotalWhenFirstRowNotNumeric(t *testing.T) {
	rows := []store.Row{
		{"Branch Name": "A", "Amount of Loan": "n/a"},
		{"Branch Name": "B", "Amount of Loan": 100.0},
	}
	cols := []domain.Column{
		{Key: "Branch Name", Label: "Branch Name"},
		{Key: "Amount of Loan", Label: "Amount of Loan", Summable: true},
	}

	table := BuildTable(rows, cols, TableOpts{})

	require.NotNil(t, table.Footer)
	assert.Equal(t, "", table.Footer[1])
}

func TestBuildTable_FooterSuppressed(t *testing.T) {
	rows := []store.Row{{"Branch Name": "A", "Amount of Loan": 100.0}}
	cols := []domain.Column{
		{Key: "Amount of Loan", Label: "Amount of Loan", Summable: true},
	}

	table := BuildTable(rows, cols, TableOpts{NoFooter: true})
	assert.Nil(t, table.Footer)
}

func TestBuildTable_EmptyRows(t *testing.T) {
	table := BuildTable(nil, LoanColumns(), TableOpts{Title: "Loan Disbursement"})

	assert.Empty(t, table.Rows)
	assert.Nil(t, table.Footer)
	assert.Equal(t, []string{"Sl No", "Branch Name", "Types of Loan", "# of Loan", "Amount of Loan"}, table.Headers)
}

func TestBuildTable_FormatterAndVerbatimCells(t *testing.T) {
	rows := []store.Row{
		{"Branch Name": "Savar", "Amount of Loan": 1234567.0, "Sl No": 1.0},
	}

	table := BuildTable(rows, LoanColumns(), TableOpts{})

	require.Len(t, table.Rows, 1)
	cells := table.Rows[0].Cells
	assert.Equal(t, "1", cells[0])
	assert.Equal(t, "Savar", cells[1])
	assert.Equal(t, "", cells[2])
	assert.Equal(t, "1,234,567", cells[4])
}

func TestBuildTable_TotalsFollowDisplayedDataset(t *testing.T) {
	fixed := []store.Row{
		{"Branch Name": "A", "Amount of Loan": 100.0},
		{"Branch Name": "B", "Amount of Loan": 200.0},
	}
	override := []store.Row{
		{"Branch Name": "A", "Amount of Loan": 40.0},
	}
	cols := []domain.Column{
		{Key: "Amount of Loan", Label: "Amount of Loan", Summable: true, Format: FormatNumber},
	}

	assert.Equal(t, "300", BuildTable(fixed, cols, TableOpts{}).Footer[0])
	assert.Equal(t, "40", BuildTable(override, cols, TableOpts{}).Footer[0])
}
