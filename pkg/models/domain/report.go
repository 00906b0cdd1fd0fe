package domain

// Field names and marker values imposed by the upstream report producer.
// Summary rows are recognised purely by convention: a row whose branch name
// carries the " Total" suffix is a branch subtotal, and the single row named
// exactly "Grand Total" closes the report. Rows violating the convention are
// treated as ordinary data rows.
const (
	BranchNameField = "Branch Name"
	GrandTotalName  = "Grand Total"
	TotalSuffix     = " Total"
)

// RowKind classifies a report row for rendering.
type RowKind int

const (
	RowData RowKind = iota
	RowSubtotal
	RowGrandTotal
)

// ReportName identifies one of the three fixed datasets.
type ReportName string

const (
	ReportLoan    ReportName = "loan"
	ReportPoultry ReportName = "poultry"
	ReportGrants  ReportName = "grants"
)

// Column describes one table column: which row field it reads, the header
// shown to the user, whether a footer total is computed, and an optional
// display formatter (nil means verbatim).
type Column struct {
	Key      string
	Label    string
	Summable bool
	Format   func(any) string
}

// TableRow is a rendered row with its display cells and kind marker.
type TableRow struct {
	Cells []string
	Kind  RowKind
}

// Table is the fully computed view of one report dataset.
// Footer is nil when the totals footer is suppressed; otherwise it holds one
// cell per column, empty for columns without a computed total.
type Table struct {
	Title    string
	Subtitle string
	Headers  []string
	Rows     []TableRow
	Footer   []string
}

// ChartPoint is the reduced {branch, category, value} projection of a row
// used for bar charts.
type ChartPoint struct {
	Branch   string
	Category string
	Value    float64
}
