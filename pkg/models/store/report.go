package store

// Row is a single report row as delivered by the upstream reports API.
// Fields vary per report type; values are strings or JSON numbers (float64).
type Row map[string]any

// FixedReports is the payload of GET /reports/fixed.
type FixedReports struct {
	Loan    []Row `json:"loan"`
	Poultry []Row `json:"poultry"`
	Grants  []Row `json:"grants"`
}

// MonthlyLoan is the payload of GET /reports/loan?month=YYYY-MM.
type MonthlyLoan struct {
	Rows       []Row  `json:"rows"`
	MonthLabel string `json:"month_label"`
}
