package api

// ChartPoint mirrors domain.ChartPoint for JSON responses.
type ChartPoint struct {
	Branch   string  `json:"branch"`
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

// TableRow carries the formatted cells of one row plus its marker.
type TableRow struct {
	Cells []string `json:"cells"`
	Kind  string   `json:"kind"`
}

// Report is one report panel in the JSON snapshot.
type Report struct {
	Name    string       `json:"name"`
	Title   string       `json:"title"`
	Headers []string     `json:"headers"`
	Rows    []TableRow   `json:"rows"`
	Footer  []string     `json:"footer,omitempty"`
	Chart   []ChartPoint `json:"chart"`
}

// Snapshot is the response of GET /api/v1/reports.
type Snapshot struct {
	State      string   `json:"state"`
	Error      string   `json:"error,omitempty"`
	MonthLabel string   `json:"month_label,omitempty"`
	Reports    []Report `json:"reports"`
}
