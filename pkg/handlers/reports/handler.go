package reports

import (
	"context"
	"encoding/json"
	"html/template"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/pidim-smart/report-dashboard/pkg/models/api"
	"github.com/pidim-smart/report-dashboard/pkg/models/domain"
	"github.com/pidim-smart/report-dashboard/pkg/models/store"
	"github.com/pidim-smart/report-dashboard/pkg/render/svg"
	"github.com/pidim-smart/report-dashboard/pkg/services/dashboard"
	"github.com/pidim-smart/report-dashboard/pkg/services/report"
	"github.com/pidim-smart/report-dashboard/pkg/store/client"
	"github.com/pidim-smart/report-dashboard/pkg/view"
)

const pageTitle = "PIDIM SMART Reports"

// DashboardService is the state contract the handler renders from.
type DashboardService interface {
	Snapshot() dashboard.Snapshot
	LoadFixed(ctx context.Context) error
	ApplyMonth(ctx context.Context, month string) error
	ClearMonth()
}

// Exporter opens the upstream Excel workbook for pass-through.
type Exporter interface {
	ExportExcel(ctx context.Context) (*client.ExcelDownload, error)
}

// Handler serves the dashboard page, its actions, and the JSON snapshot.
type Handler struct {
	svc       DashboardService
	exporter  Exporter
	templates *view.Engine
}

// NewHandler wires the dashboard service and template engine.
func NewHandler(svc DashboardService, exporter Exporter, templates *view.Engine) *Handler {
	return &Handler{svc: svc, exporter: exporter, templates: templates}
}

type pageView struct {
	Title      string
	State      string
	Err        string
	MonthValue string
	Panels     []panelView
}

type panelView struct {
	Name     string
	Title    string
	Subtitle string
	Table    domain.Table
	HasData  bool
	IsLoan   bool
	ChartSVG template.HTML
}

// Page renders the dashboard HTML.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	snap := h.svc.Snapshot()
	pv := pageView{
		Title:      pageTitle,
		State:      snap.State.String(),
		MonthValue: snap.Month,
	}
	if snap.Err != nil {
		pv.Err = snap.Err.Error()
	}

	if snap.State == dashboard.StateReady {
		panels, err := buildPanels(snap)
		if err != nil {
			logger.Error().Err(err).Msg("failed to build dashboard panels")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		pv.Panels = panels
	}

	if err := h.templates.Render(w, "dashboard", pv); err != nil {
		logger.Error().Err(err).Msg("failed to render dashboard")
	}
}

// Refresh re-runs the fixed load; it doubles as the retry action for the
// failed state.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.svc.LoadFixed(ctx); err != nil {
		// The failed state is rendered by the page; nothing else to do here.
		zerolog.Ctx(ctx).Error().Err(err).Msg("fixed reports load failed")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ApplyMonth applies the loan month filter from the posted form.
func (h *Handler) ApplyMonth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	month := r.FormValue("month")
	if err := h.svc.ApplyMonth(ctx, month); err != nil {
		// Fail-safe: the service already reverted to the fixed dataset.
		zerolog.Ctx(ctx).Error().Err(err).Str("month", month).Msg("month filter apply failed")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ClearMonth removes the loan month filter.
func (h *Handler) ClearMonth(w http.ResponseWriter, r *http.Request) {
	h.svc.ClearMonth()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ExportExcel streams the upstream workbook to the browser.
func (h *Handler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	download, err := h.exporter.ExportExcel(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("excel export failed")
		http.Error(w, "export unavailable", http.StatusBadGateway)
		return
	}
	defer func() { _ = download.Body.Close() }()

	contentType := download.ContentType
	if contentType == "" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	disposition := download.Disposition
	if disposition == "" {
		disposition = `attachment; filename="pidim_reports.xlsx"`
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", disposition)
	if _, err := io.Copy(w, download.Body); err != nil {
		logger.Error().Err(err).Msg("failed to stream excel export")
	}
}

// Snapshot serves the JSON view of the dashboard.
func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	snap := h.svc.Snapshot()
	resp := api.Snapshot{
		State:      snap.State.String(),
		MonthLabel: snap.MonthLabel,
	}
	if snap.Err != nil {
		resp.Error = snap.Err.Error()
	}
	if snap.State == dashboard.StateReady {
		for _, p := range orderedPanels(snap) {
			resp.Reports = append(resp.Reports, buildAPIReport(p.name, p.rows, p.subtitle))
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error().Err(err).Msg("failed to encode reports snapshot")
	}
}

type panelInput struct {
	name     domain.ReportName
	rows     []store.Row
	subtitle string
}

func orderedPanels(snap dashboard.Snapshot) []panelInput {
	loanSubtitle := ""
	if snap.MonthApplied && snap.MonthLabel != "" {
		loanSubtitle = "Month: " + snap.MonthLabel
	}
	return []panelInput{
		{name: domain.ReportLoan, rows: snap.Loan, subtitle: loanSubtitle},
		{name: domain.ReportPoultry, rows: snap.Poultry},
		{name: domain.ReportGrants, rows: snap.Grants},
	}
}

func buildPanels(snap dashboard.Snapshot) ([]panelView, error) {
	inputs := orderedPanels(snap)
	panels := make([]panelView, len(inputs))

	var g errgroup.Group
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			panel, err := buildPanel(in)
			if err != nil {
				return err
			}
			panels[i] = panel
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return panels, nil
}

func buildPanel(in panelInput) (panelView, error) {
	table := report.BuildTable(in.rows, report.Columns(in.name), report.TableOpts{
		Title:    report.Title(in.name),
		Subtitle: in.subtitle,
	})
	panel := panelView{
		Name:     string(in.name),
		Title:    table.Title,
		Subtitle: table.Subtitle,
		Table:    table,
		HasData:  len(in.rows) > 0,
		IsLoan:   in.name == domain.ReportLoan,
	}

	points := report.ChartPoints(in.name, in.rows)
	if len(points) == 0 {
		return panel, nil
	}
	branches, categories, series := report.GroupPoints(points)
	chart, err := svg.Bars(svg.DefaultWidth, svg.DefaultHeight, series, categories, branches, svg.BarOpts{
		Title:       table.Title,
		Description: table.Title + " by branch",
	})
	if err != nil {
		return panelView{}, err
	}
	panel.ChartSVG = chart
	return panel, nil
}

func buildAPIReport(name domain.ReportName, rows []store.Row, subtitle string) api.Report {
	table := report.BuildTable(rows, report.Columns(name), report.TableOpts{Title: report.Title(name), Subtitle: subtitle})
	out := api.Report{
		Name:    string(name),
		Title:   table.Title,
		Headers: table.Headers,
		Footer:  table.Footer,
	}
	for _, row := range table.Rows {
		out.Rows = append(out.Rows, api.TableRow{Cells: row.Cells, Kind: kindString(row.Kind)})
	}
	for _, p := range report.ChartPoints(name, rows) {
		out.Chart = append(out.Chart, api.ChartPoint{Branch: p.Branch, Category: p.Category, Value: p.Value})
	}
	return out
}

func kindString(kind domain.RowKind) string {
	switch kind {
	case domain.RowSubtotal:
		return "subtotal"
	case domain.RowGrandTotal:
		return "grand_total"
	default:
		return "data"
	}
}
