package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pidim-smart/report-dashboard/pkg/models/store"
)

// ReportsAPI is the read surface of the upstream reports service.
type ReportsAPI interface {
	FetchFixed(ctx context.Context) (store.FixedReports, error)
	FetchLoanMonth(ctx context.Context, month string) (store.MonthlyLoan, error)
	ExportExcel(ctx context.Context) (*ExcelDownload, error)
}

// ExcelDownload is an open stream of the upstream workbook. The caller owns
// Body and must close it.
type ExcelDownload struct {
	Body        io.ReadCloser
	ContentType string
	Disposition string
}

// HTTP talks to the upstream reports service over plain HTTP/JSON.
type HTTP struct {
	base   string
	client *http.Client
}

// NewHTTP builds a client for the given base URL. A nil httpClient falls
// back to http.DefaultClient.
func NewHTTP(base string, httpClient *http.Client) *HTTP {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTP{
		base:   strings.TrimRight(base, "/"),
		client: httpClient,
	}
}

// FetchFixed retrieves the three fixed datasets in a single request.
// Datasets absent from the payload come back as empty row sets.
func (h *HTTP) FetchFixed(ctx context.Context) (store.FixedReports, error) {
	var reports store.FixedReports
	if err := h.getJSON(ctx, "/reports/fixed", &reports); err != nil {
		return store.FixedReports{}, fmt.Errorf("fetch fixed reports: %w", err)
	}
	if reports.Loan == nil {
		reports.Loan = []store.Row{}
	}
	if reports.Poultry == nil {
		reports.Poultry = []store.Row{}
	}
	if reports.Grants == nil {
		reports.Grants = []store.Row{}
	}
	return reports, nil
}

// FetchLoanMonth retrieves the loan report scoped to a month. An empty month
// requests the upstream default (unfiltered) result.
func (h *HTTP) FetchLoanMonth(ctx context.Context, month string) (store.MonthlyLoan, error) {
	path := "/reports/loan"
	if month != "" {
		path += "?month=" + url.QueryEscape(month)
	}
	var loan store.MonthlyLoan
	if err := h.getJSON(ctx, path, &loan); err != nil {
		return store.MonthlyLoan{}, fmt.Errorf("fetch loan report for month %q: %w", month, err)
	}
	if loan.Rows == nil {
		loan.Rows = []store.Row{}
	}
	return loan, nil
}

// ExportExcel opens the upstream workbook download for pass-through.
func (h *HTTP) ExportExcel(ctx context.Context) (*ExcelDownload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.base+"/export/excel", nil)
	if err != nil {
		return nil, err
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("export excel: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer func() { _ = resp.Body.Close() }()
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("export excel: upstream response %d: %s", resp.StatusCode, string(data))
	}

	return &ExcelDownload{
		Body:        resp.Body,
		ContentType: resp.Header.Get("Content-Type"),
		Disposition: resp.Header.Get("Content-Disposition"),
	}, nil
}

func (h *HTTP) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.base+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("upstream response %d: %s", resp.StatusCode, string(data))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
