package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pidim-smart/report-dashboard/pkg/models/domain"
	"github.com/pidim-smart/report-dashboard/pkg/services/report"
	"github.com/pidim-smart/report-dashboard/pkg/store/client"
)

// TableReporter renders finished tables to the user.
type TableReporter interface {
	Handle(tables []domain.Table) error
}

type ShowCmd struct {
	month    string
	api      client.ReportsAPI
	reporter TableReporter
}

// NewShowCmd fetches the fixed reports and prints them as tables. With
// --month the loan table is re-fetched scoped to that month.
func NewShowCmd(api client.ReportsAPI, reporter TableReporter) *cobra.Command {
	sc := &ShowCmd{api: api, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Fetch and print the branch reports",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.month, "month", "", "Restrict the loan report to a month (YYYY-MM)")

	return cmd
}

func (sc *ShowCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	fixed, err := sc.api.FetchFixed(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch reports: %w", err)
	}

	loanRows := fixed.Loan
	loanSubtitle := ""
	if sc.month != "" {
		monthly, err := sc.api.FetchLoanMonth(ctx, sc.month)
		if err != nil {
			return fmt.Errorf("failed to fetch loan report for %s: %w", sc.month, err)
		}
		loanRows = monthly.Rows
		if monthly.MonthLabel != "" {
			loanSubtitle = "Month: " + monthly.MonthLabel
		}
	}

	tables := []domain.Table{
		report.BuildTable(loanRows, report.LoanColumns(), report.TableOpts{
			Title:    report.Title(domain.ReportLoan),
			Subtitle: loanSubtitle,
		}),
		report.BuildTable(fixed.Poultry, report.PoultryColumns(), report.TableOpts{
			Title: report.Title(domain.ReportPoultry),
		}),
		report.BuildTable(fixed.Grants, report.GrantsColumns(), report.TableOpts{
			Title: report.Title(domain.ReportGrants),
		}),
	}

	return sc.reporter.Handle(tables)
}
