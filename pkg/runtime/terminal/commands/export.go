package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pidim-smart/report-dashboard/pkg/store/client"
)

type ExportCmd struct {
	out string
	api client.ReportsAPI
}

// NewExportCmd downloads the Excel workbook produced by the upstream
// service and writes it to a local file.
func NewExportCmd(api client.ReportsAPI) *cobra.Command {
	ec := &ExportCmd{api: api}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the Excel workbook",
		RunE:  ec.run,
	}

	cmd.Flags().StringVar(&ec.out, "out", "pidim_reports.xlsx", "Output file path")

	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	download, err := ec.api.ExportExcel(ctx)
	if err != nil {
		return fmt.Errorf("failed to download export: %w", err)
	}
	defer func() { _ = download.Body.Close() }()

	f, err := os.Create(ec.out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", ec.out, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(f, download.Body); err != nil {
		return fmt.Errorf("failed to write %s: %w", ec.out, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", ec.out)
	return nil
}
