package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pidim-smart/report-dashboard/pkg/runtime/terminal/commands"
	"github.com/pidim-smart/report-dashboard/pkg/store/client"
)

// CLI represents the command-line interface
type CLI struct {
	api      client.ReportsAPI
	reporter *Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	API    client.ReportsAPI
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		api:      opts.API,
		reporter: NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Branch reports tool",
	}

	cmd.AddCommand(commands.NewShowCmd(cli.api, cli.reporter))
	cmd.AddCommand(commands.NewExportCmd(cli.api))

	return cmd
}
