package terminal

import (
	"io"
	"os"

	"github.com/de-tools/health-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/health-atlas/pkg/runtime/terminal/export"

	"github.com/de-tools/health-atlas/pkg/services/analysis"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	registry analysis.Registry
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Registry analysis.Registry
	Output   io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		registry: opts.Registry,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health-atlas",
		Short: "Health export analysis tool",
	}

	cmd.AddCommand(commands.NewAnalyzeCmd(cli.registry, cli.reporter))
	cmd.AddCommand(commands.NewNightsCmd())
	cmd.AddCommand(commands.NewTablesCmd())
	cmd.AddCommand(commands.NewAnalysesCmd(cli.registry))

	return cmd
}
