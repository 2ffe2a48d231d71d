package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/de-tools/health-atlas/pkg/services/analysis"
)

type AnalysesCmd struct {
	registry analysis.Registry
}

func NewAnalysesCmd(registry analysis.Registry) *cobra.Command {
	lc := &AnalysesCmd{registry: registry}
	return &cobra.Command{
		Use:   "analyses",
		Short: "List registered analyses",
		RunE:  lc.run,
	}
}

func (lc *AnalysesCmd) run(cmd *cobra.Command, args []string) error {
	names := lc.registry.ListAnalyses()
	if len(names) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No analyses registered.")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Registered analyses:\n%s\n", strings.Join(names, "\n"))
	return nil
}
