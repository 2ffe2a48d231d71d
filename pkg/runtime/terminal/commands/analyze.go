package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/de-tools/health-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/health-atlas/pkg/services/analysis"
)

type AnalyzeCmd struct {
	exportPath string
	configPath string
	cutoff     string
	registry   analysis.Registry
	reporter   *export.Reporter
}

func NewAnalyzeCmd(registry analysis.Registry, reporter *export.Reporter) *cobra.Command {
	ac := &AnalyzeCmd{registry: registry, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "analyze <name>",
		Short: "Run a registered analysis over a health export",
		Args:  cobra.ExactArgs(1),
		RunE:  ac.run,
	}

	// Define flags
	cmd.Flags().StringVar(&ac.exportPath, "export", "", "Path to the export.xml file")
	cmd.Flags().StringVar(&ac.configPath, "config", "", "Path to the params file")
	cmd.Flags().StringVar(&ac.cutoff, "cutoff", "", "Override the cutoff date (YYYY-MM-DD)")

	// Mark required flags
	_ = cmd.MarkFlagRequired("export")

	return cmd
}

func (ac *AnalyzeCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	name := args[0]
	params, set, err := loadRecords(ctx, ac.exportPath, ac.configPath, ac.cutoff)
	if err != nil {
		return err
	}

	an, err := ac.registry.Create(name, params)
	if err != nil {
		return fmt.Errorf("unknown analysis %q. Registered analyses: %v",
			name, ac.registry.ListAnalyses())
	}

	report, err := an.Run(ctx, set)
	if errors.Is(err, domain.ErrNoData) || errors.Is(err, domain.ErrEmptyJoin) {
		fmt.Fprintf(cmd.OutOrStdout(), "No result for %q: %v\n", name, err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to run analysis %q: %w", name, err)
	}

	return ac.reporter.Handle(report)
}
