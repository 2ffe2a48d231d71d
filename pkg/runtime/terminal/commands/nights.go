package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/de-tools/health-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/health-atlas/pkg/services/aggregate"
	"github.com/de-tools/health-atlas/pkg/services/bucket"
)

type NightsCmd struct {
	exportPath string
	configPath string
	cutoff     string
	outPath    string
	bySource   bool
}

func NewNightsCmd() *cobra.Command {
	nc := &NightsCmd{}
	cmd := &cobra.Command{
		Use:   "nights",
		Short: "Write the nightly sleep aggregate as CSV",
		RunE:  nc.run,
	}

	cmd.Flags().StringVar(&nc.exportPath, "export", "", "Path to the export.xml file")
	cmd.Flags().StringVar(&nc.configPath, "config", "", "Path to the params file")
	cmd.Flags().StringVar(&nc.cutoff, "cutoff", "", "Override the cutoff date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&nc.outPath, "out", "", "Write to a file instead of stdout")
	cmd.Flags().BoolVar(&nc.bySource, "by-source", false, "One row per night and source instead of pooled nights")

	_ = cmd.MarkFlagRequired("export")

	return cmd
}

func (nc *NightsCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	params, set, err := loadRecords(ctx, nc.exportPath, nc.configPath, nc.cutoff)
	if err != nil {
		return err
	}

	nights, err := aggregate.NightlySleep(set.Sleep, bucket.SleepNight(params), nc.bySource)
	if errors.Is(err, domain.ErrNoData) {
		fmt.Fprintln(cmd.OutOrStdout(), "No sleep records in the export.")
		return nil
	}
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if nc.outPath != "" {
		f, err := os.Create(nc.outPath)
		if err != nil {
			return fmt.Errorf("failed to create %q: %w", nc.outPath, err)
		}
		defer f.Close()
		w = f
	}

	return export.WriteNights(w, nights)
}
