package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/de-tools/health-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/health-atlas/pkg/services/aggregate"
	"github.com/de-tools/health-atlas/pkg/services/align"
	"github.com/de-tools/health-atlas/pkg/services/bucket"
)

type TablesCmd struct {
	exportPath string
	configPath string
	cutoff     string
	dir        string
}

func NewTablesCmd() *cobra.Command {
	tc := &TablesCmd{}
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Write every CSV table derived from a health export into a directory",
		RunE:  tc.run,
	}

	cmd.Flags().StringVar(&tc.exportPath, "export", "", "Path to the export.xml file")
	cmd.Flags().StringVar(&tc.configPath, "config", "", "Path to the params file")
	cmd.Flags().StringVar(&tc.cutoff, "cutoff", "", "Override the cutoff date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&tc.dir, "dir", "", "Output directory for the CSV files")

	_ = cmd.MarkFlagRequired("export")
	_ = cmd.MarkFlagRequired("dir")

	return cmd
}

func (tc *TablesCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	params, set, err := loadRecords(ctx, tc.exportPath, tc.configPath, tc.cutoff)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(tc.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %q: %w", tc.dir, err)
	}

	out := cmd.OutOrStdout()
	rule := bucket.SleepNight(params)

	nights, err := aggregate.NightlySleep(set.Sleep, rule, false)
	switch {
	case errors.Is(err, domain.ErrNoData):
		fmt.Fprintln(out, "Skipping nights.csv: no sleep records.")
	case err != nil:
		return err
	default:
		if err := tc.writeTable(out, "nights.csv", func(w io.Writer) error {
			return export.WriteNights(w, nights)
		}); err != nil {
			return err
		}
	}

	if err := tc.writeDays(out, set, params); err != nil {
		return err
	}

	flagged := aggregate.FlagSamples(set.HeartRate, params.LowHeartRateBPM)
	if err := tc.writeTable(out, "heart_rate.csv", func(w io.Writer) error {
		return export.WriteHeartRate(w, flagged)
	}); err != nil {
		return err
	}

	if err := tc.writeTable(out, "workouts.csv", func(w io.Writer) error {
		return export.WriteWorkouts(w, set.Workouts)
	}); err != nil {
		return err
	}

	if err := tc.writeTable(out, "low_hr_events.csv", func(w io.Writer) error {
		return export.WriteLowHREvents(w, set.LowHeartRate)
	}); err != nil {
		return err
	}

	return tc.writeComparison(out, set, params, rule)
}

func (tc *TablesCmd) writeDays(out io.Writer, set *domain.RecordSet, params domain.Params) error {
	rule := bucket.WorkoutDay(params)
	start, end, err := aggregate.Range(set.LowHeartRate, set.Workouts, rule)
	if errors.Is(err, domain.ErrNoData) {
		fmt.Fprintln(out, "Skipping days.csv: no events or workouts.")
		return nil
	}
	if err != nil {
		return err
	}

	days, err := aggregate.Days(set.LowHeartRate, set.Workouts, rule, start, end, params)
	if err != nil {
		return err
	}
	return tc.writeTable(out, "days.csv", func(w io.Writer) error {
		return export.WriteDays(w, days)
	})
}

func (tc *TablesCmd) writeComparison(out io.Writer, set *domain.RecordSet, params domain.Params, rule bucket.Rule) error {
	if len(params.SleepSources) < 2 {
		fmt.Fprintln(out, "Skipping comparison.csv: needs two configured sleep sources.")
		return nil
	}

	perSource, err := aggregate.NightlySleep(set.Sleep, rule, true)
	if errors.Is(err, domain.ErrNoData) {
		fmt.Fprintln(out, "Skipping comparison.csv: no sleep records.")
		return nil
	}
	if err != nil {
		return err
	}

	labelA := params.SleepSources[0].Label
	labelB := params.SleepSources[1].Label
	var as, bs []domain.NightMetrics
	for _, n := range perSource {
		switch n.Source {
		case labelA:
			as = append(as, n)
		case labelB:
			bs = append(bs, n)
		}
	}

	joined, err := align.Nights(as, bs)
	if errors.Is(err, domain.ErrNoData) || errors.Is(err, domain.ErrEmptyJoin) {
		fmt.Fprintf(out, "Skipping comparison.csv: %v.\n", err)
		return nil
	}
	if err != nil {
		return err
	}

	return tc.writeTable(out, "comparison.csv", func(w io.Writer) error {
		return export.WriteComparison(w, labelA, labelB, joined)
	})
}

func (tc *TablesCmd) writeTable(out io.Writer, name string, write func(io.Writer) error) error {
	path := filepath.Join(tc.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", path, err)
	}
	defer f.Close()

	if err := write(f); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	fmt.Fprintf(out, "Wrote %s\n", path)
	return nil
}
