package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/health-atlas/pkg/models/domain"
)

const csvTimeLayout = "2006-01-02 15:04:05"

// WriteNights writes one row per aggregated night. Rows keep the order of the
// input slice.
func WriteNights(w io.Writer, nights []domain.NightMetrics) error {
	cw := csv.NewWriter(w)
	header := []string{
		"night", "source",
		"asleep_min", "core_min", "rem_min", "deep_min", "unspecified_min",
		"awake_min", "in_bed_min", "awakenings",
		"efficiency", "deep_pct", "rem_pct",
		"bed_time", "wake_time", "time_in_bed_min",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write nights header: %w", err)
	}
	for _, n := range nights {
		row := []string{
			n.Night.String(), n.Source,
			formatMinutes(n.AsleepMin), formatMinutes(n.CoreMin), formatMinutes(n.REMMin),
			formatMinutes(n.DeepMin), formatMinutes(n.UnspecifiedMin),
			formatMinutes(n.AwakeMin), formatMinutes(n.InBedMin), strconv.Itoa(n.Awakenings),
			formatMinutes(n.Efficiency), formatMinutes(n.DeepPct), formatMinutes(n.REMPct),
			formatTime(n.BedTime), formatTime(n.WakeTime), formatMinutes(n.TimeInBedMin),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write nights row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDays writes the gap-free daily activity series. Workout types are
// joined with ";" inside a single column.
func WriteDays(w io.Writer, days []domain.DayActivity) error {
	cw := csv.NewWriter(w)
	header := []string{
		"day", "low_hr_events", "low_hr_minutes",
		"workouts", "workout_minutes", "workout_types", "has_workout",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write days header: %w", err)
	}
	for _, d := range days {
		row := []string{
			d.Day.String(),
			strconv.Itoa(d.LowHREvents), formatMinutes(d.LowHRMinutes),
			strconv.Itoa(d.Workouts), formatMinutes(d.WorkoutMinutes),
			strings.Join(d.WorkoutTypes, ";"), strconv.FormatBool(d.HasWorkout()),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write days row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteHeartRate writes every kept sample with its low flag.
func WriteHeartRate(w io.Writer, samples []domain.FlaggedSample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"timestamp", "heart_rate", "is_low"}); err != nil {
		return fmt.Errorf("failed to write heart rate header: %w", err)
	}
	for _, s := range samples {
		row := []string{
			formatTime(s.Start),
			strconv.FormatFloat(s.BPM, 'f', -1, 64),
			strconv.FormatBool(s.Low),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write heart rate row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteWorkouts writes one row per recorded session.
func WriteWorkouts(w io.Writer, workouts []domain.Workout) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"timestamp", "duration_minutes", "workout_type", "source"}); err != nil {
		return fmt.Errorf("failed to write workouts header: %w", err)
	}
	for _, wo := range workouts {
		row := []string{
			formatTime(wo.Start),
			formatMinutes(wo.DurationMin),
			wo.ActivityType,
			wo.Source,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write workouts row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteLowHREvents writes one row per threshold event interval.
func WriteLowHREvents(w io.Writer, events []domain.LowHeartRateEvent) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"start_time", "end_time", "duration_minutes", "source"}); err != nil {
		return fmt.Errorf("failed to write events header: %w", err)
	}
	for _, e := range events {
		row := []string{
			formatTime(e.Start),
			formatTime(e.End),
			formatMinutes(e.Minutes()),
			e.Source,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write events row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteComparison writes the shared nights of two sources side by side, one
// column group per source. Column prefixes are derived from the labels.
func WriteComparison(w io.Writer, labelA, labelB string, rows []domain.NightComparison) error {
	cw := csv.NewWriter(w)
	prefixA := columnPrefix(labelA)
	prefixB := columnPrefix(labelB)
	header := []string{"night"}
	for _, metric := range []string{"total_sleep_min", "deep_min", "rem_min", "core_min", "awake_min"} {
		header = append(header, prefixA+"_"+metric, prefixB+"_"+metric)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write comparison header: %w", err)
	}
	for _, r := range rows {
		row := []string{
			r.Night.String(),
			formatMinutes(r.A.AsleepMin), formatMinutes(r.B.AsleepMin),
			formatMinutes(r.A.DeepMin), formatMinutes(r.B.DeepMin),
			formatMinutes(r.A.REMMin), formatMinutes(r.B.REMMin),
			formatMinutes(r.A.CoreMin), formatMinutes(r.B.CoreMin),
			formatMinutes(r.A.AwakeMin), formatMinutes(r.B.AwakeMin),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write comparison row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatMinutes(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(csvTimeLayout)
}

// columnPrefix turns a source label into a CSV-friendly identifier, so
// "Eight Sleep" becomes "eight_sleep".
func columnPrefix(label string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(label) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
