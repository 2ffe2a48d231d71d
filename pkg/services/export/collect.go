package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// CollectStats counts what extraction kept and dropped.
type CollectStats struct {
	HeartRate    int
	LowHeartRate int
	Sleep        int
	Workouts     int
	Malformed    int // recognized records with missing or unparseable fields
	Deduped      int // duplicate sleep rows, one vendor re-exports with fresh creation dates
	Filtered     int // before the window cutoff or from an unwanted source
}

// Kept is the total number of records that made it into the set.
func (s CollectStats) Kept() int {
	return s.HeartRate + s.LowHeartRate + s.Sleep + s.Workouts
}

// Collect drains a source into a record set. It applies the window cutoff to
// everything, the source substring filter to heart rate samples, label
// canonicalization to sleep records (unmatched ones are dropped), and
// deduplicates sleep rows on (source, start, end, stage). Each slice of the
// result comes back sorted by start time.
func Collect(ctx context.Context, src Source, p domain.Params) (*domain.RecordSet, CollectStats, error) {
	set := &domain.RecordSet{}
	stats := CollectStats{}

	cutoff := p.CutoffDate.Time()
	type sleepKey struct {
		source     string
		start, end int64
		stage      domain.SleepStage
	}
	seen := make(map[sleepKey]struct{})

	for {
		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("extraction failed: %w", err)
		}
		if rec.StartTime().Before(cutoff) {
			stats.Filtered++
			continue
		}

		switch r := rec.(type) {
		case domain.HeartRateSample:
			if p.HeartRateSourceContains != "" && !strings.Contains(r.Source, p.HeartRateSourceContains) {
				stats.Filtered++
				continue
			}
			set.HeartRate = append(set.HeartRate, r)
			stats.HeartRate++

		case domain.LowHeartRateEvent:
			set.LowHeartRate = append(set.LowHeartRate, r)
			stats.LowHeartRate++

		case domain.SleepStageInterval:
			label, ok := p.CanonicalSleepSource(r.Source)
			if !ok {
				stats.Filtered++
				continue
			}
			r.Source = label
			k := sleepKey{source: label, start: r.Start.Unix(), end: r.End.Unix(), stage: r.Stage}
			if _, dup := seen[k]; dup {
				stats.Deduped++
				continue
			}
			seen[k] = struct{}{}
			set.Sleep = append(set.Sleep, r)
			stats.Sleep++

		case domain.Workout:
			set.Workouts = append(set.Workouts, r)
			stats.Workouts++
		}
	}

	if m, ok := src.(interface{ Malformed() int }); ok {
		stats.Malformed = m.Malformed()
	}
	sortSet(set)

	zerolog.Ctx(ctx).Info().
		Int("heart_rate", stats.HeartRate).
		Int("low_heart_rate", stats.LowHeartRate).
		Int("sleep", stats.Sleep).
		Int("workouts", stats.Workouts).
		Int("malformed", stats.Malformed).
		Int("deduped", stats.Deduped).
		Int("filtered", stats.Filtered).
		Msg("export collected")

	return set, stats, nil
}

// CollectFile is the common open-drain-close path over an export file.
func CollectFile(ctx context.Context, path string, p domain.Params) (*domain.RecordSet, CollectStats, error) {
	src, err := NewXMLSource(path)
	if err != nil {
		return nil, CollectStats{}, err
	}
	defer src.Close()
	return Collect(ctx, src, p)
}

func sortSet(set *domain.RecordSet) {
	sort.Slice(set.HeartRate, func(i, j int) bool {
		return set.HeartRate[i].Start.Before(set.HeartRate[j].Start)
	})
	sort.Slice(set.LowHeartRate, func(i, j int) bool {
		return set.LowHeartRate[i].Start.Before(set.LowHeartRate[j].Start)
	})
	sort.Slice(set.Sleep, func(i, j int) bool {
		return set.Sleep[i].Start.Before(set.Sleep[j].Start)
	})
	sort.Slice(set.Workouts, func(i, j int) bool {
		return set.Workouts[i].Start.Before(set.Workouts[j].Start)
	})
}
