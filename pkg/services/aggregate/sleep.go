package aggregate

import (
	"sort"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/de-tools/health-atlas/pkg/services/bucket"
)

// SourceAll labels pooled-source rows in nightly aggregates.
const SourceAll = "all"

// NightlySleep groups sleep intervals into per-night metrics under the given
// rule. With bySource one row is produced per (night, source); otherwise all
// sources pool into a single row per night labeled SourceAll. Output order
// does not depend on input order.
func NightlySleep(intervals []domain.SleepStageInterval, rule bucket.Rule, bySource bool) ([]domain.NightMetrics, error) {
	if len(intervals) == 0 {
		return nil, domain.ErrNoData
	}

	type key struct {
		night  domain.Date
		source string
	}
	groups := make(map[key][]domain.SleepStageInterval)
	for _, iv := range intervals {
		src := SourceAll
		if bySource {
			src = iv.Source
		}
		k := key{night: rule.Assign(iv.Start), source: src}
		groups[k] = append(groups[k], iv)
	}

	out := make([]domain.NightMetrics, 0, len(groups))
	for k, ivs := range groups {
		out = append(out, nightMetrics(k.night, k.source, ivs))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Night != out[j].Night {
			return out[i].Night.Before(out[j].Night)
		}
		return out[i].Source < out[j].Source
	})
	return out, nil
}

func nightMetrics(night domain.Date, source string, ivs []domain.SleepStageInterval) domain.NightMetrics {
	m := domain.NightMetrics{Night: night, Source: source}
	for _, iv := range ivs {
		mins := iv.Minutes()
		switch iv.Stage {
		case domain.StageInBed:
			m.InBedMin += mins
		case domain.StageAsleepCore:
			m.CoreMin += mins
		case domain.StageAsleepREM:
			m.REMMin += mins
		case domain.StageAsleepDeep:
			m.DeepMin += mins
		case domain.StageAsleepUnspecified:
			m.UnspecifiedMin += mins
		case domain.StageAwake:
			m.AwakeMin += mins
			m.Awakenings++
		}
		if m.BedTime.IsZero() || iv.Start.Before(m.BedTime) {
			m.BedTime = iv.Start
		}
		if iv.End.After(m.WakeTime) {
			m.WakeTime = iv.End
		}
	}

	m.AsleepMin = m.CoreMin + m.REMMin + m.DeepMin + m.UnspecifiedMin
	if m.InBedMin > 0 {
		m.Efficiency = m.AsleepMin / m.InBedMin * 100
	}
	if m.AsleepMin > 0 {
		m.DeepPct = m.DeepMin / m.AsleepMin * 100
		m.REMPct = m.REMMin / m.AsleepMin * 100
	}
	m.TimeInBedMin = m.WakeTime.Sub(m.BedTime).Minutes()
	return m
}
