package adapters

import (
	"github.com/de-tools/health-atlas/pkg/models/api"
	"github.com/de-tools/health-atlas/pkg/models/domain"
)

func MapNightDomainToApi(n domain.NightMetrics) api.Night {
	return api.Night{
		Night:          n.Night.String(),
		Source:         n.Source,
		AsleepMin:      n.AsleepMin,
		CoreMin:        n.CoreMin,
		REMMin:         n.REMMin,
		DeepMin:        n.DeepMin,
		UnspecifiedMin: n.UnspecifiedMin,
		AwakeMin:       n.AwakeMin,
		InBedMin:       n.InBedMin,
		Awakenings:     n.Awakenings,
		Efficiency:     n.Efficiency,
		DeepPct:        n.DeepPct,
		REMPct:         n.REMPct,
		BedTime:        n.BedTime,
		WakeTime:       n.WakeTime,
		TimeInBedMin:   n.TimeInBedMin,
	}
}

func MapDayDomainToApi(d domain.DayActivity) api.Day {
	return api.Day{
		Day:            d.Day.String(),
		LowHREvents:    d.LowHREvents,
		LowHRMinutes:   d.LowHRMinutes,
		Workouts:       d.Workouts,
		WorkoutMinutes: d.WorkoutMinutes,
		WorkoutTypes:   append([]string{}, d.WorkoutTypes...),
		HasWorkout:     d.HasWorkout(),
	}
}

func MapSummaryDomainToApi(s domain.ExportSummary) api.Summary {
	return api.Summary{
		Period: MapTimePeriodDomainToApi(s.Period),
		Records: api.RecordCounts{
			HeartRate:    s.Records.HeartRate,
			LowHeartRate: s.Records.LowHeartRate,
			Sleep:        s.Records.Sleep,
			Workouts:     s.Records.Workouts,
		},
		Dropped: api.DroppedCounts{
			Malformed: s.Dropped.Malformed,
			Deduped:   s.Dropped.Deduped,
			Filtered:  s.Dropped.Filtered,
		},
	}
}

func MapComparisonDomainToApi(c *domain.SourceComparison) api.SourceComparison {
	comparison := api.SourceComparison{
		Period:  MapTimePeriodDomainToApi(c.Window),
		LabelA:  c.LabelA,
		LabelB:  c.LabelB,
		Nights:  c.Nights,
		Metrics: []api.SourceAgreement{},
	}

	for _, m := range c.Metrics {
		comparison.Metrics = append(comparison.Metrics, api.SourceAgreement{
			Metric:   m.Metric,
			MeanA:    m.MeanA,
			MeanB:    m.MeanB,
			MeanDiff: m.MeanDiff,
			R:        m.R,
		})
	}

	return comparison
}

func MapParamsDomainToApi(p domain.Params) api.Params {
	params := api.Params{
		CutoffDate:              p.CutoffDate.String(),
		LowHeartRateBPM:         p.LowHeartRateBPM,
		MinValidSleepMin:        p.MinValidSleepMin,
		WorkoutOutlierMin:       p.WorkoutOutlierMin,
		ChartClampMin:           p.ChartClampMin,
		WorkoutDayBoundaryHour:  p.WorkoutDayBoundaryHour,
		SleepNightBoundaryHour:  p.SleepNightBoundaryHour,
		HeartRateSourceContains: p.HeartRateSourceContains,
		SleepSources:            []api.SourceLabel{},
	}

	for _, s := range p.SleepSources {
		params.SleepSources = append(params.SleepSources, api.SourceLabel{
			Label:    s.Label,
			Contains: s.Contains,
		})
	}

	return params
}
