package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/de-tools/health-atlas/pkg/services/aggregate"
	"github.com/de-tools/health-atlas/pkg/services/bucket"
	"github.com/de-tools/health-atlas/pkg/services/stats"
	"github.com/rs/zerolog"
)

// SleepAnalyzer correlates nightly sleep quality with the presence of low
// heart rate events on the same night.
type SleepAnalyzer struct {
	params domain.Params
}

func NewSleepAnalyzer(params domain.Params) (Analyzer, error) {
	return &SleepAnalyzer{params: params}, nil
}

func (a *SleepAnalyzer) Name() string { return "sleep" }

func (a *SleepAnalyzer) Run(ctx context.Context, set *domain.RecordSet) (*domain.Report, error) {
	corr, err := a.Correlation(ctx, set)
	if err != nil {
		return nil, err
	}
	return sleepReport(corr), nil
}

var sleepMetrics = []struct {
	name  string
	value func(domain.NightMetrics) float64
}{
	{"total_sleep_min", func(n domain.NightMetrics) float64 { return n.AsleepMin }},
	{"deep_min", func(n domain.NightMetrics) float64 { return n.DeepMin }},
	{"rem_min", func(n domain.NightMetrics) float64 { return n.REMMin }},
	{"efficiency", func(n domain.NightMetrics) float64 { return n.Efficiency }},
	{"deep_pct", func(n domain.NightMetrics) float64 { return n.DeepPct }},
	{"rem_pct", func(n domain.NightMetrics) float64 { return n.REMPct }},
	{"awakenings", func(n domain.NightMetrics) float64 { return float64(n.Awakenings) }},
	{"awake_min", func(n domain.NightMetrics) float64 { return n.AwakeMin }},
}

// Correlation computes a point-biserial correlation per sleep metric against
// a binary indicator: did the night produce at least one low heart rate
// event. Nights with too little recorded sleep are excluded up front.
func (a *SleepAnalyzer) Correlation(ctx context.Context, set *domain.RecordSet) (*domain.SleepCorrelation, error) {
	nights, err := aggregate.NightlySleep(set.Sleep, bucket.SleepNight(a.params), false)
	if err != nil {
		return nil, err
	}

	valid := nights[:0:0]
	for _, n := range nights {
		if n.AsleepMin > a.params.MinValidSleepMin {
			valid = append(valid, n)
		}
	}
	if len(valid) == 0 {
		return nil, domain.ErrNoData
	}

	// Events associate with days under the workout rule; a 3am event lands
	// on the previous calendar day, which is the same date the sleep rule
	// assigns to that night.
	eventRule := bucket.WorkoutDay(a.params)
	eventsByDay := make(map[domain.Date]int)
	for _, e := range set.LowHeartRate {
		eventsByDay[eventRule.Assign(e.Start)]++
	}

	indicator := make([]bool, len(valid))
	withEvents := 0
	for i, n := range valid {
		if eventsByDay[n.Night] > 0 {
			indicator[i] = true
			withEvents++
		}
	}

	res := &domain.SleepCorrelation{
		Window:           window(valid[0].Night, valid[len(valid)-1].Night),
		ValidNights:      len(valid),
		NightsWithEvents: withEvents,
	}

	for _, m := range sleepMetrics {
		values := make([]float64, len(valid))
		for i, n := range valid {
			values[i] = m.value(n)
		}

		corr, err := stats.PointBiserial(indicator, values)
		if errors.Is(err, domain.ErrNoData) {
			// Metric without variance, nothing to correlate.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("metric %s: %w", m.name, err)
		}

		row := domain.MetricCorrelation{
			Metric:       m.name,
			R:            corr.R,
			PValue:       corr.P,
			Band:         stats.CorrelationBand(corr.R),
			Significance: stats.SignificanceMarker(corr.P),
		}
		row.MeanWith, row.MeanWithout = groupMeans(indicator, values)
		if row.MeanWithout != 0 {
			row.PctDiff = (row.MeanWith - row.MeanWithout) / row.MeanWithout * 100
		}
		res.Metrics = append(res.Metrics, row)
	}
	if len(res.Metrics) == 0 {
		return nil, domain.ErrNoData
	}

	zerolog.Ctx(ctx).Debug().
		Int("valid_nights", res.ValidNights).
		Int("nights_with_events", res.NightsWithEvents).
		Int("metrics", len(res.Metrics)).
		Msg("sleep correlation computed")

	return res, nil
}

func groupMeans(indicator []bool, values []float64) (with, without float64) {
	var withSum, withoutSum float64
	var withN, withoutN int
	for i, v := range values {
		if indicator[i] {
			withSum += v
			withN++
		} else {
			withoutSum += v
			withoutN++
		}
	}
	if withN > 0 {
		with = withSum / float64(withN)
	}
	if withoutN > 0 {
		without = withoutSum / float64(withoutN)
	}
	return with, without
}

func sleepReport(c *domain.SleepCorrelation) *domain.Report {
	correlations := domain.ReportSection{
		Title: "Sleep Metrics vs Low Heart Rate Events",
		Summary: map[string]interface{}{
			"Valid Nights":       c.ValidNights,
			"Nights With Events": c.NightsWithEvents,
		},
	}
	for _, m := range c.Metrics {
		correlations.Details = append(correlations.Details, domain.ReportDetail{
			Name:        m.Metric,
			Value:       fmt.Sprintf("r=%+.3f p=%.4f %s", m.R, m.PValue, m.Significance),
			Unit:        "",
			Description: fmt.Sprintf("%s correlation", m.Band),
		})
	}

	means := domain.ReportSection{
		Title: "Group Means",
		Summary: map[string]interface{}{
			"Groups": "nights with vs without low heart rate events",
		},
	}
	for _, m := range c.Metrics {
		means.Details = append(means.Details, domain.ReportDetail{
			Name:        m.Metric,
			Value:       fmt.Sprintf("%.1f vs %.1f", m.MeanWith, m.MeanWithout),
			Unit:        "",
			Description: fmt.Sprintf("%+.1f%% on event nights", m.PctDiff),
		})
	}

	return &domain.Report{
		Title:    "Sleep Quality and Low Heart Rate Events",
		Period:   c.Window,
		Sections: []domain.ReportSection{correlations, means},
	}
}
