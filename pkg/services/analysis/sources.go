package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/de-tools/health-atlas/pkg/services/aggregate"
	"github.com/de-tools/health-atlas/pkg/services/align"
	"github.com/de-tools/health-atlas/pkg/services/bucket"
	"github.com/de-tools/health-atlas/pkg/services/stats"
	"github.com/rs/zerolog"
)

// SourceAnalyzer compares the first two configured sleep sources night by
// night: do two devices watching the same sleeper agree?
type SourceAnalyzer struct {
	params domain.Params
}

func NewSourceAnalyzer(params domain.Params) (Analyzer, error) {
	if len(params.SleepSources) < 2 {
		return nil, fmt.Errorf("source comparison needs two configured sleep sources, have %d", len(params.SleepSources))
	}
	return &SourceAnalyzer{params: params}, nil
}

func (a *SourceAnalyzer) Name() string { return "sources" }

func (a *SourceAnalyzer) Run(ctx context.Context, set *domain.RecordSet) (*domain.Report, error) {
	cmp, err := a.Comparison(ctx, set)
	if err != nil {
		return nil, err
	}
	return sourceReport(cmp), nil
}

var comparisonMetrics = []struct {
	name  string
	value func(domain.NightMetrics) float64
}{
	{"total_sleep_min", func(n domain.NightMetrics) float64 { return n.AsleepMin }},
	{"deep_min", func(n domain.NightMetrics) float64 { return n.DeepMin }},
	{"rem_min", func(n domain.NightMetrics) float64 { return n.REMMin }},
	{"core_min", func(n domain.NightMetrics) float64 { return n.CoreMin }},
	{"awake_min", func(n domain.NightMetrics) float64 { return n.AwakeMin }},
}

// Comparison inner-joins the two sources on night and measures per-metric
// agreement. Nights recorded by only one source drop out; surviving values
// pass through exactly as each side reported them.
func (a *SourceAnalyzer) Comparison(ctx context.Context, set *domain.RecordSet) (*domain.SourceComparison, error) {
	nights, err := aggregate.NightlySleep(set.Sleep, bucket.SleepNight(a.params), true)
	if err != nil {
		return nil, err
	}

	labelA := a.params.SleepSources[0].Label
	labelB := a.params.SleepSources[1].Label
	var as, bs []domain.NightMetrics
	for _, n := range nights {
		switch n.Source {
		case labelA:
			as = append(as, n)
		case labelB:
			bs = append(bs, n)
		}
	}

	joined, err := align.Nights(as, bs)
	if err != nil {
		return nil, err
	}

	res := &domain.SourceComparison{
		Window: window(joined[0].Night, joined[len(joined)-1].Night),
		LabelA: labelA,
		LabelB: labelB,
		Nights: len(joined),
	}

	for _, m := range comparisonMetrics {
		xs := make([]float64, len(joined))
		ys := make([]float64, len(joined))
		var sumA, sumB float64
		for i, c := range joined {
			xs[i] = m.value(c.A)
			ys[i] = m.value(c.B)
			sumA += xs[i]
			sumB += ys[i]
		}

		row := domain.SourceAgreement{
			Metric: m.name,
			MeanA:  sumA / float64(len(joined)),
			MeanB:  sumB / float64(len(joined)),
		}
		row.MeanDiff = row.MeanA - row.MeanB

		r, err := stats.Pearson(xs, ys)
		switch {
		case err == nil:
			row.R = &r
		case errors.Is(err, domain.ErrNoData):
			// Degenerate series, leave R unset.
		default:
			return nil, fmt.Errorf("metric %s: %w", m.name, err)
		}
		res.Metrics = append(res.Metrics, row)
	}

	zerolog.Ctx(ctx).Debug().
		Str("source_a", labelA).
		Str("source_b", labelB).
		Int("shared_nights", res.Nights).
		Msg("source comparison computed")

	return res, nil
}

func sourceReport(c *domain.SourceComparison) *domain.Report {
	section := domain.ReportSection{
		Title: fmt.Sprintf("%s vs %s", c.LabelA, c.LabelB),
		Summary: map[string]interface{}{
			"Shared Nights": c.Nights,
		},
	}
	for _, m := range c.Metrics {
		r := "r=n/a"
		if m.R != nil {
			r = fmt.Sprintf("r=%+.3f", *m.R)
		}
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        m.Metric,
			Value:       fmt.Sprintf("%.1f vs %.1f", m.MeanA, m.MeanB),
			Unit:        "min",
			Description: fmt.Sprintf("mean difference %+.1f, %s", m.MeanDiff, r),
		})
	}

	return &domain.Report{
		Title:    "Sleep Source Comparison",
		Period:   c.Window,
		Sections: []domain.ReportSection{section},
	}
}
