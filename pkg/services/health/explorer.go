package health

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/de-tools/health-atlas/pkg/services/aggregate"
	"github.com/de-tools/health-atlas/pkg/services/analysis"
	"github.com/de-tools/health-atlas/pkg/services/bucket"
	"github.com/de-tools/health-atlas/pkg/services/export"
)

// ErrUnknownSource marks night queries for a sleep source that is not
// configured.
var ErrUnknownSource = errors.New("unknown sleep source")

// Explorer serves the tables and analyses derived from one extraction pass.
// Implementations hold the extracted records in memory; every method is a
// pure computation over them.
type Explorer interface {
	Summary(ctx context.Context) domain.ExportSummary
	Days(ctx context.Context) ([]domain.DayActivity, error)
	Nights(ctx context.Context, source string) ([]domain.NightMetrics, error)
	Comparison(ctx context.Context) (*domain.SourceComparison, error)
	ListAnalyses(ctx context.Context) []string
	RunAnalysis(ctx context.Context, name string) (*domain.Report, error)
	Params() domain.Params
}

type explorer struct {
	set      *domain.RecordSet
	stats    export.CollectStats
	params   domain.Params
	registry analysis.Registry
}

// NewExplorer wraps one extracted record set.
func NewExplorer(
	set *domain.RecordSet,
	stats export.CollectStats,
	params domain.Params,
	registry analysis.Registry,
) Explorer {
	return &explorer{
		set:      set,
		stats:    stats,
		params:   params,
		registry: registry,
	}
}

func (e *explorer) Summary(_ context.Context) domain.ExportSummary {
	summary := domain.ExportSummary{
		Records: domain.RecordCounts{
			HeartRate:    len(e.set.HeartRate),
			LowHeartRate: len(e.set.LowHeartRate),
			Sleep:        len(e.set.Sleep),
			Workouts:     len(e.set.Workouts),
		},
		Dropped: domain.DropCounts{
			Malformed: e.stats.Malformed,
			Deduped:   e.stats.Deduped,
			Filtered:  e.stats.Filtered,
		},
	}

	var first, last time.Time
	span := func(start, end time.Time) {
		if first.IsZero() || start.Before(first) {
			first = start
		}
		if end.After(last) {
			last = end
		}
	}
	for _, s := range e.set.HeartRate {
		span(s.Start, s.Start)
	}
	for _, ev := range e.set.LowHeartRate {
		span(ev.Start, ev.End)
	}
	for _, iv := range e.set.Sleep {
		span(iv.Start, iv.End)
	}
	for _, w := range e.set.Workouts {
		span(w.Start, w.End)
	}
	if !first.IsZero() {
		summary.Period = domain.TimePeriod{
			Start:    first,
			End:      last,
			Duration: domain.DateOf(first).DaysUntil(domain.DateOf(last)) + 1,
		}
	}
	return summary
}

func (e *explorer) Days(_ context.Context) ([]domain.DayActivity, error) {
	rule := bucket.WorkoutDay(e.params)
	start, end, err := aggregate.Range(e.set.LowHeartRate, e.set.Workouts, rule)
	if err != nil {
		return nil, err
	}
	return aggregate.Days(e.set.LowHeartRate, e.set.Workouts, rule, start, end, e.params)
}

func (e *explorer) Nights(_ context.Context, source string) ([]domain.NightMetrics, error) {
	rule := bucket.SleepNight(e.params)
	if source == "" || source == aggregate.SourceAll {
		return aggregate.NightlySleep(e.set.Sleep, rule, false)
	}

	known := false
	for _, s := range e.params.SleepSources {
		if s.Label == source {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("%w %q", ErrUnknownSource, source)
	}

	nights, err := aggregate.NightlySleep(e.set.Sleep, rule, true)
	if err != nil {
		return nil, err
	}
	matched := nights[:0:0]
	for _, n := range nights {
		if n.Source == source {
			matched = append(matched, n)
		}
	}
	if len(matched) == 0 {
		return nil, domain.ErrNoData
	}
	return matched, nil
}

func (e *explorer) Comparison(ctx context.Context) (*domain.SourceComparison, error) {
	an, err := analysis.NewSourceAnalyzer(e.params)
	if err != nil {
		return nil, err
	}
	return an.(*analysis.SourceAnalyzer).Comparison(ctx, e.set)
}

func (e *explorer) ListAnalyses(_ context.Context) []string {
	return e.registry.ListAnalyses()
}

func (e *explorer) RunAnalysis(ctx context.Context, name string) (*domain.Report, error) {
	an, err := e.registry.Create(name, e.params)
	if err != nil {
		return nil, err
	}
	return an.Run(ctx, e.set)
}

func (e *explorer) Params() domain.Params {
	return e.params
}
