package analysis

import (
	"context"
	"fmt"
	"sort"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/de-tools/health-atlas/pkg/services/stats"
	"golang.org/x/exp/maps"
)

// EventsAnalyzer profiles low heart rate events on their own: durations,
// clock-hour spread and monthly counts.
type EventsAnalyzer struct {
	params domain.Params
}

func NewEventsAnalyzer(params domain.Params) (Analyzer, error) {
	return &EventsAnalyzer{params: params}, nil
}

func (a *EventsAnalyzer) Name() string { return "events" }

func (a *EventsAnalyzer) Run(ctx context.Context, set *domain.RecordSet) (*domain.Report, error) {
	profile, err := a.Profile(ctx, set)
	if err != nil {
		return nil, err
	}
	return eventsReport(profile), nil
}

// Profile summarizes every low heart rate event in the set.
func (a *EventsAnalyzer) Profile(_ context.Context, set *domain.RecordSet) (*domain.EventProfile, error) {
	events := set.LowHeartRate
	if len(events) == 0 {
		return nil, domain.ErrNoData
	}

	durations := make([]float64, len(events))
	byHour := make(map[int]int)
	byMonth := make(map[string]int)
	bySource := make(map[string]int)
	first := domain.DateOf(events[0].Start)
	last := first

	for i, e := range events {
		durations[i] = e.Minutes()
		byHour[e.Start.Hour()]++
		byMonth[e.Start.Format("2006-01")]++
		bySource[e.Source]++

		d := domain.DateOf(e.Start)
		if d.Before(first) {
			first = d
		}
		if last.Before(d) {
			last = d
		}
	}

	duration, err := stats.Describe(durations)
	if err != nil {
		return nil, err
	}

	return &domain.EventProfile{
		Window:   window(first, last),
		Total:    len(events),
		Duration: duration,
		ByHour:   byHour,
		ByMonth:  byMonth,
		BySource: bySource,
	}, nil
}

func eventsReport(p *domain.EventProfile) *domain.Report {
	durations := domain.ReportSection{
		Title: "Event Durations",
		Summary: map[string]interface{}{
			"Total Events": p.Total,
		},
		Details: []domain.ReportDetail{
			{Name: "Mean", Value: fmt.Sprintf("%.2f", p.Duration.Mean), Unit: "min", Description: "Mean event duration"},
			{Name: "Median", Value: fmt.Sprintf("%.2f", p.Duration.Median), Unit: "min", Description: "Median event duration"},
			{Name: "Shortest", Value: fmt.Sprintf("%.2f", p.Duration.Min), Unit: "min", Description: "Shortest event"},
			{Name: "Longest", Value: fmt.Sprintf("%.2f", p.Duration.Max), Unit: "min", Description: "Longest event"},
		},
	}

	clock := domain.ReportSection{
		Title:   "Time of Day",
		Summary: map[string]interface{}{"Distinct Hours": len(p.ByHour)},
	}
	hours := maps.Keys(p.ByHour)
	sort.Ints(hours)
	for _, h := range hours {
		clock.Details = append(clock.Details, domain.ReportDetail{
			Name:        fmt.Sprintf("%02d:00", h),
			Value:       p.ByHour[h],
			Unit:        "events",
			Description: "",
		})
	}

	monthly := domain.ReportSection{
		Title:   "By Month",
		Summary: map[string]interface{}{"Months": len(p.ByMonth)},
	}
	months := maps.Keys(p.ByMonth)
	sort.Strings(months)
	for _, m := range months {
		monthly.Details = append(monthly.Details, domain.ReportDetail{
			Name:        m,
			Value:       p.ByMonth[m],
			Unit:        "events",
			Description: "",
		})
	}

	return &domain.Report{
		Title:    "Low Heart Rate Event Profile",
		Period:   p.Window,
		Sections: []domain.ReportSection{durations, clock, monthly},
	}
}
