package aggregate

import (
	"sort"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/de-tools/health-atlas/pkg/services/bucket"
	"golang.org/x/exp/maps"
)

// Range returns the observed day span of events and workouts, events bucketed
// under eventRule and workouts on their own calendar day.
func Range(events []domain.LowHeartRateEvent, workouts []domain.Workout, eventRule bucket.Rule) (domain.Date, domain.Date, error) {
	var first, last domain.Date
	seen := false
	note := func(d domain.Date) {
		if !seen {
			first, last, seen = d, d, true
			return
		}
		if d.Before(first) {
			first = d
		}
		if last.Before(d) {
			last = d
		}
	}

	for _, e := range events {
		note(eventRule.Assign(e.Start))
	}
	cal := bucket.CalendarDay()
	for _, w := range workouts {
		note(cal.Assign(w.Start))
	}
	if !seen {
		return domain.Date{}, domain.Date{}, domain.ErrNoData
	}
	return first, last, nil
}

// Days builds the gap-free daily activity series over [start, end] inclusive.
// Every day in the range gets a row; days without records carry zeros. Low
// heart rate events bucket under eventRule, workouts count on their own
// calendar day, and workout rows at or above the outlier cutoff are excluded
// entirely.
func Days(events []domain.LowHeartRateEvent, workouts []domain.Workout, eventRule bucket.Rule, start, end domain.Date, p domain.Params) ([]domain.DayActivity, error) {
	if end.Before(start) {
		return nil, domain.ErrNoData
	}
	if len(events) == 0 && len(workouts) == 0 {
		return nil, domain.ErrNoData
	}

	evCount := make(map[domain.Date]int)
	evMinutes := make(map[domain.Date]float64)
	for _, e := range events {
		d := eventRule.Assign(e.Start)
		evCount[d]++
		evMinutes[d] += e.Minutes()
	}

	cal := bucket.CalendarDay()
	woCount := make(map[domain.Date]int)
	woMinutes := make(map[domain.Date]float64)
	woTypes := make(map[domain.Date]map[string]struct{})
	for _, w := range workouts {
		if p.WorkoutOutlierMin > 0 && w.DurationMin >= p.WorkoutOutlierMin {
			continue
		}
		d := cal.Assign(w.Start)
		woCount[d]++
		woMinutes[d] += w.DurationMin
		if woTypes[d] == nil {
			woTypes[d] = make(map[string]struct{})
		}
		woTypes[d][w.ActivityType] = struct{}{}
	}

	out := make([]domain.DayActivity, 0, start.DaysUntil(end)+1)
	for d := start; !end.Before(d); d = d.AddDays(1) {
		row := domain.DayActivity{
			Day:            d,
			LowHREvents:    evCount[d],
			LowHRMinutes:   evMinutes[d],
			Workouts:       woCount[d],
			WorkoutMinutes: woMinutes[d],
		}
		if types := woTypes[d]; len(types) > 0 {
			row.WorkoutTypes = maps.Keys(types)
			sort.Strings(row.WorkoutTypes)
		}
		out = append(out, row)
	}
	return out, nil
}

// FlagSamples annotates heart rate samples against the low threshold.
func FlagSamples(samples []domain.HeartRateSample, threshold float64) []domain.FlaggedSample {
	out := make([]domain.FlaggedSample, 0, len(samples))
	for _, s := range samples {
		out = append(out, domain.FlaggedSample{HeartRateSample: s, Low: s.BPM < threshold})
	}
	return out
}
