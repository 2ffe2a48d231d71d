package analysis

import (
	"context"
	"fmt"
	"sort"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/de-tools/health-atlas/pkg/services/aggregate"
	"github.com/de-tools/health-atlas/pkg/services/bucket"
	"github.com/de-tools/health-atlas/pkg/services/stats"
	"github.com/rs/zerolog"
	"golang.org/x/exp/maps"
)

// WorkoutAnalyzer compares low heart rate activity between workout days and
// rest days.
type WorkoutAnalyzer struct {
	params domain.Params
}

func NewWorkoutAnalyzer(params domain.Params) (Analyzer, error) {
	return &WorkoutAnalyzer{params: params}, nil
}

func (a *WorkoutAnalyzer) Name() string { return "workouts" }

func (a *WorkoutAnalyzer) Run(ctx context.Context, set *domain.RecordSet) (*domain.Report, error) {
	effect, err := a.Effect(ctx, set)
	if err != nil {
		return nil, err
	}
	return workoutReport(effect), nil
}

// Effect splits the daily series into workout and rest days on low heart
// rate event counts and tests whether the two groups differ.
func (a *WorkoutAnalyzer) Effect(ctx context.Context, set *domain.RecordSet) (*domain.WorkoutEffect, error) {
	rule := bucket.WorkoutDay(a.params)
	start, end, err := aggregate.Range(set.LowHeartRate, set.Workouts, rule)
	if err != nil {
		return nil, err
	}
	days, err := aggregate.Days(set.LowHeartRate, set.Workouts, rule, start, end, a.params)
	if err != nil {
		return nil, err
	}

	var workoutVals, restVals []float64
	for _, d := range days {
		v := float64(d.LowHREvents)
		if d.HasWorkout() {
			workoutVals = append(workoutVals, v)
		} else {
			restVals = append(restVals, v)
		}
	}

	workoutDays, err := stats.Describe(workoutVals)
	if err != nil {
		return nil, fmt.Errorf("no workout days in the window: %w", err)
	}
	restDays, err := stats.Describe(restVals)
	if err != nil {
		return nil, fmt.Errorf("no rest days in the window: %w", err)
	}

	test, err := stats.MannWhitney(workoutVals, restVals)
	if err != nil {
		return nil, err
	}
	effect := stats.RankBiserial(test.U, float64(len(workoutVals)), float64(len(restVals)))

	zerolog.Ctx(ctx).Debug().
		Int("workout_days", workoutDays.Count).
		Int("rest_days", restDays.Count).
		Float64("p", test.P).
		Float64("effect", effect).
		Msg("workout effect computed")

	return &domain.WorkoutEffect{
		Window:       window(start, end),
		WorkoutDays:  workoutDays,
		RestDays:     restDays,
		U:            test.U,
		PValue:       test.P,
		Significance: stats.SignificanceMarker(test.P),
		Effect:       effect,
		EffectBand:   stats.EffectSizeBand(effect),
		MeanDiff:     workoutDays.Mean - restDays.Mean,
		ByType:       typeBreakdown(days),
	}, nil
}

func typeBreakdown(days []domain.DayActivity) []domain.WorkoutTypeEffect {
	perType := make(map[string][]domain.DayActivity)
	for _, d := range days {
		for _, name := range d.WorkoutTypes {
			perType[name] = append(perType[name], d)
		}
	}

	names := maps.Keys(perType)
	sort.Strings(names)

	out := make([]domain.WorkoutTypeEffect, 0, len(names))
	for _, name := range names {
		rows := perType[name]
		sum, withEvents := 0.0, 0
		for _, d := range rows {
			sum += float64(d.LowHREvents)
			if d.LowHREvents > 0 {
				withEvents++
			}
		}
		out = append(out, domain.WorkoutTypeEffect{
			ActivityType:  name,
			Days:          len(rows),
			MeanEvents:    sum / float64(len(rows)),
			EventDayShare: float64(withEvents) / float64(len(rows)),
		})
	}
	return out
}

func workoutReport(e *domain.WorkoutEffect) *domain.Report {
	direction := "more"
	if e.MeanDiff < 0 {
		direction = "fewer"
	}

	comparison := domain.ReportSection{
		Title: "Workout vs Rest Days",
		Summary: map[string]interface{}{
			"Workout Days": e.WorkoutDays.Count,
			"Rest Days":    e.RestDays.Count,
			"Direction":    fmt.Sprintf("workout days have %s low heart rate events", direction),
		},
		Details: []domain.ReportDetail{
			{Name: "Workout Day Mean", Value: fmt.Sprintf("%.2f", e.WorkoutDays.Mean), Unit: "events", Description: "Mean low heart rate events on workout days"},
			{Name: "Workout Day Median", Value: fmt.Sprintf("%.2f", e.WorkoutDays.Median), Unit: "events", Description: "Median low heart rate events on workout days"},
			{Name: "Rest Day Mean", Value: fmt.Sprintf("%.2f", e.RestDays.Mean), Unit: "events", Description: "Mean low heart rate events on rest days"},
			{Name: "Rest Day Median", Value: fmt.Sprintf("%.2f", e.RestDays.Median), Unit: "events", Description: "Median low heart rate events on rest days"},
			{Name: "Mean Difference", Value: fmt.Sprintf("%+.2f", e.MeanDiff), Unit: "events", Description: "Workout day mean minus rest day mean"},
		},
	}

	test := domain.ReportSection{
		Title: "Mann-Whitney U Test",
		Summary: map[string]interface{}{
			"Interpretation": fmt.Sprintf("%s effect %s", e.EffectBand, e.Significance),
		},
		Details: []domain.ReportDetail{
			{Name: "U Statistic", Value: fmt.Sprintf("%.1f", e.U), Unit: "", Description: "U of the workout day group"},
			{Name: "P-Value", Value: fmt.Sprintf("%.4f", e.PValue), Unit: "", Description: "Two-sided, normal approximation " + e.Significance},
			{Name: "Effect Size", Value: fmt.Sprintf("%.3f", e.Effect), Unit: "", Description: fmt.Sprintf("Rank-biserial correlation (%s)", e.EffectBand)},
		},
	}

	byType := domain.ReportSection{
		Title:   "By Workout Type",
		Summary: map[string]interface{}{"Types": len(e.ByType)},
	}
	for _, t := range e.ByType {
		byType.Details = append(byType.Details, domain.ReportDetail{
			Name:        t.ActivityType,
			Value:       fmt.Sprintf("%.2f", t.MeanEvents),
			Unit:        "events/day",
			Description: fmt.Sprintf("%d days, %.0f%% with at least one event", t.Days, t.EventDayShare*100),
		})
	}

	return &domain.Report{
		Title:    "Workout Effect on Low Heart Rate Events",
		Period:   e.Window,
		Sections: []domain.ReportSection{comparison, test, byType},
	}
}
