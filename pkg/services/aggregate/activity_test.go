package aggregate

import (
	"testing"
	"time"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/de-tools/health-atlas/pkg/services/bucket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventAt(t time.Time, minutes float64) domain.LowHeartRateEvent {
	return domain.LowHeartRateEvent{
		Start:  t,
		End:    t.Add(time.Duration(minutes * float64(time.Minute))),
		Source: "Apple Watch",
	}
}

func workoutAt(t time.Time, minutes float64, activity string) domain.Workout {
	return domain.Workout{
		Start:        t,
		End:          t.Add(time.Duration(minutes * float64(time.Minute))),
		Source:       "Apple Watch",
		ActivityType: activity,
		DurationMin:  minutes,
	}
}

func TestDays_ZeroFillsWholeRange(t *testing.T) {
	p := domain.DefaultParams()
	start := domain.Date{Year: 2025, Month: time.August, Day: 1}
	end := domain.Date{Year: 2025, Month: time.August, Day: 7}

	days, err := Days(
		[]domain.LowHeartRateEvent{
			eventAt(time.Date(2025, time.August, 3, 12, 0, 0, 0, time.Local), 2),
		},
		[]domain.Workout{
			workoutAt(time.Date(2025, time.August, 5, 14, 0, 0, 0, time.Local), 45, "Running"),
		},
		bucket.WorkoutDay(p), start, end, p,
	)

	require.NoError(t, err)
	require.Len(t, days, 7)
	for i, row := range days {
		assert.Equal(t, start.AddDays(i), row.Day)
	}
	assert.Equal(t, 1, days[2].LowHREvents)
	assert.Equal(t, 1, days[4].Workouts)
	assert.Zero(t, days[0].LowHREvents)
	assert.Zero(t, days[0].Workouts)
	assert.Zero(t, days[6].LowHRMinutes)
}

func TestDays_EarlyMorningEventCountsTowardPreviousDay(t *testing.T) {
	// A workout at 2pm and a pulse dip at 3am the following morning land on
	// the same row.
	p := domain.DefaultParams()
	day := domain.Date{Year: 2025, Month: time.August, Day: 1}

	days, err := Days(
		[]domain.LowHeartRateEvent{
			eventAt(time.Date(2025, time.August, 2, 3, 0, 0, 0, time.Local), 1.5),
		},
		[]domain.Workout{
			workoutAt(time.Date(2025, time.August, 1, 14, 0, 0, 0, time.Local), 60, "Running"),
		},
		bucket.WorkoutDay(p), day, day, p,
	)

	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, 1, days[0].LowHREvents)
	assert.InDelta(t, 1.5, days[0].LowHRMinutes, 1e-9)
	assert.Equal(t, 1, days[0].Workouts)
	assert.True(t, days[0].HasWorkout())
}

func TestDays_OutlierWorkoutsExcluded(t *testing.T) {
	p := domain.DefaultParams()
	day := domain.Date{Year: 2025, Month: time.August, Day: 1}
	noon := time.Date(2025, time.August, 1, 12, 0, 0, 0, time.Local)

	days, err := Days(nil,
		[]domain.Workout{
			workoutAt(noon, 500, "Walking"),
			workoutAt(noon.Add(6*time.Hour), 45, "Running"),
		},
		bucket.WorkoutDay(p), day, day, p,
	)

	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, 1, days[0].Workouts)
	assert.InDelta(t, 45, days[0].WorkoutMinutes, 1e-9)
	assert.Equal(t, []string{"Running"}, days[0].WorkoutTypes)
}

func TestDays_WorkoutTypesDistinctAndSorted(t *testing.T) {
	p := domain.DefaultParams()
	day := domain.Date{Year: 2025, Month: time.August, Day: 1}
	morning := time.Date(2025, time.August, 1, 11, 0, 0, 0, time.Local)

	days, err := Days(nil,
		[]domain.Workout{
			workoutAt(morning, 30, "Yoga"),
			workoutAt(morning.Add(2*time.Hour), 30, "Running"),
			workoutAt(morning.Add(4*time.Hour), 30, "Yoga"),
		},
		bucket.WorkoutDay(p), day, day, p,
	)

	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, 3, days[0].Workouts)
	assert.Equal(t, []string{"Running", "Yoga"}, days[0].WorkoutTypes)
}

func TestDays_NoData(t *testing.T) {
	p := domain.DefaultParams()
	day := domain.Date{Year: 2025, Month: time.August, Day: 1}

	t.Run("no records", func(t *testing.T) {
		_, err := Days(nil, nil, bucket.WorkoutDay(p), day, day, p)
		assert.ErrorIs(t, err, domain.ErrNoData)
	})

	t.Run("inverted range", func(t *testing.T) {
		_, err := Days(
			[]domain.LowHeartRateEvent{eventAt(time.Date(2025, time.August, 1, 12, 0, 0, 0, time.Local), 1)},
			nil, bucket.WorkoutDay(p), day.AddDays(3), day, p,
		)
		assert.ErrorIs(t, err, domain.ErrNoData)
	})
}

func TestRange_SpansEventsAndWorkouts(t *testing.T) {
	p := domain.DefaultParams()

	first, last, err := Range(
		[]domain.LowHeartRateEvent{
			// 3am on the 10th buckets to the 9th.
			eventAt(time.Date(2025, time.August, 10, 3, 0, 0, 0, time.Local), 1),
		},
		[]domain.Workout{
			workoutAt(time.Date(2025, time.August, 2, 14, 0, 0, 0, time.Local), 30, "Running"),
		},
		bucket.WorkoutDay(p),
	)

	require.NoError(t, err)
	assert.Equal(t, domain.Date{Year: 2025, Month: time.August, Day: 2}, first)
	assert.Equal(t, domain.Date{Year: 2025, Month: time.August, Day: 9}, last)
}

func TestRange_Empty(t *testing.T) {
	_, _, err := Range(nil, nil, bucket.CalendarDay())

	assert.ErrorIs(t, err, domain.ErrNoData)
}

func TestFlagSamples_StrictThreshold(t *testing.T) {
	at := time.Date(2025, time.August, 1, 4, 0, 0, 0, time.Local)
	samples := []domain.HeartRateSample{
		{Start: at, Source: "Apple Watch", BPM: 39},
		{Start: at.Add(time.Minute), Source: "Apple Watch", BPM: 40},
		{Start: at.Add(2 * time.Minute), Source: "Apple Watch", BPM: 72},
	}

	flagged := FlagSamples(samples, 40)

	require.Len(t, flagged, 3)
	assert.True(t, flagged[0].Low)
	assert.False(t, flagged[1].Low) // at the threshold is not below it
	assert.False(t, flagged[2].Low)
}
