package domain

// DayActivity is one row of the gap-free daily series: low heart rate events
// associated with the day plus workouts performed on it. Days with no records
// still appear, with zero counts.
type DayActivity struct {
	Day Date

	LowHREvents  int
	LowHRMinutes float64

	Workouts       int
	WorkoutMinutes float64
	WorkoutTypes   []string // distinct, sorted
}

// HasWorkout reports whether at least one workout was performed on the day.
func (d DayActivity) HasWorkout() bool { return d.Workouts > 0 }

// FlaggedSample is a heart rate sample annotated against the low threshold.
type FlaggedSample struct {
	HeartRateSample
	Low bool
}
