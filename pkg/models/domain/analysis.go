package domain

// Summary holds descriptive statistics for one series. StdDev is the
// population standard deviation.
type Summary struct {
	Count     int
	Sum       float64
	Mean      float64
	Median    float64
	StdDev    float64
	Min       float64
	Max       float64
	ZeroShare float64 // fraction of values equal to zero
}

// WorkoutEffect is the outcome of comparing low heart rate activity between
// workout days and rest days over one analysis window.
type WorkoutEffect struct {
	Window      TimePeriod
	WorkoutDays Summary
	RestDays    Summary

	U            float64 // Mann-Whitney U of the workout-day group
	PValue       float64
	Significance string // "***", "**", "*" or ""
	Effect       float64 // rank-biserial, in [-1, 1]
	EffectBand   string  // negligible, small, medium, large
	MeanDiff     float64 // workout mean - rest mean

	ByType []WorkoutTypeEffect
}

// WorkoutTypeEffect breaks the comparison down for one activity type.
type WorkoutTypeEffect struct {
	ActivityType  string
	Days          int
	MeanEvents    float64
	EventDayShare float64 // fraction of those days with at least one event
}

// MetricCorrelation relates one nightly sleep metric to the presence of low
// heart rate events on the same night.
type MetricCorrelation struct {
	Metric       string
	R            float64 // point-biserial, in [-1, 1]
	PValue       float64
	Band         string // negligible, weak, moderate, strong, very strong
	Significance string
	MeanWith     float64
	MeanWithout  float64
	PctDiff      float64 // (with - without) / without * 100, 0 when without is 0
}

// SleepCorrelation is the outcome of correlating nightly sleep quality with
// low heart rate events.
type SleepCorrelation struct {
	Window           TimePeriod
	ValidNights      int
	NightsWithEvents int
	Metrics          []MetricCorrelation
}

// SourceAgreement describes how two sources agree on one sleep metric across
// their shared nights.
type SourceAgreement struct {
	Metric   string
	MeanA    float64
	MeanB    float64
	MeanDiff float64  // A - B
	R        *float64 // Pearson across shared nights, nil when not computable
}

// SourceComparison is the outcome of comparing two sleep sources night by
// night.
type SourceComparison struct {
	Window  TimePeriod
	LabelA  string
	LabelB  string
	Nights  int // shared nights
	Metrics []SourceAgreement
}

// EventProfile summarizes low heart rate events on their own: how long they
// last, when on the clock they strike, and how they spread over months.
type EventProfile struct {
	Window   TimePeriod
	Total    int
	Duration Summary        // minutes
	ByHour   map[int]int    // clock hour of the event start
	ByMonth  map[string]int // YYYY-MM
	BySource map[string]int
}
