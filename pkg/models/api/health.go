package api

import "time"

type Night struct {
	Night          string    `json:"night"`
	Source         string    `json:"source"`
	AsleepMin      float64   `json:"asleep_min"`
	CoreMin        float64   `json:"core_min"`
	REMMin         float64   `json:"rem_min"`
	DeepMin        float64   `json:"deep_min"`
	UnspecifiedMin float64   `json:"unspecified_min"`
	AwakeMin       float64   `json:"awake_min"`
	InBedMin       float64   `json:"in_bed_min"`
	Awakenings     int       `json:"awakenings"`
	Efficiency     float64   `json:"efficiency"`
	DeepPct        float64   `json:"deep_pct"`
	REMPct         float64   `json:"rem_pct"`
	BedTime        time.Time `json:"bed_time"`
	WakeTime       time.Time `json:"wake_time"`
	TimeInBedMin   float64   `json:"time_in_bed_min"`
}

type Day struct {
	Day            string   `json:"day"`
	LowHREvents    int      `json:"low_hr_events"`
	LowHRMinutes   float64  `json:"low_hr_minutes"`
	Workouts       int      `json:"workouts"`
	WorkoutMinutes float64  `json:"workout_minutes"`
	WorkoutTypes   []string `json:"workout_types"`
	HasWorkout     bool     `json:"has_workout"`
}

type Summary struct {
	Period  TimePeriod    `json:"period"`
	Records RecordCounts  `json:"records"`
	Dropped DroppedCounts `json:"dropped"`
}

type RecordCounts struct {
	HeartRate    int `json:"heart_rate"`
	LowHeartRate int `json:"low_heart_rate"`
	Sleep        int `json:"sleep"`
	Workouts     int `json:"workouts"`
}

type DroppedCounts struct {
	Malformed int `json:"malformed"`
	Deduped   int `json:"deduped"`
	Filtered  int `json:"filtered"`
}

type SourceComparison struct {
	Period  TimePeriod        `json:"period"`
	LabelA  string            `json:"label_a"`
	LabelB  string            `json:"label_b"`
	Nights  int               `json:"nights"`
	Metrics []SourceAgreement `json:"metrics"`
}

type SourceAgreement struct {
	Metric   string   `json:"metric"`
	MeanA    float64  `json:"mean_a"`
	MeanB    float64  `json:"mean_b"`
	MeanDiff float64  `json:"mean_diff"`
	R        *float64 `json:"r"`
}

type Params struct {
	CutoffDate              string        `json:"cutoff_date"`
	LowHeartRateBPM         float64       `json:"low_heart_rate_bpm"`
	MinValidSleepMin        float64       `json:"min_valid_sleep_min"`
	WorkoutOutlierMin       float64       `json:"workout_outlier_min"`
	ChartClampMin           float64       `json:"chart_clamp_min"`
	WorkoutDayBoundaryHour  int           `json:"workout_day_boundary_hour"`
	SleepNightBoundaryHour  int           `json:"sleep_night_boundary_hour"`
	HeartRateSourceContains string        `json:"heart_rate_source_contains"`
	SleepSources            []SourceLabel `json:"sleep_sources"`
}

type SourceLabel struct {
	Label    string `json:"label"`
	Contains string `json:"contains"`
}
