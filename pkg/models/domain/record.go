package domain

import "time"

// Category identifies the kind of record extracted from a health export.
type Category string

const (
	CategoryHeartRate    Category = "HeartRate"
	CategoryLowHeartRate Category = "LowHeartRateEvent"
	CategorySleep        Category = "SleepAnalysis"
	CategoryWorkout      Category = "Workout"
)

// Record is one entry from a health export. The concrete types below are the
// only record kinds the pipeline understands; everything else is dropped at
// extraction time.
type Record interface {
	Category() Category
	StartTime() time.Time
	SourceName() string
}

// HeartRateSample is a point-in-time pulse measurement in beats per minute.
type HeartRateSample struct {
	Start  time.Time
	Source string
	BPM    float64
}

func (s HeartRateSample) Category() Category   { return CategoryHeartRate }
func (s HeartRateSample) StartTime() time.Time { return s.Start }
func (s HeartRateSample) SourceName() string   { return s.Source }

// LowHeartRateEvent is an interval during which the recording device flagged
// the pulse as below its alert threshold.
type LowHeartRateEvent struct {
	Start  time.Time
	End    time.Time
	Source string
}

func (e LowHeartRateEvent) Category() Category   { return CategoryLowHeartRate }
func (e LowHeartRateEvent) StartTime() time.Time { return e.Start }
func (e LowHeartRateEvent) SourceName() string   { return e.Source }

// Minutes returns the event duration in minutes.
func (e LowHeartRateEvent) Minutes() float64 { return e.End.Sub(e.Start).Minutes() }

// SleepStage is the classification a source assigns to a sleep interval.
type SleepStage string

const (
	StageInBed             SleepStage = "InBed"
	StageAsleepCore        SleepStage = "AsleepCore"
	StageAsleepREM         SleepStage = "AsleepREM"
	StageAsleepDeep        SleepStage = "AsleepDeep"
	StageAsleepUnspecified SleepStage = "AsleepUnspecified"
	StageAwake             SleepStage = "Awake"
)

// Asleep reports whether the stage counts toward total sleep time.
func (s SleepStage) Asleep() bool {
	switch s {
	case StageAsleepCore, StageAsleepREM, StageAsleepDeep, StageAsleepUnspecified:
		return true
	}
	return false
}

// SleepStageInterval is one contiguous stretch of a single sleep stage.
type SleepStageInterval struct {
	Start  time.Time
	End    time.Time
	Source string
	Stage  SleepStage
}

func (i SleepStageInterval) Category() Category   { return CategorySleep }
func (i SleepStageInterval) StartTime() time.Time { return i.Start }
func (i SleepStageInterval) SourceName() string   { return i.Source }

// Minutes returns the interval duration in minutes.
func (i SleepStageInterval) Minutes() float64 { return i.End.Sub(i.Start).Minutes() }

// Workout is a recorded training session. DurationMin comes from the export's
// own duration attribute rather than End minus Start, since some sources pause
// the clock mid-session.
type Workout struct {
	Start        time.Time
	End          time.Time
	Source       string
	ActivityType string
	DurationMin  float64
}

func (w Workout) Category() Category   { return CategoryWorkout }
func (w Workout) StartTime() time.Time { return w.Start }
func (w Workout) SourceName() string   { return w.Source }

// RecordSet is the materialized outcome of extraction, already filtered,
// deduplicated and cut to the analysis window.
type RecordSet struct {
	HeartRate    []HeartRateSample
	LowHeartRate []LowHeartRateEvent
	Sleep        []SleepStageInterval
	Workouts     []Workout
}
