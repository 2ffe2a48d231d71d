package domain

import (
	"strings"
	"time"
)

// SourceLabel maps the messy sourceName attribute of export records to a
// canonical label. Matching is by substring.
type SourceLabel struct {
	Label    string
	Contains string
}

// Params carries every threshold and rule boundary the pipeline uses. It is
// threaded explicitly through the services; nothing reads these values from
// package state.
type Params struct {
	// CutoffDate is the inclusive start of the analysis window. Records
	// starting before it are dropped at extraction.
	CutoffDate Date

	// LowHeartRateBPM flags individual heart rate samples as low.
	LowHeartRateBPM float64

	// MinValidSleepMin excludes nights with too little recorded sleep from
	// the correlation analysis.
	MinValidSleepMin float64

	// WorkoutOutlierMin excludes implausibly long workout rows from the
	// daily series.
	WorkoutOutlierMin float64

	// ChartClampMin is the display ceiling external chart layers apply to
	// workout durations. The pipeline never clamps; the value is only
	// published for presentation clients.
	ChartClampMin float64

	// WorkoutDayBoundaryHour associates early-morning events with the
	// previous day's workout. An event before this hour belongs to the
	// previous day.
	WorkoutDayBoundaryHour int

	// SleepNightBoundaryHour assigns sleep intervals to the night they
	// belong to. An interval starting before this hour belongs to the
	// previous day's night.
	SleepNightBoundaryHour int

	// HeartRateSourceContains keeps only heart rate samples whose source
	// name contains this substring. Empty keeps everything.
	HeartRateSourceContains string

	// SleepSources canonicalizes sleep record sources. Sleep records
	// matching none of the labels are dropped.
	SleepSources []SourceLabel
}

// DefaultParams returns the standard analysis configuration.
func DefaultParams() Params {
	return Params{
		CutoffDate:             Date{Year: 2025, Month: time.July, Day: 16},
		LowHeartRateBPM:        40,
		MinValidSleepMin:       60,
		WorkoutOutlierMin:      500,
		ChartClampMin:          300,
		WorkoutDayBoundaryHour: 10,
		SleepNightBoundaryHour: 18,
		SleepSources: []SourceLabel{
			{Label: "Apple Watch", Contains: "Watch"},
			{Label: "Eight Sleep", Contains: "Eight Sleep"},
		},
	}
}

// CanonicalSleepSource resolves a raw sourceName to its configured label.
// The second return is false when no label matches.
func (p Params) CanonicalSleepSource(raw string) (string, bool) {
	for _, s := range p.SleepSources {
		if s.Contains != "" && strings.Contains(raw, s.Contains) {
			return s.Label, true
		}
	}
	return "", false
}
