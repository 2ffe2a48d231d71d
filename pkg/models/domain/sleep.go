package domain

import "time"

// NightMetrics aggregates every sleep interval assigned to one night, for one
// source label (or "all" when sources are pooled).
type NightMetrics struct {
	Night  Date
	Source string

	AsleepMin      float64 // core + rem + deep + unspecified
	CoreMin        float64
	REMMin         float64
	DeepMin        float64
	UnspecifiedMin float64
	AwakeMin       float64
	InBedMin       float64

	Awakenings int // count of awake intervals

	Efficiency float64 // asleep / in-bed * 100, 0 when in-bed is 0
	DeepPct    float64 // deep / asleep * 100, 0 when asleep is 0
	REMPct     float64 // rem / asleep * 100, 0 when asleep is 0

	BedTime      time.Time // earliest interval start
	WakeTime     time.Time // latest interval end
	TimeInBedMin float64   // wake - bed
}

// NightComparison pairs the metrics two sources produced for the same night.
// Values are carried exactly as each side reported them.
type NightComparison struct {
	Night Date
	A     NightMetrics
	B     NightMetrics
}
