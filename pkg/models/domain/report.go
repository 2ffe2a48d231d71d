package domain

import "time"

// Report is the renderable outcome of one analysis. Both the terminal
// reporter and the JSON API consume this shape unchanged.
type Report struct {
	Title    string
	Period   TimePeriod
	Sections []ReportSection
}

// TimePeriod is the window an analysis covered.
type TimePeriod struct {
	Start    time.Time
	End      time.Time
	Duration int // in days
}

// ReportSection groups one aspect of an analysis: headline numbers in
// Summary, per-metric rows in Details.
type ReportSection struct {
	Title    string
	Summary  map[string]interface{}
	Details  []ReportDetail
	Metadata map[string]interface{}
}

// ReportDetail is a single table row.
type ReportDetail struct {
	Name        string
	Value       interface{}
	Unit        string
	Description string
}
