package api

import "time"

type TimePeriod struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Duration int       `json:"duration_days"`
}

type AnalysisReport struct {
	Title    string          `json:"title"`
	Period   TimePeriod      `json:"period"`
	Sections []ReportSection `json:"sections"`
}

type ReportSection struct {
	Title    string                 `json:"title"`
	Summary  map[string]interface{} `json:"summary,omitempty"`
	Details  []ReportDetail         `json:"details"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

type ReportDetail struct {
	Name        string      `json:"name"`
	Value       interface{} `json:"value"`
	Unit        string      `json:"unit,omitempty"`
	Description string      `json:"description,omitempty"`
}
