package domain

// ExportSummary describes one extraction pass: what was kept, what was
// dropped, and the time window the kept records span.
type ExportSummary struct {
	Period  TimePeriod
	Records RecordCounts
	Dropped DropCounts
}

// RecordCounts holds kept record totals per category.
type RecordCounts struct {
	HeartRate    int
	LowHeartRate int
	Sleep        int
	Workouts     int
}

// DropCounts holds dropped record totals per drop reason.
type DropCounts struct {
	Malformed int
	Deduped   int
	Filtered  int
}
