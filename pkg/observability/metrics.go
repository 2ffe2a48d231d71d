package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	recordsKeptGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "health_atlas",
		Subsystem: "export",
		Name:      "records_kept",
		Help:      "Number of records per category kept by the most recent extraction.",
	}, []string{"category"})

	recordsDroppedGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "health_atlas",
		Subsystem: "export",
		Name:      "records_dropped",
		Help:      "Number of records dropped by the most recent extraction, by reason.",
	}, []string{"reason"})

	exportDurationGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "health_atlas",
		Subsystem: "export",
		Name:      "last_run_duration_seconds",
		Help:      "Wall-clock duration of the most recent extraction.",
	})

	exportTimestampGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "health_atlas",
		Subsystem: "export",
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix timestamp of the most recent extraction.",
	})

	analysisCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "health_atlas",
		Subsystem: "api",
		Name:      "analysis_requests_total",
		Help:      "Number of analysis reports served, by analysis name.",
	}, []string{"analysis"})
)

func init() {
	prometheus.MustRegister(
		recordsKeptGauge,
		recordsDroppedGauge,
		exportDurationGauge,
		exportTimestampGauge,
		analysisCounter,
	)
}

// RecordRecordsKept sets the kept-records gauge for one category.
func RecordRecordsKept(category string, n int) {
	recordsKeptGauge.WithLabelValues(category).Set(float64(n))
}

// RecordRecordsDropped sets the dropped-records gauge for one drop reason.
func RecordRecordsDropped(reason string, n int) {
	recordsDroppedGauge.WithLabelValues(reason).Set(float64(n))
}

// RecordExportRun stamps the extraction watermark gauges.
func RecordExportRun(finished time.Time, took time.Duration) {
	if finished.IsZero() {
		return
	}
	exportTimestampGauge.Set(float64(finished.Unix()))
	exportDurationGauge.Set(took.Seconds())
}

// RecordAnalysisServed counts one served analysis report.
func RecordAnalysisServed(name string) {
	analysisCounter.WithLabelValues(name).Inc()
}
