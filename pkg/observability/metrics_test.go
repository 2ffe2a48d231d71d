package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()

	metric := &dto.Metric{}
	require.NoError(t, g.Write(metric))
	return metric.GetGauge().GetValue()
}

func TestRecordRecordsKept(t *testing.T) {
	RecordRecordsKept("sleep", 1204)

	assert.Equal(t, float64(1204), gaugeValue(t, recordsKeptGauge.WithLabelValues("sleep")))
}

func TestRecordRecordsDropped(t *testing.T) {
	RecordRecordsDropped("deduped", 37)

	assert.Equal(t, float64(37), gaugeValue(t, recordsDroppedGauge.WithLabelValues("deduped")))
}

func TestRecordExportRun(t *testing.T) {
	finished := time.Date(2025, time.August, 1, 12, 0, 0, 0, time.UTC)

	RecordExportRun(finished, 1500*time.Millisecond)

	assert.Equal(t, float64(finished.Unix()), gaugeValue(t, exportTimestampGauge))
	assert.Equal(t, 1.5, gaugeValue(t, exportDurationGauge))
}

func TestRecordExportRun_IgnoresZeroTime(t *testing.T) {
	RecordExportRun(time.Date(2025, time.August, 1, 12, 0, 0, 0, time.UTC), time.Second)
	RecordExportRun(time.Time{}, 9*time.Second)

	assert.Equal(t, 1.0, gaugeValue(t, exportDurationGauge))
}

func TestRecordAnalysisServed(t *testing.T) {
	before := &dto.Metric{}
	require.NoError(t, analysisCounter.WithLabelValues("workouts").Write(before))

	RecordAnalysisServed("workouts")

	after := &dto.Metric{}
	require.NoError(t, analysisCounter.WithLabelValues("workouts").Write(after))
	assert.Equal(t, before.GetCounter().GetValue()+1, after.GetCounter().GetValue())
}
