package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/health-atlas/pkg/models/domain"
)

func TestReporterHandle(t *testing.T) {
	report := &domain.Report{
		Title: "Sleep Quality vs Low Heart Rate Events",
		Period: domain.TimePeriod{
			Start:    time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			End:      time.Date(2025, 7, 30, 0, 0, 0, 0, time.UTC),
			Duration: 30,
		},
		Sections: []domain.ReportSection{
			{
				Title:   "Correlations",
				Summary: map[string]interface{}{"Valid nights": 28},
				Details: []domain.ReportDetail{
					{Name: "deep_min", Value: "-0.42", Unit: "r", Description: "Deep sleep minutes vs event nights"},
				},
			},
		},
	}

	var buf bytes.Buffer
	reporter := NewReporter(&buf)
	err := reporter.Handle(report)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Sleep Quality vs Low Heart Rate Events (30 days)")
	assert.Contains(t, out, "Period: 2025-07-01 to 2025-07-30")
	assert.Contains(t, out, "=== Correlations ===")
	assert.Contains(t, out, "Valid nights: 28")
	assert.Contains(t, out, "| deep_min")
	assert.Contains(t, out, "| Name")
	assert.Contains(t, out, "+------")
}

func TestReporterHandle_NoSections(t *testing.T) {
	report := &domain.Report{
		Title: "Low Heart Rate Event Profile",
		Period: domain.TimePeriod{
			Start:    time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
			End:      time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
			Duration: 1,
		},
	}

	var buf bytes.Buffer
	err := NewReporter(&buf).Handle(report)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Low Heart Rate Event Profile (1 days)")
}
