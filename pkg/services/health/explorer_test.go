package health

import (
	"context"
	"testing"
	"time"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/de-tools/health-atlas/pkg/services/analysis"
	"github.com/de-tools/health-atlas/pkg/services/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testExplorer(t *testing.T) Explorer {
	t.Helper()

	set := &domain.RecordSet{
		HeartRate: []domain.HeartRateSample{
			{Start: time.Date(2025, time.August, 1, 8, 0, 0, 0, time.Local), Source: "Apple Watch", BPM: 55},
		},
		LowHeartRate: []domain.LowHeartRateEvent{
			{
				Start:  time.Date(2025, time.August, 2, 3, 0, 0, 0, time.Local),
				End:    time.Date(2025, time.August, 2, 3, 1, 30, 0, time.Local),
				Source: "Apple Watch",
			},
		},
		Sleep: []domain.SleepStageInterval{
			{
				Start:  time.Date(2025, time.August, 1, 23, 0, 0, 0, time.Local),
				End:    time.Date(2025, time.August, 2, 6, 0, 0, 0, time.Local),
				Source: "Apple Watch",
				Stage:  domain.StageAsleepCore,
			},
			{
				Start:  time.Date(2025, time.August, 1, 23, 5, 0, 0, time.Local),
				End:    time.Date(2025, time.August, 2, 5, 50, 0, 0, time.Local),
				Source: "Eight Sleep",
				Stage:  domain.StageAsleepCore,
			},
			{
				Start:  time.Date(2025, time.August, 2, 23, 0, 0, 0, time.Local),
				End:    time.Date(2025, time.August, 3, 6, 0, 0, 0, time.Local),
				Source: "Apple Watch",
				Stage:  domain.StageAsleepCore,
			},
		},
		Workouts: []domain.Workout{
			{
				Start:        time.Date(2025, time.August, 1, 12, 0, 0, 0, time.Local),
				End:          time.Date(2025, time.August, 1, 12, 30, 0, 0, time.Local),
				Source:       "Apple Watch",
				ActivityType: "Running",
				DurationMin:  30,
			},
		},
	}
	stats := export.CollectStats{Malformed: 1, Deduped: 2, Filtered: 3}
	return NewExplorer(set, stats, domain.DefaultParams(), analysis.DefaultRegistry())
}

func TestExplorer_Summary(t *testing.T) {
	summary := testExplorer(t).Summary(context.Background())

	assert.Equal(t, domain.RecordCounts{HeartRate: 1, LowHeartRate: 1, Sleep: 3, Workouts: 1}, summary.Records)
	assert.Equal(t, domain.DropCounts{Malformed: 1, Deduped: 2, Filtered: 3}, summary.Dropped)
	assert.Equal(t, time.Date(2025, time.August, 1, 8, 0, 0, 0, time.Local), summary.Period.Start)
	assert.Equal(t, time.Date(2025, time.August, 3, 6, 0, 0, 0, time.Local), summary.Period.End)
	assert.Equal(t, 3, summary.Period.Duration)
}

func TestExplorer_SummaryEmptySet(t *testing.T) {
	e := NewExplorer(&domain.RecordSet{}, export.CollectStats{}, domain.DefaultParams(), analysis.DefaultRegistry())

	summary := e.Summary(context.Background())

	assert.Zero(t, summary.Period)
	assert.Zero(t, summary.Records)
}

func TestExplorer_Days(t *testing.T) {
	days, err := testExplorer(t).Days(context.Background())

	require.NoError(t, err)
	// Events and workouts span Aug 1 (workout + dip bucketed back from 3am
	// on the 2nd) and nothing later.
	require.Len(t, days, 1)
	assert.Equal(t, domain.Date{Year: 2025, Month: 8, Day: 1}, days[0].Day)
	assert.Equal(t, 1, days[0].LowHREvents)
	assert.Equal(t, 1, days[0].Workouts)
}

func TestExplorer_Nights(t *testing.T) {
	e := testExplorer(t)

	t.Run("pooled by default", func(t *testing.T) {
		nights, err := e.Nights(context.Background(), "")

		require.NoError(t, err)
		require.Len(t, nights, 2)
		assert.Equal(t, "all", nights[0].Source)
	})

	t.Run("filtered to one source", func(t *testing.T) {
		nights, err := e.Nights(context.Background(), "Eight Sleep")

		require.NoError(t, err)
		require.Len(t, nights, 1)
		assert.Equal(t, "Eight Sleep", nights[0].Source)
		assert.Equal(t, domain.Date{Year: 2025, Month: 8, Day: 1}, nights[0].Night)
	})

	t.Run("unknown source is rejected", func(t *testing.T) {
		_, err := e.Nights(context.Background(), "Oura")

		assert.ErrorIs(t, err, ErrUnknownSource)
	})
}

func TestExplorer_NightsKnownSourceWithoutData(t *testing.T) {
	set := &domain.RecordSet{
		Sleep: []domain.SleepStageInterval{
			{
				Start:  time.Date(2025, time.August, 1, 23, 0, 0, 0, time.Local),
				End:    time.Date(2025, time.August, 2, 6, 0, 0, 0, time.Local),
				Source: "Apple Watch",
				Stage:  domain.StageAsleepCore,
			},
		},
	}
	e := NewExplorer(set, export.CollectStats{}, domain.DefaultParams(), analysis.DefaultRegistry())

	_, err := e.Nights(context.Background(), "Eight Sleep")

	assert.ErrorIs(t, err, domain.ErrNoData)
}

func TestExplorer_Comparison(t *testing.T) {
	cmp, err := testExplorer(t).Comparison(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Apple Watch", cmp.LabelA)
	assert.Equal(t, "Eight Sleep", cmp.LabelB)
	assert.Equal(t, 1, cmp.Nights)
}

func TestExplorer_Analyses(t *testing.T) {
	e := testExplorer(t)

	assert.Equal(t, []string{"events", "sleep", "sources", "workouts"}, e.ListAnalyses(context.Background()))

	report, err := e.RunAnalysis(context.Background(), "events")
	require.NoError(t, err)
	assert.NotEmpty(t, report.Sections)

	_, err = e.RunAnalysis(context.Background(), "nope")
	assert.ErrorIs(t, err, analysis.ErrNotRegistered)
}
