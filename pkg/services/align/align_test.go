package align

import (
	"testing"
	"time"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func night(day int, source string, asleep float64) domain.NightMetrics {
	return domain.NightMetrics{
		Night:     domain.Date{Year: 2025, Month: time.August, Day: day},
		Source:    source,
		AsleepMin: asleep,
	}
}

func TestNights_InnerJoin(t *testing.T) {
	a := []domain.NightMetrics{
		night(1, "Apple Watch", 400),
		night(2, "Apple Watch", 410),
		night(4, "Apple Watch", 390),
	}
	b := []domain.NightMetrics{
		night(2, "Eight Sleep", 415),
		night(3, "Eight Sleep", 300),
		night(4, "Eight Sleep", 380),
	}

	joined, err := Nights(a, b)

	require.NoError(t, err)
	require.Len(t, joined, 2)

	// Only the shared nights, in order, with both sides untouched.
	assert.Equal(t, domain.Date{Year: 2025, Month: time.August, Day: 2}, joined[0].Night)
	assert.InDelta(t, 410, joined[0].A.AsleepMin, 1e-9)
	assert.InDelta(t, 415, joined[0].B.AsleepMin, 1e-9)
	assert.Equal(t, domain.Date{Year: 2025, Month: time.August, Day: 4}, joined[1].Night)
	assert.InDelta(t, 390, joined[1].A.AsleepMin, 1e-9)
	assert.InDelta(t, 380, joined[1].B.AsleepMin, 1e-9)
}

func TestNights_UnsortedInputsComeOutSorted(t *testing.T) {
	a := []domain.NightMetrics{night(5, "Apple Watch", 1), night(1, "Apple Watch", 2)}
	b := []domain.NightMetrics{night(1, "Eight Sleep", 3), night(5, "Eight Sleep", 4)}

	joined, err := Nights(a, b)

	require.NoError(t, err)
	require.Len(t, joined, 2)
	assert.True(t, joined[0].Night.Before(joined[1].Night))
}

func TestNights_EmptyInputIsNoData(t *testing.T) {
	_, err := Nights(nil, []domain.NightMetrics{night(1, "Eight Sleep", 1)})

	assert.ErrorIs(t, err, domain.ErrNoData)
}

func TestNights_DisjointNightsIsEmptyJoin(t *testing.T) {
	a := []domain.NightMetrics{night(1, "Apple Watch", 400)}
	b := []domain.NightMetrics{night(2, "Eight Sleep", 300)}

	_, err := Nights(a, b)

	assert.ErrorIs(t, err, domain.ErrEmptyJoin)
	assert.NotErrorIs(t, err, domain.ErrNoData)
}
