package bucket

import (
	"testing"
	"time"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func TestRuleAssign_BoundaryBehavior(t *testing.T) {
	date := func(y int, m time.Month, d int) domain.Date {
		return domain.Date{Year: y, Month: m, Day: d}
	}

	tests := []struct {
		name string
		rule Rule
		at   time.Time
		want domain.Date
	}{
		{
			name: "just before workout boundary shifts to previous day",
			rule: Rule{Name: "workout-day", BoundaryHour: 10},
			at:   time.Date(2025, time.August, 2, 9, 59, 0, 0, time.Local),
			want: date(2025, time.August, 1),
		},
		{
			name: "exactly at workout boundary stays on its own day",
			rule: Rule{Name: "workout-day", BoundaryHour: 10},
			at:   time.Date(2025, time.August, 2, 10, 0, 0, 0, time.Local),
			want: date(2025, time.August, 2),
		},
		{
			name: "just before sleep boundary shifts to previous night",
			rule: Rule{Name: "sleep-night", BoundaryHour: 18},
			at:   time.Date(2025, time.August, 2, 17, 59, 59, 0, time.Local),
			want: date(2025, time.August, 1),
		},
		{
			name: "exactly at sleep boundary stays on its own day",
			rule: Rule{Name: "sleep-night", BoundaryHour: 18},
			at:   time.Date(2025, time.August, 2, 18, 0, 0, 0, time.Local),
			want: date(2025, time.August, 2),
		},
		{
			name: "early morning event lands on the previous day",
			rule: Rule{Name: "workout-day", BoundaryHour: 10},
			at:   time.Date(2025, time.August, 2, 3, 0, 0, 0, time.Local),
			want: date(2025, time.August, 1),
		},
		{
			name: "shift crosses a month start",
			rule: Rule{Name: "workout-day", BoundaryHour: 10},
			at:   time.Date(2025, time.August, 1, 0, 30, 0, 0, time.Local),
			want: date(2025, time.July, 31),
		},
		{
			name: "shift crosses a year start",
			rule: Rule{Name: "sleep-night", BoundaryHour: 18},
			at:   time.Date(2026, time.January, 1, 2, 0, 0, 0, time.Local),
			want: date(2025, time.December, 31),
		},
		{
			name: "calendar rule keeps midnight on its own day",
			rule: CalendarDay(),
			at:   time.Date(2025, time.August, 2, 0, 0, 0, 0, time.Local),
			want: date(2025, time.August, 2),
		},
		{
			name: "calendar rule keeps late evening on its own day",
			rule: CalendarDay(),
			at:   time.Date(2025, time.August, 2, 23, 59, 0, 0, time.Local),
			want: date(2025, time.August, 2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.Assign(tt.at))
		})
	}
}

func TestRulesFromParams(t *testing.T) {
	p := domain.DefaultParams()

	assert.Equal(t, 10, WorkoutDay(p).BoundaryHour)
	assert.Equal(t, 18, SleepNight(p).BoundaryHour)
	assert.Equal(t, 0, CalendarDay().BoundaryHour)
}
