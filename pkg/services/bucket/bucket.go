package bucket

import (
	"time"

	"github.com/de-tools/health-atlas/pkg/models/domain"
)

// Rule assigns timestamps to calendar days. Activity in the small hours
// usually belongs to the previous day (a 3am pulse dip follows the previous
// afternoon's workout; sleep that starts at 1am belongs to the night that
// began the evening before), so a rule shifts anything strictly before its
// boundary hour back by one day.
type Rule struct {
	Name         string
	BoundaryHour int
}

// Assign returns the day the timestamp belongs to under the rule. A timestamp
// exactly at the boundary hour stays on its own calendar day.
func (r Rule) Assign(t time.Time) domain.Date {
	d := domain.DateOf(t)
	if t.Hour() < r.BoundaryHour {
		return d.AddDays(-1)
	}
	return d
}

// WorkoutDay builds the rule that associates events with workout days.
func WorkoutDay(p domain.Params) Rule {
	return Rule{Name: "workout-day", BoundaryHour: p.WorkoutDayBoundaryHour}
}

// SleepNight builds the rule that assigns sleep intervals to nights.
func SleepNight(p domain.Params) Rule {
	return Rule{Name: "sleep-night", BoundaryHour: p.SleepNightBoundaryHour}
}

// CalendarDay is the rule that never shifts. A workout's own day is simply
// the date it started.
func CalendarDay() Rule {
	return Rule{Name: "calendar-day", BoundaryHour: 0}
}
