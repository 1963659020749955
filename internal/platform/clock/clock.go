// Package clock provides the time source for all day- and week-boundary
// logic. Services receive a Clock instead of calling time.Now directly so
// streak, soft-cap, and weekly-challenge behavior is deterministic in tests.
package clock

import (
	"math"
	"time"
)

// Clock resolves "now" into a user's local calendar day and ISO week.
type Clock interface {
	// Now returns the current instant in UTC.
	Now() time.Time

	// TodayLocal returns local midnight of the current day in the given
	// IANA timezone. An unknown timezone falls back to UTC.
	TodayLocal(timezone string) time.Time

	// WeekStartLocal returns local midnight of the Monday of the current
	// ISO week in the given timezone.
	WeekStartLocal(timezone string) time.Time
}

// SystemClock implements Clock with the real system time.
type SystemClock struct{}

// NewSystemClock returns a Clock backed by the system time.
func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

// Ensure SystemClock implements Clock
var _ Clock = (*SystemClock)(nil)

// Now implements Clock.Now.
func (c *SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// TodayLocal implements Clock.TodayLocal.
func (c *SystemClock) TodayLocal(timezone string) time.Time {
	return Midnight(time.Now(), Location(timezone))
}

// WeekStartLocal implements Clock.WeekStartLocal.
func (c *SystemClock) WeekStartLocal(timezone string) time.Time {
	return WeekStart(time.Now(), Location(timezone))
}

// Location resolves an IANA timezone name, falling back to UTC when the
// name is empty or unknown.
func Location(timezone string) *time.Location {
	if timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Midnight returns local midnight of the day containing t in loc.
func Midnight(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// WeekStart returns local midnight of the Monday of the ISO week
// containing t in loc.
func WeekStart(t time.Time, loc *time.Location) time.Time {
	day := Midnight(t, loc)
	// time.Weekday puts Sunday at 0; shift so Monday is 0.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// DaysBetween returns the number of calendar days from a to b, where both
// are local midnights. Negative when b is before a. The elapsed time is
// rounded, not truncated: a DST transition makes the local day 23 or 25
// hours long, and truncation would count the short day as zero.
func DaysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}
