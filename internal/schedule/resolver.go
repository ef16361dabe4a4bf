// Package schedule contains the pure calendar logic for repeating workout
// schedules: mapping dates onto a pattern anchored at a start date, and
// resolving display colors for workout day types.
package schedule

import (
	"time"

	"liftlog/internal/domain"
)

// Normalize truncates t to its calendar date at midnight UTC. All
// resolver arithmetic works on normalized dates; callers passing
// wall-clock times get them normalized here, so a date and its anchor
// always differ by a whole number of days.
func Normalize(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the calendar date n days after t, normalized.
func AddDays(t time.Time, n int) time.Time {
	return Normalize(t).AddDate(0, 0, n)
}

// ResolveDay maps date onto the schedule's repeating pattern. The anchor
// date resolves to Pattern[0], the next day to Pattern[1], and so on,
// wrapping around. ok is false when date precedes the anchor (the
// schedule does not apply yet) or when the pattern is empty.
//
// The empty-pattern case is a caller bug: the store rejects empty
// patterns at creation time, so a well-formed Schedule never hits it.
func ResolveDay(s *domain.Schedule, date time.Time) (dayType domain.WorkoutDayType, ok bool) {
	if len(s.Pattern) == 0 {
		return "", false
	}

	start := Normalize(s.StartDate)
	target := Normalize(date)

	offsetDays := int(target.Sub(start).Hours() / 24)
	if offsetDays < 0 {
		return "", false
	}

	return s.Pattern[offsetDays%len(s.Pattern)], true
}

// Day annotates one calendar date with its resolved workout type.
// Type is empty (and Scheduled false) when the schedule does not apply.
type Day struct {
	Date      time.Time
	Type      domain.WorkoutDayType
	Scheduled bool
}

// Upcoming resolves window consecutive days starting at from. The result
// always has exactly window entries and entry i falls on from+i days;
// the same from always reproduces the same sequence.
func Upcoming(s *domain.Schedule, from time.Time, window int) []Day {
	days := make([]Day, 0, window)
	start := Normalize(from)
	for i := 0; i < window; i++ {
		date := start.AddDate(0, 0, i)
		dayType, ok := ResolveDay(s, date)
		days = append(days, Day{Date: date, Type: dayType, Scheduled: ok})
	}
	return days
}
