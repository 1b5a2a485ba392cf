// Package schedule models the weekly timetable: the recurring class sessions,
// the immutable per-day index built from them, and the conflict detection the
// availability resolver runs against it.
package schedule

import (
	"strings"
	"time"

	"github.com/example/room-availability/internal/timegrid"
)

// Day names one of the seven weekdays of the timetable, Monday first.
type Day string

const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
	Saturday  Day = "Saturday"
	Sunday    Day = "Sunday"
)

var orderedDays = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Days returns the seven weekdays in timetable order.
func Days() []Day {
	out := make([]Day, len(orderedDays))
	copy(out, orderedDays)
	return out
}

// ParseDay resolves a weekday name case-insensitively.
func ParseDay(name string) (Day, bool) {
	trimmed := strings.TrimSpace(name)
	for _, day := range orderedDays {
		if strings.EqualFold(trimmed, string(day)) {
			return day, true
		}
	}
	return "", false
}

// DayAndClockOf projects a wall-clock instant onto the weekly timetable,
// returning the weekday and "HH:mm" clock in the supplied location. When loc
// is nil the instant's own location is used. This is the only bridge between
// real time and the engine; the resolver itself has no notion of "now".
func DayAndClockOf(t time.Time, loc *time.Location) (Day, string) {
	if loc != nil {
		t = t.In(loc)
	}
	var day Day
	switch t.Weekday() {
	case time.Monday:
		day = Monday
	case time.Tuesday:
		day = Tuesday
	case time.Wednesday:
		day = Wednesday
	case time.Thursday:
		day = Thursday
	case time.Friday:
		day = Friday
	case time.Saturday:
		day = Saturday
	case time.Sunday:
		day = Sunday
	}
	return day, t.Format("15:04")
}

// ClassSession is one recurring weekly occupancy of a room. Sessions are
// immutable once loaded; each data refresh recreates them wholesale.
type ClassSession struct {
	SubjectCode  string
	SectionLabel string
	ClassType    string
	Day          Day
	StartTime    string
	EndTime      string
	RoomCode     string
	TeacherName  string
}

// valid reports whether the session carries a known day and a well-formed,
// forward time range. Reversed or equal ranges occupy nothing and are dropped
// at load time.
func (s ClassSession) valid() bool {
	if _, ok := ParseDay(string(s.Day)); !ok {
		return false
	}
	start, ok := timegrid.MinuteOfDay(s.StartTime)
	if !ok {
		return false
	}
	end, ok := timegrid.MinuteOfDay(s.EndTime)
	if !ok {
		return false
	}
	return start < end
}
