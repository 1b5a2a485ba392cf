package application

import (
	"github.com/example/room-availability/internal/catalog"
	"github.com/example/room-availability/internal/schedule"
)

// ConflictDetail is the projection of a class session returned to explain why
// a room is unavailable at a requested time.
type ConflictDetail struct {
	Subject   string
	Professor string
	StartTime string
	EndTime   string
	Room      string
	ClassType string
}

// AvailabilityResult is the answer to a single room/window query. Conflicts is
// empty when Available is true and otherwise lists every overlapping session
// in ascending start order.
type AvailabilityResult struct {
	Available bool
	Conflicts []ConflictDetail
}

// CheckAvailabilityParams wraps the data required for a single availability
// query. StartTime and EndTime are zero-padded "HH:mm" strings.
type CheckAvailabilityParams struct {
	RoomCode  string
	Day       schedule.Day
	StartTime string
	EndTime   string
}

// ListAvailableRoomsParams wraps the data required to list free rooms at an
// instant. The instant is a caller choice; "available now" and "available in
// N minutes" differ only in the clock passed here.
type ListAvailableRoomsParams struct {
	Day        schedule.Day
	Clock      string
	Candidates []catalog.Room
}

// BuildGridParams selects the days and rooms of an availability grid. Nil Days
// means all seven weekdays; nil Rooms means every bookable catalog room.
type BuildGridParams struct {
	Days  []schedule.Day
	Rooms []catalog.Room
}

// Grid is the dense day x room x slot availability matrix used by the weekly
// visualization. Free values align index-for-index with Slots; true means no
// class occupies the room during that slot's half-open interval.
type Grid struct {
	Slots []string
	Days  []DayAvailability
}

// DayAvailability groups one day's per-room availability rows.
type DayAvailability struct {
	Day   schedule.Day
	Rooms []RoomAvailability
}

// RoomAvailability is one room's slot availability for one day.
type RoomAvailability struct {
	Room catalog.Room
	Free []bool
}

// Availability returns the slot availability row for a day and room short
// code. The second return value is false when the grid holds no such row.
func (g Grid) Availability(day schedule.Day, roomCode string) ([]bool, bool) {
	for _, d := range g.Days {
		if d.Day != day {
			continue
		}
		for _, room := range d.Rooms {
			if room.Room.ShortCode == roomCode {
				return room.Free, true
			}
		}
	}
	return nil, false
}
