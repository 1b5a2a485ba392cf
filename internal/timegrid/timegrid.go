// Package timegrid defines the canonical discretized daily timeline used by the
// availability engine and the clock-string arithmetic shared by its callers.
//
// All public inputs and outputs are zero-padded "HH:mm" strings. Comparisons
// are performed on minute-of-day integers internally; the string format is kept
// only for interoperability with the timetable data sources.
package timegrid

import "fmt"

// SlotMinutes is the width of one grid slot.
const SlotMinutes = 30

// gridSlotStarts are the start boundaries of the visualization grid. Slot i
// covers the half-open interval [gridSlotStarts[i], gridSlotStarts[i]+30m).
var gridSlotStarts = []string{
	"08:30", "09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "12:00",
	"12:30", "13:00", "13:30", "14:00", "14:30", "15:00", "15:30", "16:00",
	"16:30", "17:00", "17:30", "18:00", "18:30", "19:00", "19:30", "20:00",
	"20:30", "21:00", "21:30", "22:00",
}

// queryBoundaries is the wider half-hour sequence accepted for ad-hoc range
// queries, from 07:00 to 23:00 inclusive.
var queryBoundaries = buildBoundaries(7*60, 23*60)

func buildBoundaries(firstMinute, lastMinute int) []string {
	out := make([]string, 0, (lastMinute-firstMinute)/SlotMinutes+1)
	for m := firstMinute; m <= lastMinute; m += SlotMinutes {
		out = append(out, Clock(m))
	}
	return out
}

// GridSlots returns a copy of the grid slot start times, in order.
func GridSlots() []string {
	out := make([]string, len(gridSlotStarts))
	copy(out, gridSlotStarts)
	return out
}

// SlotCount returns the number of slots in the visualization grid.
func SlotCount() int {
	return len(gridSlotStarts)
}

// QueryBoundaries returns a copy of the wider half-hour boundary sequence used
// for ad-hoc availability queries.
func QueryBoundaries() []string {
	out := make([]string, len(queryBoundaries))
	copy(out, queryBoundaries)
	return out
}

// IndexOf returns the grid slot index whose start equals the supplied clock
// string. The second return value is false when the clock does not name a grid
// slot start, including malformed input.
func IndexOf(clock string) (int, bool) {
	minute, ok := MinuteOfDay(clock)
	if !ok {
		return 0, false
	}
	first, _ := MinuteOfDay(gridSlotStarts[0])
	offset := minute - first
	if offset < 0 || offset%SlotMinutes != 0 {
		return 0, false
	}
	index := offset / SlotMinutes
	if index >= len(gridSlotStarts) {
		return 0, false
	}
	return index, true
}

// ClockAt returns the clock string of the grid slot start at the given index.
func ClockAt(index int) (string, bool) {
	if index < 0 || index >= len(gridSlotStarts) {
		return "", false
	}
	return gridSlotStarts[index], true
}

// MinuteOfDay parses a strict zero-padded "HH:mm" clock string into minutes
// since midnight. The second return value is false for malformed input; the
// engine never attempts to repair free-form time text.
func MinuteOfDay(clock string) (int, bool) {
	if len(clock) != 5 || clock[2] != ':' {
		return 0, false
	}
	hh, ok := twoDigits(clock[0], clock[1])
	if !ok || hh > 23 {
		return 0, false
	}
	mm, ok := twoDigits(clock[3], clock[4])
	if !ok || mm > 59 {
		return 0, false
	}
	return hh*60 + mm, true
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

// Clock formats minutes since midnight as a zero-padded "HH:mm" string. The
// minute value is wrapped into a single day.
func Clock(minute int) string {
	minute %= 24 * 60
	if minute < 0 {
		minute += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// AddMinutes shifts a clock string forward by n minutes, wrapping at midnight.
// Used by callers projecting "available in N minutes" instants.
func AddMinutes(clock string, n int) (string, bool) {
	minute, ok := MinuteOfDay(clock)
	if !ok {
		return "", false
	}
	return Clock(minute + n), true
}

// Overlaps reports whether the half-open ranges [aStart, aEnd) and
// [bStart, bEnd) intersect. A range ending exactly when the other starts does
// not overlap. Malformed clock strings never overlap anything.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	as, ok := MinuteOfDay(aStart)
	if !ok {
		return false
	}
	ae, ok := MinuteOfDay(aEnd)
	if !ok {
		return false
	}
	bs, ok := MinuteOfDay(bStart)
	if !ok {
		return false
	}
	be, ok := MinuteOfDay(bEnd)
	if !ok {
		return false
	}
	return as < be && bs < ae
}
