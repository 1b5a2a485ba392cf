// Package testfixtures provides deterministic builders for the domain types
// used across the test suites.
package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/room-availability/internal/catalog"
	"github.com/example/room-availability/internal/persistence"
	"github.com/example/room-availability/internal/schedule"
)

var (
	roomCounter    uint64
	sessionCounter uint64
)

var referenceTime = time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ----------------------------- Room fixtures -----------------------------

// RoomOption configures a generated room fixture.
type RoomOption func(*catalog.Room)

// NewRoomFixture returns a deterministic room with optional overrides. The
// generated name carries a short code followed by a descriptive suffix, the
// convention the room catalog expects.
func NewRoomFixture(opts ...RoomOption) catalog.Room {
	idx := atomic.AddUint64(&roomCounter, 1)
	code := fmt.Sprintf("9.%02d", idx%100)
	room := catalog.Room{
		Name:      fmt.Sprintf("%s - Classroom %03d", code, idx),
		ShortCode: code,
		Capacity:  30,
	}
	for _, opt := range opts {
		opt(&room)
	}
	return room
}

// WithRoomName overrides the generated room name and rederives the short
// code from it.
func WithRoomName(name string) RoomOption {
	return func(r *catalog.Room) {
		r.Name = name
		r.ShortCode = catalog.ShortCodeOf(name)
	}
}

// WithRoomCapacity overrides the generated capacity.
func WithRoomCapacity(capacity int) RoomOption {
	return func(r *catalog.Room) {
		r.Capacity = capacity
	}
}

// ---------------------------- Session fixtures ----------------------------

// SessionOption configures a generated class session fixture.
type SessionOption func(*schedule.ClassSession)

// NewSessionFixture returns a deterministic class session with optional
// overrides. Defaults describe a Monday morning lecture.
func NewSessionFixture(opts ...SessionOption) schedule.ClassSession {
	idx := atomic.AddUint64(&sessionCounter, 1)
	session := schedule.ClassSession{
		SubjectCode:  fmt.Sprintf("SUB%03d", idx),
		SectionLabel: "A",
		ClassType:    "Lecture",
		Day:          schedule.Monday,
		StartTime:    "09:00",
		EndTime:      "10:30",
		RoomCode:     "9.01",
		TeacherName:  fmt.Sprintf("Teacher %03d", idx),
	}
	for _, opt := range opts {
		opt(&session)
	}
	return session
}

// WithSessionDay overrides the generated day.
func WithSessionDay(day schedule.Day) SessionOption {
	return func(s *schedule.ClassSession) {
		s.Day = day
	}
}

// WithSessionWindow overrides the generated start and end clocks.
func WithSessionWindow(start, end string) SessionOption {
	return func(s *schedule.ClassSession) {
		s.StartTime = start
		s.EndTime = end
	}
}

// WithSessionRoom overrides the generated room code.
func WithSessionRoom(code string) SessionOption {
	return func(s *schedule.ClassSession) {
		s.RoomCode = code
	}
}

// WithSessionSubject overrides the generated subject code.
func WithSessionSubject(code string) SessionOption {
	return func(s *schedule.ClassSession) {
		s.SubjectCode = code
	}
}

// TimetableRow converts the session into the raw row shape a data source
// would produce for it.
func TimetableRow(session schedule.ClassSession) persistence.TimetableRow {
	label := session.ClassType
	if session.SectionLabel != "" {
		label = fmt.Sprintf("%s - %s", session.ClassType, session.SectionLabel)
	}
	return persistence.TimetableRow{
		SubjectCode: session.SubjectCode,
		ClassLabel:  label,
		Day:         string(session.Day),
		StartTime:   session.StartTime,
		EndTime:     session.EndTime,
		RoomName:    session.RoomCode,
		TeacherName: session.TeacherName,
	}
}
