// Package persistence defines the raw timetable records exchanged with the
// data sources (CSV export, SQLite mirror, Postgres) and their mapping into
// the engine's domain types. The engine itself never touches I/O; sources
// hand it fully loaded collections.
package persistence

import (
	"strings"

	"github.com/example/room-availability/internal/catalog"
	"github.com/example/room-availability/internal/schedule"
)

// TimetableRow is one class record as produced by the scraper pipeline.
// ClassLabel carries the combined type/section text (for example
// "Lecture - A"); SplitClassLabel separates it for the domain model.
type TimetableRow struct {
	SubjectCode string
	ClassLabel  string
	Day         string
	StartTime   string
	EndTime     string
	RoomName    string
	TeacherName string
}

// RoomRow is one catalog record. Capacity zero means unknown; ShortCode may
// be empty when the source only stores decorated names.
type RoomRow struct {
	Name      string
	ShortCode string
	Capacity  int
}

// SplitClassLabel separates a combined class label into its type and section
// parts. "Lecture - A" and "LEC A" both split; a label without a separator is
// treated as a bare class type.
func SplitClassLabel(label string) (classType, section string) {
	label = strings.TrimSpace(label)
	if before, after, found := strings.Cut(label, " - "); found {
		return strings.TrimSpace(before), strings.TrimSpace(after)
	}
	if idx := strings.LastIndex(label, " "); idx >= 0 {
		return strings.TrimSpace(label[:idx]), strings.TrimSpace(label[idx+1:])
	}
	return label, ""
}

// ToClassSession maps a raw row into the domain session type. No validation
// happens here; schedule.Load drops malformed sessions.
func (r TimetableRow) ToClassSession() schedule.ClassSession {
	classType, section := SplitClassLabel(r.ClassLabel)
	return schedule.ClassSession{
		SubjectCode:  strings.TrimSpace(r.SubjectCode),
		SectionLabel: section,
		ClassType:    classType,
		Day:          schedule.Day(strings.TrimSpace(r.Day)),
		StartTime:    strings.TrimSpace(r.StartTime),
		EndTime:      strings.TrimSpace(r.EndTime),
		RoomCode:     strings.TrimSpace(r.RoomName),
		TeacherName:  strings.TrimSpace(r.TeacherName),
	}
}

// ToClassSessions maps a row collection into domain sessions.
func ToClassSessions(rows []TimetableRow) []schedule.ClassSession {
	if len(rows) == 0 {
		return nil
	}
	sessions := make([]schedule.ClassSession, 0, len(rows))
	for _, row := range rows {
		sessions = append(sessions, row.ToClassSession())
	}
	return sessions
}

// ToRooms maps room records into catalog entries.
func ToRooms(rows []RoomRow) []catalog.Room {
	if len(rows) == 0 {
		return nil
	}
	rooms := make([]catalog.Room, 0, len(rows))
	for _, row := range rows {
		rooms = append(rooms, catalog.Room{
			Name:      strings.TrimSpace(row.Name),
			ShortCode: strings.TrimSpace(row.ShortCode),
			Capacity:  row.Capacity,
		})
	}
	return rooms
}
