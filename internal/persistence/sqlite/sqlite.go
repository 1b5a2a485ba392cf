// Package sqlite stores a local mirror of the timetable in an embedded
// SQLite database. The mirror lets the generator run offline from the last
// successful scrape and doubles as the backing store for tests.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/example/room-availability/internal/persistence"
)

const schema = `
CREATE TABLE IF NOT EXISTS rooms (
    name       TEXT PRIMARY KEY,
    short_code TEXT NOT NULL DEFAULT '',
    capacity   INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS classes (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    sub_code   TEXT NOT NULL,
    class      TEXT NOT NULL,
    day        TEXT NOT NULL,
    start_time TEXT NOT NULL,
    end_time   TEXT NOT NULL,
    room       TEXT NOT NULL,
    teacher    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_classes_day_room ON classes (day, room);
`

// Source reads and writes the timetable mirror. It wraps a *sql.DB and is
// safe for concurrent use.
type Source struct {
	db *sql.DB
}

// Open opens (creating if necessary) the mirror at dsn and ensures the
// schema exists. Use ":memory:" for an ephemeral database.
func Open(ctx context.Context, dsn string) (*Source, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite mirror: %w", err)
	}
	// The embedded driver serializes writers; a single connection avoids
	// table-lock errors under concurrent refreshes.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize sqlite schema: %w", err)
	}
	return &Source{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Source) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// ReplaceSessions atomically swaps the mirrored class list for rows.
func (s *Source) ReplaceSessions(ctx context.Context, rows []persistence.TimetableRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin session replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM classes`); err != nil {
		return fmt.Errorf("clear mirrored classes: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO classes (sub_code, class, day, start_time, end_time, room, teacher)
VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare class insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx,
			row.SubjectCode, row.ClassLabel, row.Day,
			row.StartTime, row.EndTime, row.RoomName, row.TeacherName,
		); err != nil {
			return fmt.Errorf("insert mirrored class: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit session replace: %w", err)
	}
	return nil
}

// ReplaceRooms atomically swaps the mirrored room catalog for rooms.
func (s *Source) ReplaceRooms(ctx context.Context, rooms []persistence.RoomRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin room replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM rooms`); err != nil {
		return fmt.Errorf("clear mirrored rooms: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO rooms (name, short_code, capacity) VALUES (?, ?, ?)
ON CONFLICT(name) DO UPDATE SET short_code = excluded.short_code, capacity = excluded.capacity`)
	if err != nil {
		return fmt.Errorf("prepare room insert: %w", err)
	}
	defer stmt.Close()

	for _, room := range rooms {
		if _, err := stmt.ExecContext(ctx, room.Name, room.ShortCode, room.Capacity); err != nil {
			return fmt.Errorf("insert mirrored room: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit room replace: %w", err)
	}
	return nil
}

// ListSessions returns every mirrored class row in insertion order.
func (s *Source) ListSessions(ctx context.Context) ([]persistence.TimetableRow, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT sub_code, class, day, start_time, end_time, room, teacher
FROM classes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query mirrored classes: %w", err)
	}
	defer rows.Close()

	var result []persistence.TimetableRow
	for rows.Next() {
		var row persistence.TimetableRow
		if err := rows.Scan(
			&row.SubjectCode, &row.ClassLabel, &row.Day,
			&row.StartTime, &row.EndTime, &row.RoomName, &row.TeacherName,
		); err != nil {
			return nil, fmt.Errorf("scan mirrored class: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mirrored classes: %w", err)
	}
	return result, nil
}

// ListRooms returns the mirrored room catalog ordered by name.
func (s *Source) ListRooms(ctx context.Context) ([]persistence.RoomRow, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT name, short_code, capacity FROM rooms ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query mirrored rooms: %w", err)
	}
	defer rows.Close()

	var result []persistence.RoomRow
	for rows.Next() {
		var room persistence.RoomRow
		if err := rows.Scan(&room.Name, &room.ShortCode, &room.Capacity); err != nil {
			return nil, fmt.Errorf("scan mirrored room: %w", err)
		}
		result = append(result, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mirrored rooms: %w", err)
	}
	return result, nil
}
