// Package postgres reads the timetable from the hosted Postgres database
// populated by the scraper. The schema uses quoted mixed-case identifiers:
// a "classes" table with the scraper's column names and a "Rooms" catalog
// table.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/example/room-availability/internal/persistence"
)

// Source reads timetable data over a database/sql connection pool.
type Source struct {
	db *sql.DB
}

// Open connects to the database at url and verifies the connection.
func Open(ctx context.Context, url string) (*Source, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Source{db: db}, nil
}

// Close releases the connection pool.
func (s *Source) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// ListSessions returns every class row from the scraper's "classes" table.
func (s *Source) ListSessions(ctx context.Context) ([]persistence.TimetableRow, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT "SubCode", "Class", "Day", "StartTime", "EndTime", "Room", "Teacher"
FROM "classes"`)
	if err != nil {
		return nil, fmt.Errorf("query classes: %w", err)
	}
	defer rows.Close()

	var result []persistence.TimetableRow
	for rows.Next() {
		var row persistence.TimetableRow
		if err := rows.Scan(
			&row.SubjectCode, &row.ClassLabel, &row.Day,
			&row.StartTime, &row.EndTime, &row.RoomName, &row.TeacherName,
		); err != nil {
			return nil, fmt.Errorf("scan class row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate class rows: %w", err)
	}
	return result, nil
}

// ListRooms returns the room catalog from the "Rooms" table ordered by name.
func (s *Source) ListRooms(ctx context.Context) ([]persistence.RoomRow, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT "ShortCode", "Name" FROM "Rooms" ORDER BY "Name"`)
	if err != nil {
		return nil, fmt.Errorf("query rooms: %w", err)
	}
	defer rows.Close()

	var result []persistence.RoomRow
	for rows.Next() {
		var room persistence.RoomRow
		if err := rows.Scan(&room.ShortCode, &room.Name); err != nil {
			return nil, fmt.Errorf("scan room row: %w", err)
		}
		result = append(result, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate room rows: %w", err)
	}
	return result, nil
}
