package persistence

import "context"

// TimetableSource supplies the flat collections the engine builds its
// snapshot from. Implementations exist for the scraped CSV export, a local
// SQLite mirror, and the hosted Postgres database.
type TimetableSource interface {
	ListRooms(ctx context.Context) ([]RoomRow, error)
	ListSessions(ctx context.Context) ([]TimetableRow, error)
}
