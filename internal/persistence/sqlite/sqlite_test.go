package sqlite

import (
	"context"
	"testing"

	"github.com/example/room-availability/internal/persistence"
	"github.com/example/room-availability/internal/schedule"
	"github.com/example/room-availability/internal/testfixtures"
)

func openTestSource(t *testing.T) *Source {
	t.Helper()
	source, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open in-memory mirror: %v", err)
	}
	t.Cleanup(func() {
		if err := source.Close(); err != nil {
			t.Errorf("close mirror: %v", err)
		}
	})
	return source
}

func TestReplaceAndListSessions(t *testing.T) {
	ctx := context.Background()
	source := openTestSource(t)

	first := []persistence.TimetableRow{
		testfixtures.TimetableRow(testfixtures.NewSessionFixture(
			testfixtures.WithSessionSubject("CS101"),
			testfixtures.WithSessionWindow("09:00", "10:30"),
			testfixtures.WithSessionRoom("4.46 - Computer Lab"),
		)),
		testfixtures.TimetableRow(testfixtures.NewSessionFixture(
			testfixtures.WithSessionSubject("MATH201"),
			testfixtures.WithSessionDay(schedule.Tuesday),
			testfixtures.WithSessionWindow("14:00", "15:00"),
			testfixtures.WithSessionRoom("2.62 - Classroom"),
		)),
	}
	if err := source.ReplaceSessions(ctx, first); err != nil {
		t.Fatalf("ReplaceSessions returned error: %v", err)
	}

	listed, err := source.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions returned error: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(listed))
	}
	if listed[0] != first[0] || listed[1] != first[1] {
		t.Fatalf("mirrored rows differ from input: %+v", listed)
	}

	// A replace fully supersedes the previous contents.
	second := []persistence.TimetableRow{
		testfixtures.TimetableRow(testfixtures.NewSessionFixture(
			testfixtures.WithSessionSubject("PHYS110"),
			testfixtures.WithSessionDay(schedule.Wednesday),
			testfixtures.WithSessionWindow("18:30", "20:00"),
			testfixtures.WithSessionRoom("4.47 - Lab"),
		)),
	}
	if err := source.ReplaceSessions(ctx, second); err != nil {
		t.Fatalf("second ReplaceSessions returned error: %v", err)
	}
	listed, err = source.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions after replace returned error: %v", err)
	}
	if len(listed) != 1 || listed[0].SubjectCode != "PHYS110" {
		t.Fatalf("expected only the replacement row, got %+v", listed)
	}
}

func TestReplaceAndListRooms(t *testing.T) {
	ctx := context.Background()
	source := openTestSource(t)

	lab := testfixtures.NewRoomFixture(testfixtures.WithRoomName("4.47 - Lab"), testfixtures.WithRoomCapacity(30))
	computerLab := testfixtures.NewRoomFixture(testfixtures.WithRoomName("4.46 - Computer Lab"), testfixtures.WithRoomCapacity(24))
	rooms := []persistence.RoomRow{
		{Name: lab.Name, ShortCode: lab.ShortCode, Capacity: lab.Capacity},
		{Name: computerLab.Name, ShortCode: computerLab.ShortCode, Capacity: computerLab.Capacity},
	}
	if err := source.ReplaceRooms(ctx, rooms); err != nil {
		t.Fatalf("ReplaceRooms returned error: %v", err)
	}

	listed, err := source.ListRooms(ctx)
	if err != nil {
		t.Fatalf("ListRooms returned error: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(listed))
	}
	if listed[0].Name != "4.46 - Computer Lab" || listed[1].Name != "4.47 - Lab" {
		t.Fatalf("expected rooms ordered by name, got %+v", listed)
	}
	if listed[0].Capacity != 24 {
		t.Fatalf("expected capacity to round-trip, got %d", listed[0].Capacity)
	}
}

func TestListOnEmptyMirror(t *testing.T) {
	ctx := context.Background()
	source := openTestSource(t)

	sessions, err := source.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions on empty mirror returned error: %v", err)
	}
	if len(sessions) != 0 {
		t.Fatalf("expected no sessions, got %d", len(sessions))
	}

	rooms, err := source.ListRooms(ctx)
	if err != nil {
		t.Fatalf("ListRooms on empty mirror returned error: %v", err)
	}
	if len(rooms) != 0 {
		t.Fatalf("expected no rooms, got %d", len(rooms))
	}
}
