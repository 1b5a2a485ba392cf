package schedule

import "testing"

func TestFindConflicts(t *testing.T) {
	t.Parallel()

	sessions := []ClassSession{
		{SubjectCode: "CS101", Day: Monday, StartTime: "09:00", EndTime: "10:30", RoomCode: "4.46"},
		{SubjectCode: "MATH201", Day: Monday, StartTime: "10:30", EndTime: "12:00", RoomCode: "4.46"},
		{SubjectCode: "PHYS110", Day: Monday, StartTime: "11:30", EndTime: "13:00", RoomCode: "4.46"},
	}

	t.Run("returns every overlapping session in order", func(t *testing.T) {
		t.Parallel()

		conflicts := FindConflicts(sessions, "10:00", "12:00")
		if len(conflicts) != 3 {
			t.Fatalf("expected 3 conflicts, got %d", len(conflicts))
		}
		if conflicts[0].SubjectCode != "CS101" || conflicts[1].SubjectCode != "MATH201" || conflicts[2].SubjectCode != "PHYS110" {
			t.Fatalf("conflicts out of order: %v", conflicts)
		}
	})

	t.Run("abutting window does not conflict", func(t *testing.T) {
		t.Parallel()

		if got := FindConflicts(sessions[:1], "10:30", "11:00"); len(got) != 0 {
			t.Fatalf("expected no conflict for window abutting session end, got %v", got)
		}
		if got := FindConflicts(sessions[:1], "08:30", "09:00"); len(got) != 0 {
			t.Fatalf("expected no conflict for window abutting session start, got %v", got)
		}
	})

	t.Run("overlapping window conflicts", func(t *testing.T) {
		t.Parallel()

		got := FindConflicts(sessions[:1], "09:30", "10:00")
		if len(got) != 1 {
			t.Fatalf("expected 1 conflict, got %d", len(got))
		}
		if got[0].SubjectCode != "CS101" {
			t.Fatalf("unexpected conflict %v", got[0])
		}
	})

	t.Run("empty session list", func(t *testing.T) {
		t.Parallel()

		if got := FindConflicts(nil, "09:00", "10:00"); len(got) != 0 {
			t.Fatalf("expected no conflicts against empty list, got %v", got)
		}
	})
}
