package timegrid

import "testing"

func TestGridSlots(t *testing.T) {
	t.Parallel()

	slots := GridSlots()
	if len(slots) != 28 {
		t.Fatalf("expected 28 grid slots, got %d", len(slots))
	}
	if slots[0] != "08:30" {
		t.Fatalf("expected first slot 08:30, got %s", slots[0])
	}
	if slots[len(slots)-1] != "22:00" {
		t.Fatalf("expected last slot 22:00, got %s", slots[len(slots)-1])
	}

	// Mutating the returned slice must not leak into the canonical sequence.
	slots[0] = "00:00"
	if again := GridSlots(); again[0] != "08:30" {
		t.Fatalf("GridSlots returned a shared slice")
	}
}

func TestQueryBoundaries(t *testing.T) {
	t.Parallel()

	boundaries := QueryBoundaries()
	if len(boundaries) != 33 {
		t.Fatalf("expected 33 query boundaries, got %d", len(boundaries))
	}
	if boundaries[0] != "07:00" || boundaries[len(boundaries)-1] != "23:00" {
		t.Fatalf("unexpected boundary range: %s .. %s", boundaries[0], boundaries[len(boundaries)-1])
	}
}

func TestIndexOfAndClockAtRoundTrip(t *testing.T) {
	t.Parallel()

	for i := 0; i < SlotCount(); i++ {
		clock, ok := ClockAt(i)
		if !ok {
			t.Fatalf("ClockAt(%d) reported not found", i)
		}
		index, ok := IndexOf(clock)
		if !ok {
			t.Fatalf("IndexOf(%s) reported not found", clock)
		}
		if index != i {
			t.Fatalf("round trip mismatch: slot %d -> %s -> %d", i, clock, index)
		}
	}
}

func TestIndexOfRejectsNonSlotTimes(t *testing.T) {
	t.Parallel()

	cases := []string{"08:00", "08:45", "22:30", "23:59", "8:30", "banana", "", "08-30"}
	for _, clock := range cases {
		if _, ok := IndexOf(clock); ok {
			t.Fatalf("expected IndexOf(%q) to report not found", clock)
		}
	}
}

func TestClockAtOutOfRange(t *testing.T) {
	t.Parallel()

	if _, ok := ClockAt(-1); ok {
		t.Fatalf("expected not found for negative index")
	}
	if _, ok := ClockAt(SlotCount()); ok {
		t.Fatalf("expected not found past final slot")
	}
}

func TestMinuteOfDay(t *testing.T) {
	t.Parallel()

	cases := []struct {
		clock  string
		minute int
		ok     bool
	}{
		{"00:00", 0, true},
		{"08:30", 510, true},
		{"22:00", 1320, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"1:30", 0, false},
		{"ab:cd", 0, false},
		{"", 0, false},
	}

	for _, tc := range cases {
		minute, ok := MinuteOfDay(tc.clock)
		if ok != tc.ok {
			t.Fatalf("MinuteOfDay(%q) ok = %v, want %v", tc.clock, ok, tc.ok)
		}
		if ok && minute != tc.minute {
			t.Fatalf("MinuteOfDay(%q) = %d, want %d", tc.clock, minute, tc.minute)
		}
	}
}

func TestAddMinutes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		clock string
		n     int
		want  string
	}{
		{"09:00", 30, "09:30"},
		{"09:00", 90, "10:30"},
		{"23:30", 60, "00:30"},
		{"00:15", -30, "23:45"},
	}

	for _, tc := range cases {
		got, ok := AddMinutes(tc.clock, tc.n)
		if !ok {
			t.Fatalf("AddMinutes(%q, %d) reported malformed input", tc.clock, tc.n)
		}
		if got != tc.want {
			t.Fatalf("AddMinutes(%q, %d) = %s, want %s", tc.clock, tc.n, got, tc.want)
		}
	}

	if _, ok := AddMinutes("late", 30); ok {
		t.Fatalf("expected malformed clock to be rejected")
	}
}

func TestOverlapsHalfOpen(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     string
		want                           bool
	}{
		{"disjoint", "09:00", "10:00", "11:00", "12:00", false},
		{"abutting end to start", "09:00", "10:00", "10:00", "10:30", false},
		{"abutting start to end", "10:00", "10:30", "09:00", "10:00", false},
		{"contained", "09:00", "10:30", "09:30", "10:00", true},
		{"partial", "09:00", "10:00", "09:30", "10:30", true},
		{"identical", "09:00", "10:00", "09:00", "10:00", true},
		{"zero width query", "09:30", "09:30", "09:00", "10:00", false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
				t.Fatalf("Overlaps(%s-%s, %s-%s) = %v, want %v", tc.aStart, tc.aEnd, tc.bStart, tc.bEnd, got, tc.want)
			}
		})
	}
}

func TestOverlapsSymmetry(t *testing.T) {
	t.Parallel()

	ranges := [][2]string{
		{"08:30", "09:00"},
		{"09:00", "10:30"},
		{"10:00", "10:30"},
		{"10:30", "11:00"},
		{"07:00", "23:00"},
	}

	for _, a := range ranges {
		for _, b := range ranges {
			ab := Overlaps(a[0], a[1], b[0], b[1])
			ba := Overlaps(b[0], b[1], a[0], a[1])
			if ab != ba {
				t.Fatalf("overlap not symmetric for %v and %v", a, b)
			}
		}
	}
}

func TestOverlapsMalformedInput(t *testing.T) {
	t.Parallel()

	if Overlaps("09:00", "oops", "09:00", "10:00") {
		t.Fatalf("malformed range must not overlap")
	}
	if Overlaps("09:00", "10:00", "", "10:00") {
		t.Fatalf("malformed range must not overlap")
	}
}
