package catalog

import "testing"

func TestShortCodeOf(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		want string
	}{
		{"4.46", "4.46"},
		{"4.46 - Computer Lab", "4.46"},
		{"2.62/63-Combined", "2.62/63"},
		{"  5.13 - Seminar ", "5.13"},
		{"Consultation", "Consultation"},
	}

	for _, tc := range cases {
		if got := ShortCodeOf(tc.name); got != tc.want {
			t.Fatalf("ShortCodeOf(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestCatalogLookup(t *testing.T) {
	t.Parallel()

	c := New([]Room{
		{Name: "4.46 - Computer Lab", Capacity: 30},
		{Name: "4.47 - Computer Lab", Capacity: 28},
		{Name: "4.46 - Overflow"}, // decorated duplicate of the same space
	})

	if c.Len() != 2 {
		t.Fatalf("expected 2 distinct rooms, got %d", c.Len())
	}

	room, ok := c.Lookup("4.46")
	if !ok {
		t.Fatalf("expected 4.46 to be present")
	}
	if room.Capacity != 30 {
		t.Fatalf("expected first entry to win, got capacity %d", room.Capacity)
	}

	if _, ok := c.Lookup("9.99"); ok {
		t.Fatalf("unexpected hit for unknown short code")
	}
}

func TestCatalogRoomsSortedByName(t *testing.T) {
	t.Parallel()

	c := New([]Room{
		{Name: "6.34 - Classroom"},
		{Name: "2.62 - Classroom"},
		{Name: "4.46 - Computer Lab"},
	})

	rooms := c.Rooms()
	for i := 1; i < len(rooms); i++ {
		if rooms[i-1].Name > rooms[i].Name {
			t.Fatalf("rooms not sorted by name: %q before %q", rooms[i-1].Name, rooms[i].Name)
		}
	}
}

func TestCatalogBookableExcludesPlaceholders(t *testing.T) {
	t.Parallel()

	c := New([]Room{
		{Name: "4.46 - Computer Lab"},
		{Name: "Consultation"},
		{Name: "Online"},
	})

	bookable := c.Bookable()
	if len(bookable) != 1 {
		t.Fatalf("expected 1 bookable room, got %d", len(bookable))
	}
	if bookable[0].ShortCode != "4.46" {
		t.Fatalf("unexpected bookable room %q", bookable[0].ShortCode)
	}
}

func TestDefaultGroupingRules(t *testing.T) {
	t.Parallel()

	rules := DefaultGroupingRules()
	if len(rules) != 5 {
		t.Fatalf("expected 5 grouping rules, got %d", len(rules))
	}

	byCombined := make(map[string][]string, len(rules))
	for _, rule := range rules {
		byCombined[rule.CombinedCode] = rule.ComponentCodes
	}
	components, ok := byCombined["4.467"]
	if !ok {
		t.Fatalf("expected rule for 4.467")
	}
	if len(components) != 2 || components[0] != "4.46" || components[1] != "4.47" {
		t.Fatalf("unexpected components for 4.467: %v", components)
	}

	// Mutating the returned rules must not affect the static table.
	rules[0].ComponentCodes[0] = "mutated"
	if DefaultGroupingRules()[0].ComponentCodes[0] == "mutated" {
		t.Fatalf("DefaultGroupingRules leaked internal state")
	}
}

func TestApplyGroupingExclusions(t *testing.T) {
	t.Parallel()

	rules := DefaultGroupingRules()

	t.Run("combined occupied hides components", func(t *testing.T) {
		t.Parallel()

		available := set("4.46", "4.47", "2.62")
		filtered := ApplyGroupingExclusions(available, rules)

		if _, ok := filtered["4.46"]; ok {
			t.Fatalf("expected 4.46 to be excluded while 4.467 is unavailable")
		}
		if _, ok := filtered["4.47"]; ok {
			t.Fatalf("expected 4.47 to be excluded while 4.467 is unavailable")
		}
		// 2.62/63 is also absent, so 2.62 is removed by the same rule.
		if _, ok := filtered["2.62"]; ok {
			t.Fatalf("expected 2.62 to be excluded while 2.62/63 is unavailable")
		}
	})

	t.Run("combined available keeps components", func(t *testing.T) {
		t.Parallel()

		available := set("4.467", "4.46", "4.47")
		filtered := ApplyGroupingExclusions(available, rules)
		for _, code := range []string{"4.467", "4.46", "4.47"} {
			if _, ok := filtered[code]; !ok {
				t.Fatalf("expected %s to remain available", code)
			}
		}
	})

	t.Run("component occupancy does not hide the combined room", func(t *testing.T) {
		t.Parallel()

		// 4.46 is busy (absent); 4.467 itself tested available.
		available := set("4.467", "4.47")
		filtered := ApplyGroupingExclusions(available, rules)
		if _, ok := filtered["4.467"]; !ok {
			t.Fatalf("combined room must not be hidden by component occupancy")
		}
		if _, ok := filtered["4.47"]; !ok {
			t.Fatalf("sibling component must remain available")
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()

		available := set("4.46", "4.47", "5.134", "5.13", "6.34")
		once := ApplyGroupingExclusions(available, rules)
		twice := ApplyGroupingExclusions(once, rules)
		if len(once) != len(twice) {
			t.Fatalf("expected idempotent filtering, got %d then %d entries", len(once), len(twice))
		}
		for code := range once {
			if _, ok := twice[code]; !ok {
				t.Fatalf("second pass removed %s", code)
			}
		}
	})

	t.Run("does not mutate the input set", func(t *testing.T) {
		t.Parallel()

		available := set("4.46")
		_ = ApplyGroupingExclusions(available, rules)
		if _, ok := available["4.46"]; !ok {
			t.Fatalf("input set was mutated")
		}
	})
}

func set(codes ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		out[code] = struct{}{}
	}
	return out
}
