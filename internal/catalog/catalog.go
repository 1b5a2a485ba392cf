// Package catalog holds the immutable room reference data: the set of known
// rooms and the static grouping table linking combined rooms to the component
// rooms that share their physical footprint.
package catalog

import (
	"sort"
	"strings"
)

// Room is a catalog entry for a bookable space. ShortCode is the canonical
// identifier used for comparisons and grouping; Name may carry extra
// decoration (a "-" suffix) that never affects identity. Capacity zero means
// the capacity is unknown.
type Room struct {
	Name      string
	ShortCode string
	Capacity  int
}

// Room names used for entries that are not physical bookable spaces. The
// timetable marks consultations and online-only classes with these names and
// the engine's callers exclude them from candidate sets.
const (
	consultationName = "Consultation"
	onlineName       = "Online"
)

// ShortCodeOf extracts the canonical short code from a decorated room name:
// the text before the first "-", trimmed.
func ShortCodeOf(name string) string {
	if idx := strings.Index(name, "-"); idx >= 0 {
		return strings.TrimSpace(name[:idx])
	}
	return strings.TrimSpace(name)
}

// Catalog is the immutable set of known rooms, indexed by short code. It is
// rebuilt wholesale on each data refresh and read-only thereafter.
type Catalog struct {
	rooms  []Room
	byCode map[string]Room
}

// New builds a catalog from the supplied rooms. Entries with an empty short
// code derive it from the name. When several entries share a short code the
// first one wins; the duplicates are decorated variants of the same space.
func New(rooms []Room) *Catalog {
	c := &Catalog{
		rooms:  make([]Room, 0, len(rooms)),
		byCode: make(map[string]Room, len(rooms)),
	}
	for _, room := range rooms {
		if room.ShortCode == "" {
			room.ShortCode = ShortCodeOf(room.Name)
		}
		if room.ShortCode == "" {
			continue
		}
		if _, ok := c.byCode[room.ShortCode]; ok {
			continue
		}
		c.byCode[room.ShortCode] = room
		c.rooms = append(c.rooms, room)
	}
	sort.Slice(c.rooms, func(i, j int) bool {
		return c.rooms[i].Name < c.rooms[j].Name
	})
	return c
}

// Lookup returns the room registered under the given short code.
func (c *Catalog) Lookup(shortCode string) (Room, bool) {
	if c == nil {
		return Room{}, false
	}
	room, ok := c.byCode[shortCode]
	return room, ok
}

// Rooms returns all catalog entries ordered by name.
func (c *Catalog) Rooms() []Room {
	if c == nil {
		return nil
	}
	out := make([]Room, len(c.rooms))
	copy(out, c.rooms)
	return out
}

// Bookable returns the catalog entries that represent physical bookable rooms,
// excluding consultation and online-only placeholders.
func (c *Catalog) Bookable() []Room {
	if c == nil {
		return nil
	}
	out := make([]Room, 0, len(c.rooms))
	for _, room := range c.rooms {
		if room.Name == consultationName || room.Name == onlineName {
			continue
		}
		out = append(out, room)
	}
	return out
}

// Len reports the number of distinct rooms in the catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.rooms)
}
