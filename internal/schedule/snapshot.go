package schedule

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/example/room-availability/internal/catalog"
	"github.com/example/room-availability/internal/timegrid"
)

// Snapshot is one immutable load of the weekly timetable: the session index
// grouped by day and room short code, plus the room catalog the sessions refer
// to. A snapshot is never mutated after Load returns; refreshes build a new
// one and swap it in through a Store.
type Snapshot struct {
	id          string
	fingerprint string
	loadedAt    time.Time
	catalog     *catalog.Catalog
	byDay       map[Day]map[string][]ClassSession
	sessions    int
	skipped     int
}

// Load builds a snapshot from a flat session list and the room catalog rows.
// Malformed sessions (unknown day, malformed clock, reversed or empty range)
// are skipped rather than rejected; SkippedSessions reports how many. An empty
// dataset is not an error.
func Load(sessions []ClassSession, rooms []catalog.Room) *Snapshot {
	snap := &Snapshot{
		id:       uuid.NewString(),
		loadedAt: time.Now(),
		catalog:  catalog.New(rooms),
		byDay:    make(map[Day]map[string][]ClassSession, len(orderedDays)),
	}

	kept := make([]ClassSession, 0, len(sessions))
	for _, session := range sessions {
		if !session.valid() {
			snap.skipped++
			continue
		}
		day, _ := ParseDay(string(session.Day))
		session.Day = day
		session.RoomCode = catalog.ShortCodeOf(session.RoomCode)
		kept = append(kept, session)
	}
	snap.sessions = len(kept)

	for _, session := range kept {
		rooms := snap.byDay[session.Day]
		if rooms == nil {
			rooms = make(map[string][]ClassSession)
			snap.byDay[session.Day] = rooms
		}
		rooms[session.RoomCode] = append(rooms[session.RoomCode], session)
	}
	for _, rooms := range snap.byDay {
		for code := range rooms {
			sortSessions(rooms[code])
		}
	}

	snap.fingerprint = fingerprintOf(kept, snap.catalog)
	return snap
}

func sortSessions(sessions []ClassSession) {
	sort.SliceStable(sessions, func(i, j int) bool {
		si, _ := timegrid.MinuteOfDay(sessions[i].StartTime)
		sj, _ := timegrid.MinuteOfDay(sessions[j].StartTime)
		if si != sj {
			return si < sj
		}
		ei, _ := timegrid.MinuteOfDay(sessions[i].EndTime)
		ej, _ := timegrid.MinuteOfDay(sessions[j].EndTime)
		if ei != ej {
			return ei < ej
		}
		return sessions[i].SubjectCode < sessions[j].SubjectCode
	})
}

// fingerprintOf hashes a canonical rendering of the dataset so refreshes can
// detect that nothing changed without comparing every record.
func fingerprintOf(sessions []ClassSession, cat *catalog.Catalog) string {
	lines := make([]string, 0, len(sessions)+cat.Len())
	for _, s := range sessions {
		lines = append(lines, strings.Join([]string{
			string(s.Day), s.RoomCode, s.StartTime, s.EndTime,
			s.SubjectCode, s.SectionLabel, s.ClassType, s.TeacherName,
		}, "\x1f"))
	}
	for _, room := range cat.Rooms() {
		lines = append(lines, strings.Join([]string{room.Name, room.ShortCode, fmt.Sprintf("%d", room.Capacity)}, "\x1f"))
	}
	sort.Strings(lines)

	sum := blake2b.Sum256([]byte(strings.Join(lines, "\x1e")))
	return hex.EncodeToString(sum[:])
}

// ID returns the unique identifier assigned to this snapshot at load time.
// It appears in logs to correlate queries with the dataset that answered them.
func (s *Snapshot) ID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// Fingerprint returns the content hash of the loaded dataset. Two snapshots
// built from identical data share a fingerprint even though their IDs differ.
func (s *Snapshot) Fingerprint() string {
	if s == nil {
		return ""
	}
	return s.fingerprint
}

// LoadedAt returns the instant the snapshot was built.
func (s *Snapshot) LoadedAt() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.loadedAt
}

// Catalog returns the room catalog loaded with this snapshot.
func (s *Snapshot) Catalog() *catalog.Catalog {
	if s == nil {
		return nil
	}
	return s.catalog
}

// SessionsFor returns the sessions for a day and room short code, ordered by
// start time. The returned slice is the caller's to keep.
func (s *Snapshot) SessionsFor(day Day, roomCode string) []ClassSession {
	if s == nil {
		return nil
	}
	rooms := s.byDay[day]
	if rooms == nil {
		return nil
	}
	sessions := rooms[roomCode]
	if len(sessions) == 0 {
		return nil
	}
	out := make([]ClassSession, len(sessions))
	copy(out, sessions)
	return out
}

// SessionCount reports how many sessions the snapshot indexed.
func (s *Snapshot) SessionCount() int {
	if s == nil {
		return 0
	}
	return s.sessions
}

// SkippedSessions reports how many input records were dropped as malformed.
func (s *Snapshot) SkippedSessions() int {
	if s == nil {
		return 0
	}
	return s.skipped
}
