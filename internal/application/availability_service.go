package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/example/room-availability/internal/catalog"
	"github.com/example/room-availability/internal/schedule"
	"github.com/example/room-availability/internal/timegrid"
)

// SnapshotProvider supplies the current timetable snapshot. *schedule.Store
// satisfies it; tests may swap in a fixed provider.
type SnapshotProvider interface {
	Current() *schedule.Snapshot
}

// AvailabilityService answers point-in-time availability questions, produces
// free-room listings, and builds the weekly availability grid. Every query is
// stateless against the immutable snapshot the provider returns; the service
// holds no timetable data of its own.
type AvailabilityService struct {
	snapshots SnapshotProvider
	rules     []catalog.GroupingRule
	now       func() time.Time
	logger    *slog.Logger
	cache     *availabilityCache
}

// NewAvailabilityService constructs the service with the provided snapshot
// source and grouping rules. Nil rules fall back to the static campus table.
func NewAvailabilityService(snapshots SnapshotProvider, rules []catalog.GroupingRule) *AvailabilityService {
	return NewAvailabilityServiceWithLogger(snapshots, rules, nil, nil)
}

// NewAvailabilityServiceWithLogger constructs the service with a specified
// logger and time source.
func NewAvailabilityServiceWithLogger(snapshots SnapshotProvider, rules []catalog.GroupingRule, now func() time.Time, logger *slog.Logger) *AvailabilityService {
	if rules == nil {
		rules = catalog.DefaultGroupingRules()
	}
	if now == nil {
		now = time.Now
	}
	return &AvailabilityService{
		snapshots: snapshots,
		rules:     rules,
		now:       now,
		logger:    defaultLogger(logger),
		cache:     newAvailabilityCache(30*time.Second, 256, now),
	}
}

func (s *AvailabilityService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AvailabilityService", operation, attrs...)
}

func (s *AvailabilityService) snapshot() *schedule.Snapshot {
	if s.snapshots == nil {
		return nil
	}
	return s.snapshots.Current()
}

// CheckAvailability reports whether a room is free for the half-open window
// [StartTime, EndTime) on the given day. When the room is occupied the result
// lists every overlapping session in ascending start order. Unknown rooms
// yield ErrRoomNotFound; reversed, equal, or malformed time ranges yield a
// *ValidationError.
func (s *AvailabilityService) CheckAvailability(ctx context.Context, params CheckAvailabilityParams) (result AvailabilityResult, err error) {
	if s == nil {
		err = fmt.Errorf("AvailabilityService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CheckAvailability",
		"room", params.RoomCode,
		"day", string(params.Day),
		"window", params.StartTime+"-"+params.EndTime,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "availability check failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("available", result.Available, "conflicts", len(result.Conflicts)).DebugContext(ctx, "availability checked")
	}()

	day, vErr := validateWindow(params.Day, params.StartTime, params.EndTime)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	snap := s.snapshot()
	if snap == nil || snap.Catalog().Len() == 0 {
		// Empty dataset: every query is simply available.
		result = AvailabilityResult{Available: true}
		return
	}

	if _, ok := snap.Catalog().Lookup(params.RoomCode); !ok {
		err = ErrRoomNotFound
		return
	}

	conflicts := schedule.FindConflicts(snap.SessionsFor(day, params.RoomCode), params.StartTime, params.EndTime)
	result = AvailabilityResult{
		Available: len(conflicts) == 0,
		Conflicts: toConflictDetails(conflicts),
	}
	return
}

// IsAvailableAt reports whether a room is free at a single instant of the
// weekly timetable: occupied when some session's half-open range contains the
// clock. The resolver has no wall-clock of its own; "now" versus "in N
// minutes" is entirely the caller's choice of clock.
func (s *AvailabilityService) IsAvailableAt(ctx context.Context, roomCode string, day schedule.Day, clock string) (bool, error) {
	if s == nil {
		return false, fmt.Errorf("AvailabilityService is nil")
	}

	parsedDay, ok := schedule.ParseDay(string(day))
	if !ok {
		vErr := &ValidationError{}
		vErr.add("day", "day must be one of the seven weekday names")
		return false, vErr
	}
	minute, ok := timegrid.MinuteOfDay(clock)
	if !ok {
		vErr := &ValidationError{}
		vErr.add("clock", "clock must be a zero-padded HH:mm string")
		return false, vErr
	}

	snap := s.snapshot()
	if snap == nil || snap.Catalog().Len() == 0 {
		return true, nil
	}
	if _, ok := snap.Catalog().Lookup(roomCode); !ok {
		return false, ErrRoomNotFound
	}

	for _, session := range snap.SessionsFor(parsedDay, roomCode) {
		start, sok := timegrid.MinuteOfDay(session.StartTime)
		end, eok := timegrid.MinuteOfDay(session.EndTime)
		if !sok || !eok {
			continue
		}
		if start <= minute && minute < end {
			return false, nil
		}
	}
	return true, nil
}

// ListAvailableRooms applies IsAvailableAt to every candidate room and returns
// those free at the instant, after the grouping exclusion pass has hidden
// component rooms whose combined room is unavailable. Unknown candidates are
// skipped; a bad entry never aborts the batch. Results are ordered by name.
func (s *AvailabilityService) ListAvailableRooms(ctx context.Context, params ListAvailableRoomsParams) (rooms []catalog.Room, err error) {
	if s == nil {
		err = fmt.Errorf("AvailabilityService is nil")
		return
	}

	logger := s.loggerWith(ctx, "ListAvailableRooms",
		"day", string(params.Day),
		"clock", params.Clock,
		"candidates", len(params.Candidates),
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list available rooms", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(rooms)).InfoContext(ctx, "available rooms listed")
	}()

	day, ok := schedule.ParseDay(string(params.Day))
	if !ok {
		vErr := &ValidationError{}
		vErr.add("day", "day must be one of the seven weekday names")
		err = vErr
		return
	}
	if _, ok := timegrid.MinuteOfDay(params.Clock); !ok {
		vErr := &ValidationError{}
		vErr.add("clock", "clock must be a zero-padded HH:mm string")
		err = vErr
		return
	}
	if len(params.Candidates) == 0 {
		return nil, nil
	}

	snap := s.snapshot()
	key := listCacheKey(snap.Fingerprint(), day, params.Clock, params.Candidates)
	if cached, hit := s.cache.Get(key); hit {
		rooms = cached
		return
	}

	available := make(map[string]struct{}, len(params.Candidates))
	byCode := make(map[string]catalog.Room, len(params.Candidates))
	for _, candidate := range params.Candidates {
		code := candidate.ShortCode
		if code == "" {
			code = catalog.ShortCodeOf(candidate.Name)
		}
		free, checkErr := s.IsAvailableAt(ctx, code, day, params.Clock)
		if checkErr != nil {
			if errors.Is(checkErr, ErrRoomNotFound) {
				logger.WarnContext(ctx, "skipping unknown candidate room", "room", code)
				continue
			}
			err = checkErr
			return
		}
		if free {
			available[code] = struct{}{}
			byCode[code] = candidate
		}
	}

	filtered := catalog.ApplyGroupingExclusions(available, s.rules)
	rooms = make([]catalog.Room, 0, len(filtered))
	for code := range filtered {
		rooms = append(rooms, byCode[code])
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Name < rooms[j].Name })

	s.cache.Store(key, rooms)
	return
}

// BuildAvailabilityGrid produces the full day x room x slot matrix for the
// visualization grid. Each (day, room) row is computed with one pass over the
// room's start-ordered session list; a slot abutting a session boundary stays
// available, matching the resolver's half-open overlap rule.
func (s *AvailabilityService) BuildAvailabilityGrid(ctx context.Context, params BuildGridParams) (grid Grid, err error) {
	if s == nil {
		err = fmt.Errorf("AvailabilityService is nil")
		return
	}

	logger := s.loggerWith(ctx, "BuildAvailabilityGrid")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to build availability grid", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("days", len(grid.Days), "slots", len(grid.Slots)).InfoContext(ctx, "availability grid built")
	}()

	snap := s.snapshot()

	days := params.Days
	if days == nil {
		days = schedule.Days()
	}
	rooms := params.Rooms
	if rooms == nil {
		rooms = snap.Catalog().Bookable()
	} else {
		rooms = append([]catalog.Room(nil), rooms...)
		sort.Slice(rooms, func(i, j int) bool { return rooms[i].Name < rooms[j].Name })
	}

	slots := timegrid.GridSlots()
	base, _ := timegrid.MinuteOfDay(slots[0])

	grid = Grid{Slots: slots, Days: make([]DayAvailability, 0, len(days))}
	for _, rawDay := range days {
		day, ok := schedule.ParseDay(string(rawDay))
		if !ok {
			// A malformed entry is skipped; the rest of the batch proceeds.
			logger.WarnContext(ctx, "skipping unknown day", "day", string(rawDay))
			continue
		}
		dayGrid := DayAvailability{Day: day, Rooms: make([]RoomAvailability, 0, len(rooms))}
		for _, room := range rooms {
			code := room.ShortCode
			if code == "" {
				code = catalog.ShortCodeOf(room.Name)
			}
			free := freeSlots(snap.SessionsFor(day, code), base, len(slots))
			dayGrid.Rooms = append(dayGrid.Rooms, RoomAvailability{Room: room, Free: free})
		}
		grid.Days = append(grid.Days, dayGrid)
	}
	return
}

// freeSlots marks the grid slots a session list occupies. Sessions arrive
// start-ordered, so the walk touches each session once and each slot at most
// once per overlapping session range. A slot is occupied when any part of a
// session falls inside it, so a session strictly within one slot blocks the
// whole slot even though IsAvailableAt still reports the uncovered instants
// of that slot as free; on half-hour-aligned timetable data the two views
// agree exactly.
func freeSlots(sessions []schedule.ClassSession, base, slotCount int) []bool {
	free := make([]bool, slotCount)
	for i := range free {
		free[i] = true
	}
	for _, session := range sessions {
		start, sok := timegrid.MinuteOfDay(session.StartTime)
		end, eok := timegrid.MinuteOfDay(session.EndTime)
		if !sok || !eok {
			continue
		}
		lo := floorDiv(start-base, timegrid.SlotMinutes)
		hi := ceilDiv(end-base, timegrid.SlotMinutes) - 1
		if lo < 0 {
			lo = 0
		}
		if hi >= slotCount {
			hi = slotCount - 1
		}
		for i := lo; i <= hi; i++ {
			free[i] = false
		}
	}
	return free
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}

func validateWindow(day schedule.Day, startTime, endTime string) (schedule.Day, *ValidationError) {
	vErr := &ValidationError{}

	parsedDay, ok := schedule.ParseDay(string(day))
	if !ok {
		vErr.add("day", "day must be one of the seven weekday names")
	}

	start, startOK := timegrid.MinuteOfDay(startTime)
	if !startOK {
		vErr.add("start_time", "start time must be a zero-padded HH:mm string")
	}
	end, endOK := timegrid.MinuteOfDay(endTime)
	if !endOK {
		vErr.add("end_time", "end time must be a zero-padded HH:mm string")
	}
	if startOK && endOK && start >= end {
		vErr.add("time", "start time must be before end time")
	}

	return parsedDay, vErr
}

func toConflictDetails(sessions []schedule.ClassSession) []ConflictDetail {
	if len(sessions) == 0 {
		return nil
	}
	details := make([]ConflictDetail, 0, len(sessions))
	for _, session := range sessions {
		details = append(details, ConflictDetail{
			Subject:   session.SubjectCode,
			Professor: session.TeacherName,
			StartTime: session.StartTime,
			EndTime:   session.EndTime,
			Room:      session.RoomCode,
			ClassType: session.ClassType,
		})
	}
	return details
}

func listCacheKey(fingerprint string, day schedule.Day, clock string, candidates []catalog.Room) string {
	codes := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		code := candidate.ShortCode
		if code == "" {
			code = catalog.ShortCodeOf(candidate.Name)
		}
		codes = append(codes, code)
	}
	sort.Strings(codes)

	builder := strings.Builder{}
	builder.WriteString(fingerprint)
	builder.WriteString("|")
	builder.WriteString(string(day))
	builder.WriteString("|")
	builder.WriteString(clock)
	builder.WriteString("|")
	builder.WriteString(strings.Join(codes, ","))
	return builder.String()
}
