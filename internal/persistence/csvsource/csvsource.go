// Package csvsource reads the scraped timetable CSV export. The file carries
// one class meeting per row with the columns SubCode, Class, Day, StartTime,
// EndTime, Room and Teacher, in any column order.
package csvsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/go-playground/validator/v10"

	"github.com/example/room-availability/internal/persistence"
)

var requiredColumns = []string{"SubCode", "Class", "Day", "StartTime", "EndTime", "Room", "Teacher"}

// record mirrors one CSV row for validation purposes.
type record struct {
	SubCode   string `validate:"required"`
	Class     string `validate:"required"`
	Day       string `validate:"required"`
	StartTime string `validate:"required,len=5"`
	EndTime   string `validate:"required,len=5"`
	Room      string `validate:"required"`
	Teacher   string `validate:"required"`
}

// Source reads timetable rows from a CSV file on disk. It is safe for
// concurrent use; each call re-reads the file so a refreshed export is picked
// up without restarting.
type Source struct {
	path     string
	validate *validator.Validate
	skipped  atomic.Int64
}

// New returns a source reading from path. The file is not opened until the
// first List call.
func New(path string) *Source {
	return &Source{
		path:     path,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Skipped reports how many rows the most recent ListSessions call dropped
// because they failed validation.
func (s *Source) Skipped() int {
	if s == nil {
		return 0
	}
	return int(s.skipped.Load())
}

// ListSessions reads every valid row from the CSV file. Rows that fail
// validation are skipped and counted rather than aborting the read.
func (s *Source) ListSessions(ctx context.Context) ([]persistence.TimetableRow, error) {
	records, skipped, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	s.skipped.Store(int64(skipped))

	rows := make([]persistence.TimetableRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, persistence.TimetableRow{
			SubjectCode: rec.SubCode,
			ClassLabel:  rec.Class,
			Day:         rec.Day,
			StartTime:   rec.StartTime,
			EndTime:     rec.EndTime,
			RoomName:    rec.Room,
			TeacherName: rec.Teacher,
		})
	}
	return rows, nil
}

// ListRooms derives the room catalog from the distinct room names appearing
// in the CSV. The export has no dedicated room table, so capacity is unknown.
func (s *Source) ListRooms(ctx context.Context) ([]persistence.RoomRow, error) {
	records, _, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(records))
	names := make([]string, 0, len(records))
	for _, rec := range records {
		name := strings.TrimSpace(rec.Room)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)

	rooms := make([]persistence.RoomRow, 0, len(names))
	for _, name := range names {
		rooms = append(rooms, persistence.RoomRow{Name: name})
	}
	return rooms, nil
}

func (s *Source) read(ctx context.Context) ([]record, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, fmt.Errorf("open timetable csv %s: %w", s.path, persistence.ErrNotFound)
		}
		return nil, 0, fmt.Errorf("open timetable csv %s: %w", s.path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read timetable csv header: %w", err)
	}
	columns, err := columnIndexes(header)
	if err != nil {
		return nil, 0, err
	}

	var records []record
	skipped := 0
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if errors.Is(err, csv.ErrFieldCount) {
			// A row with the wrong number of fields is a bad row, not a bad
			// file; it is skipped and counted like any other invalid row.
			skipped++
			continue
		}
		if err != nil {
			return nil, 0, fmt.Errorf("read timetable csv row: %w", err)
		}

		rec := record{
			SubCode:   fieldAt(fields, columns["SubCode"]),
			Class:     fieldAt(fields, columns["Class"]),
			Day:       fieldAt(fields, columns["Day"]),
			StartTime: fieldAt(fields, columns["StartTime"]),
			EndTime:   fieldAt(fields, columns["EndTime"]),
			Room:      fieldAt(fields, columns["Room"]),
			Teacher:   fieldAt(fields, columns["Teacher"]),
		}
		if err := s.validate.Struct(rec); err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

func columnIndexes(header []string) (map[string]int, error) {
	indexes := make(map[string]int, len(header))
	for i, name := range header {
		indexes[strings.TrimSpace(name)] = i
	}
	for _, column := range requiredColumns {
		if _, ok := indexes[column]; !ok {
			return nil, fmt.Errorf("timetable csv is missing column %q", column)
		}
	}
	return indexes, nil
}

func fieldAt(fields []string, index int) string {
	if index < 0 || index >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[index])
}
