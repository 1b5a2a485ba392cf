// Package export renders an availability grid into the scheduleData.json
// document consumed by the timetable frontend.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/room-availability/internal/application"
)

// DaySchedule is one day's worth of room availability in wire form.
type DaySchedule struct {
	Day   string         `json:"day"`
	Rooms []RoomSchedule `json:"rooms"`
}

// RoomSchedule is one room row; Availability holds 1 for a free slot and 0
// for an occupied one, one entry per grid slot.
type RoomSchedule struct {
	Room         string `json:"room"`
	Availability []int  `json:"availability"`
}

// Document converts a grid into the wire document, preserving day and room
// order.
func Document(grid application.Grid) []DaySchedule {
	document := make([]DaySchedule, 0, len(grid.Days))
	for _, dayGrid := range grid.Days {
		rooms := make([]RoomSchedule, 0, len(dayGrid.Rooms))
		for _, row := range dayGrid.Rooms {
			availability := make([]int, len(row.Free))
			for i, free := range row.Free {
				if free {
					availability[i] = 1
				}
			}
			rooms = append(rooms, RoomSchedule{
				Room:         row.Room.ShortCode,
				Availability: availability,
			})
		}
		document = append(document, DaySchedule{
			Day:   string(dayGrid.Day),
			Rooms: rooms,
		})
	}
	return document
}

// WriteFile marshals the grid document and writes it to path atomically: the
// JSON lands in a temporary file in the same directory and is renamed into
// place, so readers never observe a partial document.
func WriteFile(path string, grid application.Grid) error {
	payload, err := json.MarshalIndent(Document(grid), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schedule document: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temporary schedule file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("write temporary schedule file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temporary schedule file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace schedule file %s: %w", path, err)
	}
	return nil
}
