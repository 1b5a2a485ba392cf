package schedule

import "github.com/example/room-availability/internal/timegrid"

// FindConflicts returns every session whose time range overlaps the half-open
// query window [startTime, endTime). The input order is preserved, so callers
// holding a start-ordered session list receive conflicts in start order. A
// session abutting the window boundary does not conflict.
func FindConflicts(sessions []ClassSession, startTime, endTime string) []ClassSession {
	var conflicts []ClassSession
	for _, session := range sessions {
		if timegrid.Overlaps(session.StartTime, session.EndTime, startTime, endTime) {
			conflicts = append(conflicts, session)
		}
	}
	return conflicts
}
