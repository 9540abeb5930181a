package progress

import (
	"context"
	"fmt"
	"time"
)

// streakWindow bounds how many recent sessions are read for the streak.
// History never holds more than this many sessions.
const streakWindow = 50

// Streak returns the number of consecutive local calendar days, ending
// today, with at least one completed session.
func (s *Service) Streak(ctx context.Context) (int, error) {
	recs, err := s.sessions.Recent(ctx, streakWindow)
	if err != nil {
		return 0, fmt.Errorf("load sessions for streak: %w", err)
	}
	starts := make([]time.Time, 0, len(recs))
	for _, r := range recs {
		if r.CompletedAt == nil {
			continue
		}
		starts = append(starts, r.StartedAt)
	}
	return StreakAt(starts, s.now()), nil
}

// StreakAt counts consecutive days with a session, walking back from
// today's calendar day in today's location. A day without a session
// ends the walk, so no session today means a streak of 0.
func StreakAt(starts []time.Time, today time.Time) int {
	if len(starts) == 0 {
		return 0
	}
	loc := today.Location()

	days := make(map[civilDay]bool, len(starts))
	for _, t := range starts {
		days[civilDayOf(t.In(loc))] = true
	}

	// Step from noon so a DST shift can never skip or repeat a day.
	y, m, dd := today.Date()
	streak := 0
	for d := time.Date(y, m, dd, 12, 0, 0, 0, loc); days[civilDayOf(d)]; d = d.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

type civilDay struct {
	year  int
	month time.Month
	day   int
}

func civilDayOf(t time.Time) civilDay {
	y, m, d := t.Date()
	return civilDay{y, m, d}
}
