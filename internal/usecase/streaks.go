// Package usecase contains the business logic of the application.
package usecase

import (
	"time"

	"github.com/naka-gawa/profilegen/internal/domain"
)

// ComputeStreaks derives streak figures from a contribution calendar.
//
// The current streak is walked backwards from today. A zero-count today does
// not break a streak that ran through yesterday, so a user keeps their streak
// until the day is actually over. The longest streak is a forward scan
// requiring strictly consecutive contribution dates.
func ComputeStreaks(cal domain.Calendar, today time.Time) domain.Streaks {
	streaks := domain.Streaks{Total: cal.Total}
	if len(cal.Days) == 0 {
		return streaks
	}

	todayDate := dateOnly(today)

	// Current streak, newest day first.
	for i := len(cal.Days) - 1; i >= 0; i-- {
		day := cal.Days[i]
		date := dateOnly(day.Date)
		if date.After(todayDate) {
			continue
		}

		if daysBetween(date, todayDate) <= 1 {
			// Today or yesterday: the grace window for an active streak.
			if day.Count > 0 {
				if streaks.Current == 0 {
					streaks.CurrentEnd = date
				}
				streaks.Current++
				streaks.CurrentStart = date
			} else if streaks.Current > 0 {
				break
			}
			continue
		}

		// Older days only extend a streak that is already running.
		if day.Count == 0 || streaks.Current == 0 {
			break
		}
		streaks.Current++
		streaks.CurrentStart = date
	}

	// Longest streak, oldest day first.
	var (
		run      int
		runStart time.Time
		prev     time.Time
	)
	for _, day := range cal.Days {
		if day.Count == 0 {
			run = 0
			continue
		}
		date := dateOnly(day.Date)
		if run == 0 || daysBetween(prev, date) != 1 {
			run = 1
			runStart = date
		} else {
			run++
		}
		prev = date
		if run > streaks.Longest {
			streaks.Longest = run
			streaks.LongestStart = runStart
			streaks.LongestEnd = date
		}
	}

	return streaks
}

// dateOnly truncates a time to its calendar date in UTC.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the whole days from a to b (both date-truncated).
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
