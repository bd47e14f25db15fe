package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/naka-gawa/profilegen/internal/domain"
)

// day is a test helper producing a UTC date.
func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// calendarEndingAt builds a calendar whose last entry falls on end, with
// one day per count walking backwards.
func calendarEndingAt(end time.Time, counts ...int) domain.Calendar {
	cal := domain.Calendar{}
	start := end.AddDate(0, 0, -(len(counts) - 1))
	for i, count := range counts {
		cal.Days = append(cal.Days, domain.ContributionDay{
			Date:  start.AddDate(0, 0, i),
			Count: count,
		})
		cal.Total += count
	}
	return cal
}

func TestComputeStreaks(t *testing.T) {
	today := day(2026, time.August, 28)

	testCases := []struct {
		name     string
		cal      domain.Calendar
		expected domain.Streaks
	}{
		{
			name:     "empty calendar - everything zero",
			cal:      domain.Calendar{},
			expected: domain.Streaks{},
		},
		{
			name: "active streak ending today",
			cal:  calendarEndingAt(today, 0, 2, 1, 3),
			expected: domain.Streaks{
				Total:        6,
				Current:      3,
				CurrentStart: day(2026, time.August, 26),
				CurrentEnd:   today,
				Longest:      3,
				LongestStart: day(2026, time.August, 26),
				LongestEnd:   today,
			},
		},
		{
			name: "grace day - zero today keeps the streak through yesterday",
			cal:  calendarEndingAt(today, 1, 1, 0),
			expected: domain.Streaks{
				Total:        2,
				Current:      2,
				CurrentStart: day(2026, time.August, 26),
				CurrentEnd:   day(2026, time.August, 27),
				Longest:      2,
				LongestStart: day(2026, time.August, 26),
				LongestEnd:   day(2026, time.August, 27),
			},
		},
		{
			name: "broken streak - two zero days end it",
			cal:  calendarEndingAt(today, 1, 1, 0, 0),
			expected: domain.Streaks{
				Total:        2,
				Current:      0,
				Longest:      2,
				LongestStart: day(2026, time.August, 25),
				LongestEnd:   day(2026, time.August, 26),
			},
		},
		{
			name: "longest streak lies in the past",
			cal:  calendarEndingAt(today, 1, 1, 1, 0, 1, 1),
			expected: domain.Streaks{
				Total:        5,
				Current:      2,
				CurrentStart: day(2026, time.August, 27),
				CurrentEnd:   today,
				Longest:      3,
				LongestStart: day(2026, time.August, 23),
				LongestEnd:   day(2026, time.August, 25),
			},
		},
		{
			name: "tied runs - the earlier one wins",
			cal:  calendarEndingAt(today, 1, 1, 0, 1, 1, 0, 0),
			expected: domain.Streaks{
				Total:        4,
				Current:      0,
				Longest:      2,
				LongestStart: day(2026, time.August, 22),
				LongestEnd:   day(2026, time.August, 23),
			},
		},
		{
			name: "single contribution today",
			cal:  calendarEndingAt(today, 1),
			expected: domain.Streaks{
				Total:        1,
				Current:      1,
				CurrentStart: today,
				CurrentEnd:   today,
				Longest:      1,
				LongestStart: today,
				LongestEnd:   today,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ComputeStreaks(tc.cal, today))
		})
	}
}

func TestComputeStreaks_FutureDaysIgnored(t *testing.T) {
	// Calendars from the GraphQL API can include the rest of the current
	// week; those days must not affect the current streak.
	today := day(2026, time.August, 28)
	cal := calendarEndingAt(today.AddDate(0, 0, 2), 1, 1, 0, 0)

	streaks := ComputeStreaks(cal, today)

	assert.Equal(t, 2, streaks.Current)
	assert.Equal(t, today, streaks.CurrentEnd)
}
