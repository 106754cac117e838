// Package services holds the scoring rules of the dashboard: daily score
// aggregation, streaks, the activity heatmap and the goal lifecycle.
package services

import (
	"sort"
	"time"

	"devtracker/backend/models"
)

const day = 24 * time.Hour

// civil returns the calendar date of t, as a UTC midnight.
func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// activeDays normalizes, de-duplicates and sorts days newest first.
func activeDays(dates []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		c := civil(d)
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		days = append(days, c)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	return days
}

// ComputeStreak returns the current and longest runs of consecutive days.
// The current run only counts if its newest day is today or yesterday.
func ComputeStreak(dates []time.Time, now time.Time) models.Streak {
	days := activeDays(dates)
	if len(days) == 0 {
		return models.Streak{}
	}

	var streak models.Streak
	today := civil(now)
	if newest := days[0]; newest.Equal(today) || newest.Equal(today.Add(-day)) {
		streak.Current = 1
		check := newest
		for _, d := range days[1:] {
			check = check.Add(-day)
			if !d.Equal(check) {
				break
			}
			streak.Current++
		}
	}

	run := 0
	for i, d := range days {
		if i > 0 && days[i-1].Sub(d) == day {
			run++
		} else {
			run = 1
		}
		if run > streak.Max {
			streak.Max = run
		}
	}
	return streak
}

// CalendarStreak walks a submission calendar (UTC day start in epoch seconds
// to submission count) back from today or yesterday.
func CalendarStreak(calendar map[int64]int, now time.Time) int {
	days := make(map[time.Time]struct{}, len(calendar))
	for ts, count := range calendar {
		if count <= 0 {
			continue
		}
		days[civil(time.Unix(ts, 0).UTC())] = struct{}{}
	}

	check := civil(now)
	if _, ok := days[check]; !ok {
		check = check.Add(-day)
		if _, ok := days[check]; !ok {
			return 0
		}
	}

	streak := 0
	for {
		if _, ok := days[check]; !ok {
			return streak
		}
		streak++
		check = check.Add(-day)
	}
}

// ParseDate reads a YYYY-MM-DD date.
func ParseDate(date string) (time.Time, error) {
	return time.Parse(models.DateLayout, date)
}

// FormatDate renders the calendar date of t.
func FormatDate(t time.Time) string {
	return t.Format(models.DateLayout)
}
