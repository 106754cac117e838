package services

import (
	"time"

	"devtracker/backend/models"
)

// heatLevel buckets a day by how much of its goal list was finished.
func heatLevel(s models.DailyScore) int {
	if s.Score <= 0 {
		return 0
	}
	if s.TotalGoals > 0 && s.GoalsCompleted == s.TotalGoals {
		return 4
	}
	if s.GoalsCompleted <= 0 || s.TotalGoals <= 0 {
		return 0
	}
	ratio := float64(s.GoalsCompleted) / float64(s.TotalGoals)
	switch {
	case ratio > 0.7:
		return 3
	case ratio > 0.4:
		return 2
	default:
		return 1
	}
}

// BuildHeatmap lays out one entry per day from a year ago through today.
func BuildHeatmap(scores []models.DailyScore, now time.Time) models.Heatmap {
	byDate := make(map[string]models.DailyScore, len(scores))
	for _, s := range scores {
		byDate[s.Date] = s
	}

	today := civil(now)
	var hm models.Heatmap
	var active []time.Time
	for d := today.AddDate(-1, 0, 0); !d.After(today); d = d.AddDate(0, 0, 1) {
		date := FormatDate(d)
		s := byDate[date]
		level := heatLevel(s)
		hm.Days = append(hm.Days, models.HeatmapDay{
			Date:           date,
			Score:          s.Score,
			GoalsCompleted: s.GoalsCompleted,
			TotalGoals:     s.TotalGoals,
			Level:          level,
		})
		if level > 0 {
			hm.ActiveDays++
			active = append(active, d)
		}
	}
	hm.Streak = ComputeStreak(active, now)
	return hm
}
