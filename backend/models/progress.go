package models

import "github.com/google/uuid"

// DailyScore is the per-day aggregate of a user's goals. One row per (user, date).
type DailyScore struct {
	Base
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_daily_scores_user_date" json:"user_id"`
	Date           string    `gorm:"size:10;not null;uniqueIndex:idx_daily_scores_user_date" json:"date"`
	Score          int       `gorm:"default:0" json:"score"`
	GoalsCompleted int       `gorm:"default:0" json:"goals_completed"`
	TotalGoals     int       `gorm:"default:0" json:"total_goals"`
}

type Streak struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

type HeatmapDay struct {
	Date           string `json:"date"`
	Score          int    `json:"score"`
	GoalsCompleted int    `json:"goals_completed"`
	TotalGoals     int    `json:"total_goals"`
	Level          int    `json:"level"`
}

type Heatmap struct {
	Days       []HeatmapDay `json:"days"`
	ActiveDays int          `json:"active_days"`
	Streak     Streak       `json:"streak"`
}
