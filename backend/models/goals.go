package models

import (
	"time"

	"github.com/google/uuid"
)

type GoalCategory string

const (
	CategoryCoding  GoalCategory = "Coding"
	CategoryWebDev  GoalCategory = "Web Development"
	CategoryStudy   GoalCategory = "Study"
	CategoryHealth  GoalCategory = "Health"
	CategoryReading GoalCategory = "Reading"
	CategoryGeneral GoalCategory = "General"
)

func (c GoalCategory) Valid() bool {
	switch c {
	case CategoryCoding, CategoryWebDev, CategoryStudy, CategoryHealth, CategoryReading, CategoryGeneral:
		return true
	}
	return false
}

type DailyGoal struct {
	Base
	UserID          uuid.UUID    `gorm:"type:uuid;index;not null" json:"user_id"`
	Title           string       `gorm:"not null" json:"title"`
	Category        GoalCategory `gorm:"default:General" json:"category"`
	Points          int          `gorm:"not null" json:"points"`
	IsCompleted     bool         `gorm:"default:false" json:"is_completed"`
	CompletedAt     *time.Time   `json:"completed_at,omitempty"`
	Date            string       `gorm:"size:10;index;not null" json:"date"`
	IsRecurring     bool         `gorm:"default:false" json:"is_recurring"`
	DurationMinutes int          `gorm:"default:0" json:"duration_minutes"`
	StartedAt       *time.Time   `json:"started_at,omitempty"`
}

// LockRemaining reports how long the goal stays locked after being started.
func (g DailyGoal) LockRemaining(now time.Time) time.Duration {
	if g.StartedAt == nil || g.DurationMinutes <= 0 {
		return 0
	}
	end := g.StartedAt.Add(time.Duration(g.DurationMinutes) * time.Minute)
	if rem := end.Sub(now); rem > 0 {
		return rem
	}
	return 0
}
