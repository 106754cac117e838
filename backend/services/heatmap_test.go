package services

import (
	"testing"

	"devtracker/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeatLevel(t *testing.T) {
	tests := []struct {
		score     models.DailyScore
		wantLevel int
	}{
		{models.DailyScore{}, 0},
		{models.DailyScore{Score: 10, GoalsCompleted: 2, TotalGoals: 2}, 4},
		{models.DailyScore{Score: 10, GoalsCompleted: 4, TotalGoals: 5}, 3},
		{models.DailyScore{Score: 10, GoalsCompleted: 1, TotalGoals: 2}, 2},
		{models.DailyScore{Score: 10, GoalsCompleted: 1, TotalGoals: 4}, 1},
		{models.DailyScore{Score: 0, GoalsCompleted: 0, TotalGoals: 4}, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.wantLevel, heatLevel(tt.score), "%+v", tt.score)
	}
}

func TestBuildHeatmap(t *testing.T) {
	scores := []models.DailyScore{
		{Date: "2026-10-14", Score: 10, GoalsCompleted: 1, TotalGoals: 1},
		{Date: "2026-10-13", Score: 5, GoalsCompleted: 1, TotalGoals: 3},
		{Date: "2026-10-10", Score: 5, GoalsCompleted: 1, TotalGoals: 1},
		{Date: "2024-01-01", Score: 99, GoalsCompleted: 1, TotalGoals: 1},
	}

	hm := BuildHeatmap(scores, testNow)

	require.NotEmpty(t, hm.Days)
	assert.Equal(t, "2025-10-14", hm.Days[0].Date)
	last := hm.Days[len(hm.Days)-1]
	assert.Equal(t, "2026-10-14", last.Date)
	assert.Equal(t, 4, last.Level)
	assert.Equal(t, 3, hm.ActiveDays)
	assert.Equal(t, models.Streak{Current: 2, Max: 2}, hm.Streak)
}
