package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"devtracker/backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestScoreService(t *testing.T) (*ScoreService, *fakeScores, *fakeProfiles) {
	t.Helper()
	scores, profiles := newFakeScores(), &fakeProfiles{}
	svc := NewScoreService(scores, profiles, zaptest.NewLogger(t))
	svc.now = func() time.Time { return testNow }
	return svc, scores, profiles
}

func TestAggregateGoals(t *testing.T) {
	goals := []models.DailyGoal{
		{Points: 10, IsCompleted: true},
		{Points: 20, IsCompleted: false},
		{Points: 5, IsCompleted: true},
	}
	score, completed, total := AggregateGoals(goals)
	assert.Equal(t, 15, score)
	assert.Equal(t, 2, completed)
	assert.Equal(t, 3, total)
}

func TestUpdateDailyScoreIsIdempotent(t *testing.T) {
	svc, scores, _ := newTestScoreService(t)
	ctx := context.Background()
	userID := uuid.New()
	goals := []models.DailyGoal{{Points: 10, IsCompleted: true}, {Points: 20}}

	require.NoError(t, svc.UpdateDailyScore(ctx, userID, "2026-10-14", goals))
	first := scores.rows[scoreKey{userID, "2026-10-14"}]
	require.NoError(t, svc.UpdateDailyScore(ctx, userID, "2026-10-14", goals))
	second := scores.rows[scoreKey{userID, "2026-10-14"}]

	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.GoalsCompleted, second.GoalsCompleted)
	assert.Equal(t, first.TotalGoals, second.TotalGoals)
	assert.Len(t, scores.rows, 1)
}

func TestUpdateDailyScoreOverwrites(t *testing.T) {
	svc, scores, _ := newTestScoreService(t)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, svc.UpdateDailyScore(ctx, userID, "2026-10-14", []models.DailyGoal{
		{Points: 50, IsCompleted: true}, {Points: 50, IsCompleted: true},
	}))
	require.NoError(t, svc.UpdateDailyScore(ctx, userID, "2026-10-14", []models.DailyGoal{
		{Points: 5, IsCompleted: true},
	}))

	got := scores.rows[scoreKey{userID, "2026-10-14"}]
	assert.Equal(t, models.DailyScore{UserID: userID, Date: "2026-10-14", Score: 5, GoalsCompleted: 1, TotalGoals: 1}, got)
}

func TestUpdateDailyScorePropagatesErrors(t *testing.T) {
	svc, scores, _ := newTestScoreService(t)
	scores.err = errors.New("connection reset")

	err := svc.UpdateDailyScore(context.Background(), uuid.New(), "2026-10-14", nil)
	assert.ErrorIs(t, err, scores.err)
}

func TestUpdateProfileStreaks(t *testing.T) {
	svc, scores, profiles := newTestScoreService(t)
	ctx := context.Background()
	userID := uuid.New()

	for _, date := range []string{"2026-10-13", "2026-10-12", "2026-10-11", "2026-10-05"} {
		scores.rows[scoreKey{userID, date}] = models.DailyScore{UserID: userID, Date: date, Score: 10}
	}
	scores.rows[scoreKey{userID, "2026-10-14"}] = models.DailyScore{UserID: userID, Date: "2026-10-14", Score: 0}

	streak, err := svc.UpdateProfileStreaks(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, models.Streak{Current: 3, Max: 3}, streak)
	assert.Equal(t, streak, profiles.streaks[userID])
}

func TestUpdateProfileStreaksWriteFailure(t *testing.T) {
	svc, _, profiles := newTestScoreService(t)
	profiles.err = errors.New("read-only")

	_, err := svc.UpdateProfileStreaks(context.Background(), uuid.New())
	assert.ErrorIs(t, err, profiles.err)
}
