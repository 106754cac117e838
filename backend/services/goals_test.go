package services

import (
	"context"
	"testing"
	"time"

	"devtracker/backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type goalFixture struct {
	svc      *GoalService
	goals    *fakeGoals
	scores   *fakeScores
	profiles *fakeProfiles
	now      time.Time
}

func newGoalFixture(t *testing.T) *goalFixture {
	t.Helper()
	f := &goalFixture{goals: &fakeGoals{}, scores: newFakeScores(), profiles: &fakeProfiles{}, now: testNow}
	logger := zaptest.NewLogger(t)
	clock := func() time.Time { return f.now }

	scoreSvc := NewScoreService(f.scores, f.profiles, logger)
	scoreSvc.now = clock
	f.svc = NewGoalService(f.goals, scoreSvc, logger)
	f.svc.now = clock
	return f
}

func intPtr(v int) *int { return &v }

func TestGoalCreateValidates(t *testing.T) {
	f := newGoalFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := f.svc.Create(ctx, userID, NewGoal{Title: "   "})
	assert.ErrorIs(t, err, ErrInvalidGoal)

	_, err = f.svc.Create(ctx, userID, NewGoal{Title: "Run", Category: "Knitting"})
	assert.ErrorIs(t, err, ErrInvalidGoal)

	_, err = f.svc.Create(ctx, userID, NewGoal{Title: "Run", Points: -5})
	assert.ErrorIs(t, err, ErrInvalidGoal)

	goal, err := f.svc.Create(ctx, userID, NewGoal{Title: "Run", DurationMinutes: -10})
	require.NoError(t, err)
	assert.Equal(t, models.CategoryGeneral, goal.Category)
	assert.Equal(t, 10, goal.Points)
	assert.Equal(t, 0, goal.DurationMinutes)
	assert.Equal(t, "2026-10-14", goal.Date)

	score := f.scores.rows[scoreKey{userID, "2026-10-14"}]
	assert.Equal(t, 1, score.TotalGoals)
	assert.Equal(t, 0, score.Score)
}

func TestGoalToggleRecomputesScore(t *testing.T) {
	f := newGoalFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	a, err := f.svc.Create(ctx, userID, NewGoal{Title: "Read", Category: models.CategoryReading, Points: 10})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, userID, NewGoal{Title: "Gym", Category: models.CategoryHealth, Points: 20})
	require.NoError(t, err)

	toggled, err := f.svc.Toggle(ctx, userID, a.ID, nil)
	require.NoError(t, err)
	assert.True(t, toggled.IsCompleted)
	require.NotNil(t, toggled.CompletedAt)

	score := f.scores.rows[scoreKey{userID, "2026-10-14"}]
	assert.Equal(t, 10, score.Score)
	assert.Equal(t, 1, score.GoalsCompleted)
	assert.Equal(t, 2, score.TotalGoals)
	assert.Equal(t, models.Streak{Current: 1, Max: 1}, f.profiles.streaks[userID])

	untoggled, err := f.svc.Toggle(ctx, userID, a.ID, nil)
	require.NoError(t, err)
	assert.False(t, untoggled.IsCompleted)
	assert.Nil(t, untoggled.CompletedAt)

	score = f.scores.rows[scoreKey{userID, "2026-10-14"}]
	assert.Equal(t, 0, score.Score)
	assert.Equal(t, models.Streak{}, f.profiles.streaks[userID])
}

func TestGoalToggleLocked(t *testing.T) {
	f := newGoalFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	goal, err := f.svc.Create(ctx, userID, NewGoal{Title: "Deep work", DurationMinutes: 60})
	require.NoError(t, err)

	// Never started: completing is refused.
	_, err = f.svc.Toggle(ctx, userID, goal.ID, nil)
	assert.ErrorIs(t, err, ErrGoalLocked)
	stored, err := f.goals.Get(ctx, userID, goal.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsCompleted)

	_, err = f.svc.Start(ctx, userID, goal.ID)
	require.NoError(t, err)

	f.now = f.now.Add(30 * time.Minute)
	_, err = f.svc.Toggle(ctx, userID, goal.ID, nil)
	assert.ErrorIs(t, err, ErrGoalLocked)

	f.now = f.now.Add(31 * time.Minute)
	toggled, err := f.svc.Toggle(ctx, userID, goal.ID, nil)
	require.NoError(t, err)
	assert.True(t, toggled.IsCompleted)
}

func TestGoalToggleVerification(t *testing.T) {
	f := newGoalFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	coding, err := f.svc.Create(ctx, userID, NewGoal{Title: "LeetCode", Category: models.CategoryCoding})
	require.NoError(t, err)
	web, err := f.svc.Create(ctx, userID, NewGoal{Title: "Lectures", Category: models.CategoryWebDev})
	require.NoError(t, err)

	_, err = f.svc.Toggle(ctx, userID, coding.ID, nil)
	assert.ErrorIs(t, err, ErrVerificationFailed)
	_, err = f.svc.Toggle(ctx, userID, coding.ID, intPtr(2))
	assert.ErrorIs(t, err, ErrVerificationFailed)
	_, err = f.svc.Toggle(ctx, userID, coding.ID, intPtr(3))
	assert.NoError(t, err)

	_, err = f.svc.Toggle(ctx, userID, web.ID, intPtr(3))
	assert.ErrorIs(t, err, ErrVerificationFailed)
	_, err = f.svc.Toggle(ctx, userID, web.ID, intPtr(4))
	assert.NoError(t, err)

	// undoing needs no verification
	_, err = f.svc.Toggle(ctx, userID, coding.ID, nil)
	assert.NoError(t, err)
}

func TestGoalTodaySweepsOldGoals(t *testing.T) {
	f := newGoalFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	for _, date := range []string{"2026-10-01", "2026-10-07", "2026-10-14"} {
		require.NoError(t, f.goals.Create(ctx, &models.DailyGoal{UserID: userID, Title: date, Points: 1, Date: date}))
	}

	today, err := f.svc.Today(ctx, userID)
	require.NoError(t, err)
	require.Len(t, today, 1)
	assert.Equal(t, "2026-10-14", today[0].Date)

	var dates []string
	for _, g := range f.goals.rows {
		dates = append(dates, g.Date)
	}
	assert.ElementsMatch(t, []string{"2026-10-07", "2026-10-14"}, dates)
}

func TestGoalDeleteRecomputesScore(t *testing.T) {
	f := newGoalFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	goal, err := f.svc.Create(ctx, userID, NewGoal{Title: "Walk", Points: 15})
	require.NoError(t, err)
	_, err = f.svc.Toggle(ctx, userID, goal.ID, nil)
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, userID, goal.ID))
	score := f.scores.rows[scoreKey{userID, "2026-10-14"}]
	assert.Equal(t, 0, score.Score)
	assert.Equal(t, 0, score.TotalGoals)
}
