package services

import (
	"context"
	"fmt"
	"time"

	"devtracker/backend/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ScoreStore is the persistence ScoreService needs.
type ScoreStore interface {
	Upsert(ctx context.Context, score *models.DailyScore) error
	Active(ctx context.Context, userID uuid.UUID) ([]models.DailyScore, error)
}

// StreakWriter persists a user's streak counters.
type StreakWriter interface {
	UpdateStreaks(ctx context.Context, userID uuid.UUID, streak models.Streak, at time.Time) error
}

type ScoreService struct {
	scores   ScoreStore
	profiles StreakWriter
	logger   *zap.Logger
	now      func() time.Time
}

func NewScoreService(scores ScoreStore, profiles StreakWriter, logger *zap.Logger) *ScoreService {
	return &ScoreService{scores: scores, profiles: profiles, logger: logger, now: time.Now}
}

// AggregateGoals sums the points of completed goals.
func AggregateGoals(goals []models.DailyGoal) (score, completed, total int) {
	for _, g := range goals {
		if g.IsCompleted {
			score += g.Points
			completed++
		}
	}
	return score, completed, len(goals)
}

// UpdateDailyScore recomputes the score for date from the full goal list of
// that date and replaces any stored row.
func (s *ScoreService) UpdateDailyScore(ctx context.Context, userID uuid.UUID, date string, goals []models.DailyGoal) error {
	score, completed, total := AggregateGoals(goals)
	err := s.scores.Upsert(ctx, &models.DailyScore{
		UserID:         userID,
		Date:           date,
		Score:          score,
		GoalsCompleted: completed,
		TotalGoals:     total,
	})
	if err != nil {
		return fmt.Errorf("update daily score %s: %w", date, err)
	}
	s.logger.Debug("daily score updated",
		zap.String("user_id", userID.String()),
		zap.String("date", date),
		zap.Int("score", score),
		zap.Int("goals_completed", completed),
		zap.Int("total_goals", total))
	return nil
}

func (s *ScoreService) CalculateStreak(ctx context.Context, userID uuid.UUID) (models.Streak, error) {
	scores, err := s.scores.Active(ctx, userID)
	if err != nil {
		return models.Streak{}, fmt.Errorf("calculate streak: %w", err)
	}

	dates := make([]time.Time, 0, len(scores))
	for _, sc := range scores {
		d, err := ParseDate(sc.Date)
		if err != nil {
			s.logger.Warn("skipping malformed score date", zap.String("date", sc.Date), zap.Error(err))
			continue
		}
		dates = append(dates, d)
	}
	return ComputeStreak(dates, s.now()), nil
}

// UpdateProfileStreaks recalculates and stores the user's streaks.
func (s *ScoreService) UpdateProfileStreaks(ctx context.Context, userID uuid.UUID) (models.Streak, error) {
	streak, err := s.CalculateStreak(ctx, userID)
	if err != nil {
		return models.Streak{}, err
	}
	if err := s.profiles.UpdateStreaks(ctx, userID, streak, s.now()); err != nil {
		return models.Streak{}, fmt.Errorf("update profile streaks: %w", err)
	}
	return streak, nil
}
