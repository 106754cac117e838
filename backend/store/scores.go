package store

import (
	"context"

	"devtracker/backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Scores struct {
	db *gorm.DB
}

// Upsert writes the score for (user_id, date); an existing row is replaced.
func (s *Scores) Upsert(ctx context.Context, score *models.DailyScore) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "goals_completed", "total_goals", "updated_at"}),
	}).Create(score).Error
	return wrap("upsert", "daily score", uuid.Nil, err)
}

func (s *Scores) Get(ctx context.Context, userID uuid.UUID, date string) (*models.DailyScore, error) {
	var score models.DailyScore
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&score).Error
	if err != nil {
		return nil, wrap("get", "daily score", uuid.Nil, err)
	}
	return &score, nil
}

// Active returns the days with a positive score, newest first.
func (s *Scores) Active(ctx context.Context, userID uuid.UUID) ([]models.DailyScore, error) {
	var scores []models.DailyScore
	err := s.db.WithContext(ctx).
		Select("date", "score").
		Where("user_id = ? AND score > 0", userID).
		Order("date DESC").
		Find(&scores).Error
	if err != nil {
		return nil, wrap("list active", "daily score", uuid.Nil, err)
	}
	return scores, nil
}

// All returns every score row for the user, oldest first.
func (s *Scores) All(ctx context.Context, userID uuid.UUID) ([]models.DailyScore, error) {
	var scores []models.DailyScore
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date").
		Find(&scores).Error
	if err != nil {
		return nil, wrap("list", "daily score", uuid.Nil, err)
	}
	return scores, nil
}
