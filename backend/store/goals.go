package store

import (
	"context"

	"devtracker/backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Goals struct {
	db *gorm.DB
}

func (s *Goals) Create(ctx context.Context, goal *models.DailyGoal) error {
	return wrap("create", "goal", goal.ID, s.db.WithContext(ctx).Create(goal).Error)
}

func (s *Goals) Get(ctx context.Context, userID, goalID uuid.UUID) (*models.DailyGoal, error) {
	var goal models.DailyGoal
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", goalID, userID).
		First(&goal).Error
	if err != nil {
		return nil, wrap("get", "goal", goalID, err)
	}
	return &goal, nil
}

// ForDate returns every goal the user has on date, oldest first.
func (s *Goals) ForDate(ctx context.Context, userID uuid.UUID, date string) ([]models.DailyGoal, error) {
	var goals []models.DailyGoal
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Order("created_at").
		Find(&goals).Error
	if err != nil {
		return nil, wrap("list", "goal", uuid.Nil, err)
	}
	return goals, nil
}

func (s *Goals) Update(ctx context.Context, userID, goalID uuid.UUID, fields map[string]interface{}) error {
	res := s.db.WithContext(ctx).Model(&models.DailyGoal{}).
		Where("id = ? AND user_id = ?", goalID, userID).
		Updates(fields)
	if res.Error == nil && res.RowsAffected == 0 {
		return wrap("update", "goal", goalID, ErrNotFound)
	}
	return wrap("update", "goal", goalID, res.Error)
}

func (s *Goals) Delete(ctx context.Context, userID, goalID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", goalID, userID).
		Delete(&models.DailyGoal{})
	if res.Error == nil && res.RowsAffected == 0 {
		return wrap("delete", "goal", goalID, ErrNotFound)
	}
	return wrap("delete", "goal", goalID, res.Error)
}

// DeleteBefore removes the user's goals dated strictly before date.
func (s *Goals) DeleteBefore(ctx context.Context, userID uuid.UUID, date string) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND date < ?", userID, date).
		Delete(&models.DailyGoal{})
	return res.RowsAffected, wrap("sweep", "goal", uuid.Nil, res.Error)
}
