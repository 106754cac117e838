package store

import (
	"context"
	"time"

	"devtracker/backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Profiles struct {
	db *gorm.DB
}

// Get returns the user's profile, creating an empty one on first access.
func (s *Profiles) Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	profile := models.NewProfile(userID)
	err := s.db.WithContext(ctx).
		Where("id = ?", userID).
		FirstOrCreate(&profile).Error
	if err != nil {
		return nil, wrap("get", "profile", userID, err)
	}
	return &profile, nil
}

// Update applies a partial update. Keys are column names.
func (s *Profiles) Update(ctx context.Context, userID uuid.UUID, fields map[string]interface{}) error {
	if _, err := s.Get(ctx, userID); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Model(&models.Profile{}).
		Where("id = ?", userID).
		Updates(fields).Error
	return wrap("update", "profile", userID, err)
}

func (s *Profiles) UpdateStreaks(ctx context.Context, userID uuid.UUID, streak models.Streak, at time.Time) error {
	if _, err := s.Get(ctx, userID); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Model(&models.Profile{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"current_streak": streak.Current,
			"max_streak":     streak.Max,
			"updated_at":     at,
		}).Error
	return wrap("update streaks", "profile", userID, err)
}

// Username returns the remembered LeetCode username, or "" when none is set.
func (s *Profiles) Username(ctx context.Context, userID uuid.UUID) (string, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	return profile.LeetcodeUsername, nil
}

func (s *Profiles) SetUsername(ctx context.Context, userID uuid.UUID, username string) error {
	return s.Update(ctx, userID, map[string]interface{}{"leetcode_username": username})
}
