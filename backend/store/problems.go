package store

import (
	"context"
	"time"

	"devtracker/backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Problems struct {
	db *gorm.DB
}

func (s *Problems) Create(ctx context.Context, problem *models.CodingProblem) error {
	return wrap("create", "problem", problem.ID, s.db.WithContext(ctx).Create(problem).Error)
}

func (s *Problems) Get(ctx context.Context, userID, problemID uuid.UUID) (*models.CodingProblem, error) {
	var problem models.CodingProblem
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", problemID, userID).
		First(&problem).Error
	if err != nil {
		return nil, wrap("get", "problem", problemID, err)
	}
	return &problem, nil
}

// List returns the user's problems newest first. An empty section lists all.
func (s *Problems) List(ctx context.Context, userID uuid.UUID, section string) ([]models.CodingProblem, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if section != "" {
		q = q.Where("section_name = ?", section)
	}
	var problems []models.CodingProblem
	if err := q.Order("created_at DESC").Find(&problems).Error; err != nil {
		return nil, wrap("list", "problem", uuid.Nil, err)
	}
	return problems, nil
}

func (s *Problems) Update(ctx context.Context, userID, problemID uuid.UUID, fields map[string]interface{}) error {
	res := s.db.WithContext(ctx).Model(&models.CodingProblem{}).
		Where("id = ? AND user_id = ?", problemID, userID).
		Updates(fields)
	if res.Error == nil && res.RowsAffected == 0 {
		return wrap("update", "problem", problemID, ErrNotFound)
	}
	return wrap("update", "problem", problemID, res.Error)
}

// Promote sets the status of every row in the user's section with this link.
// completedAt is written only for Solved.
func (s *Problems) Promote(ctx context.Context, userID uuid.UUID, section, link string, status models.ProblemStatus, completedAt *time.Time) error {
	fields := map[string]interface{}{"status": status}
	if status == models.StatusSolved && completedAt != nil {
		fields["completed_at"] = *completedAt
	}
	err := s.db.WithContext(ctx).Model(&models.CodingProblem{}).
		Where("user_id = ? AND section_name = ? AND problem_link = ?", userID, section, link).
		Updates(fields).Error
	return wrap("promote", "problem", uuid.Nil, err)
}

func (s *Problems) Delete(ctx context.Context, userID, problemID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", problemID, userID).
		Delete(&models.CodingProblem{})
	if res.Error == nil && res.RowsAffected == 0 {
		return wrap("delete", "problem", problemID, ErrNotFound)
	}
	return wrap("delete", "problem", problemID, res.Error)
}
