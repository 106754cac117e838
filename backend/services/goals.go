package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"devtracker/backend/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidGoal        = errors.New("invalid goal")
	ErrGoalLocked         = errors.New("goal is still locked")
	ErrVerificationFailed = errors.New("goal verification failed")
)

// GoalRetention is how long goals are kept before the sweep removes them.
const GoalRetention = 7 * 24 * time.Hour

const defaultGoalPoints = 10

// GoalStore is the persistence GoalService needs.
type GoalStore interface {
	Create(ctx context.Context, goal *models.DailyGoal) error
	Get(ctx context.Context, userID, goalID uuid.UUID) (*models.DailyGoal, error)
	ForDate(ctx context.Context, userID uuid.UUID, date string) ([]models.DailyGoal, error)
	Update(ctx context.Context, userID, goalID uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, userID, goalID uuid.UUID) error
	DeleteBefore(ctx context.Context, userID uuid.UUID, date string) (int64, error)
}

type NewGoal struct {
	Title           string              `json:"title"`
	Category        models.GoalCategory `json:"category"`
	Points          int                 `json:"points"`
	IsRecurring     bool                `json:"is_recurring"`
	DurationMinutes int                 `json:"duration_minutes"`
}

type GoalService struct {
	goals  GoalStore
	scores *ScoreService
	logger *zap.Logger
	now    func() time.Time
}

func NewGoalService(goals GoalStore, scores *ScoreService, logger *zap.Logger) *GoalService {
	return &GoalService{goals: goals, scores: scores, logger: logger, now: time.Now}
}

// Today lists the user's goals for the current date after sweeping expired ones.
func (s *GoalService) Today(ctx context.Context, userID uuid.UUID) ([]models.DailyGoal, error) {
	if _, err := s.Sweep(ctx, userID); err != nil {
		return nil, err
	}
	return s.goals.ForDate(ctx, userID, FormatDate(s.now()))
}

// Sweep deletes goals dated more than GoalRetention ago.
func (s *GoalService) Sweep(ctx context.Context, userID uuid.UUID) (int64, error) {
	cutoff := FormatDate(s.now().Add(-GoalRetention))
	n, err := s.goals.DeleteBefore(ctx, userID, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("swept expired goals", zap.String("user_id", userID.String()), zap.Int64("count", n))
	}
	return n, nil
}

func (s *GoalService) Create(ctx context.Context, userID uuid.UUID, in NewGoal) (*models.DailyGoal, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidGoal)
	}
	if in.Category == "" {
		in.Category = models.CategoryGeneral
	}
	if !in.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidGoal, in.Category)
	}
	if in.Points == 0 {
		in.Points = defaultGoalPoints
	}
	if in.Points < 0 {
		return nil, fmt.Errorf("%w: points must be positive", ErrInvalidGoal)
	}
	if in.DurationMinutes < 0 {
		in.DurationMinutes = 0
	}

	goal := &models.DailyGoal{
		UserID:          userID,
		Title:           in.Title,
		Category:        in.Category,
		Points:          in.Points,
		Date:            FormatDate(s.now()),
		IsRecurring:     in.IsRecurring,
		DurationMinutes: in.DurationMinutes,
	}
	if err := s.goals.Create(ctx, goal); err != nil {
		return nil, err
	}
	if err := s.refresh(ctx, userID, goal.Date); err != nil {
		return nil, err
	}
	return goal, nil
}

// verify checks the self-reported count some categories require before a
// goal can be marked done.
func verify(category models.GoalCategory, count *int) error {
	switch category {
	case models.CategoryCoding:
		if count == nil || *count < 3 {
			return fmt.Errorf("%w: solve at least 3 problems", ErrVerificationFailed)
		}
	case models.CategoryWebDev:
		if count == nil || *count <= 3 {
			return fmt.Errorf("%w: attend more than 3 lectures", ErrVerificationFailed)
		}
	}
	return nil
}

// Toggle flips the completion flag. Completing may require a verification
// count; un-completing never does. Locked goals cannot be toggled, and a timed
// goal cannot be completed before it was started.
func (s *GoalService) Toggle(ctx context.Context, userID, goalID uuid.UUID, verification *int) (*models.DailyGoal, error) {
	goal, err := s.goals.Get(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if rem := goal.LockRemaining(now); rem > 0 {
		return nil, fmt.Errorf("%w for %s", ErrGoalLocked, rem.Round(time.Second))
	}

	fields := map[string]interface{}{"is_completed": !goal.IsCompleted}
	if goal.IsCompleted {
		fields["completed_at"] = nil
		goal.CompletedAt = nil
	} else {
		if goal.DurationMinutes > 0 && goal.StartedAt == nil {
			return nil, fmt.Errorf("%w: start the timer first", ErrGoalLocked)
		}
		if err := verify(goal.Category, verification); err != nil {
			return nil, err
		}
		fields["completed_at"] = now
		goal.CompletedAt = &now
	}
	goal.IsCompleted = !goal.IsCompleted

	if err := s.goals.Update(ctx, userID, goalID, fields); err != nil {
		return nil, err
	}
	if err := s.refresh(ctx, userID, goal.Date); err != nil {
		return nil, err
	}
	return goal, nil
}

// Start begins the goal's lock timer.
func (s *GoalService) Start(ctx context.Context, userID, goalID uuid.UUID) (*models.DailyGoal, error) {
	goal, err := s.goals.Get(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := s.goals.Update(ctx, userID, goalID, map[string]interface{}{"started_at": now}); err != nil {
		return nil, err
	}
	goal.StartedAt = &now
	return goal, nil
}

func (s *GoalService) Delete(ctx context.Context, userID, goalID uuid.UUID) error {
	goal, err := s.goals.Get(ctx, userID, goalID)
	if err != nil {
		return err
	}
	if err := s.goals.Delete(ctx, userID, goalID); err != nil {
		return err
	}
	return s.refresh(ctx, userID, goal.Date)
}

// refresh re-reads the full goal set of date, then rewrites that day's score
// and the profile streaks.
func (s *GoalService) refresh(ctx context.Context, userID uuid.UUID, date string) error {
	goals, err := s.goals.ForDate(ctx, userID, date)
	if err != nil {
		return err
	}
	if err := s.scores.UpdateDailyScore(ctx, userID, date, goals); err != nil {
		return err
	}
	_, err = s.scores.UpdateProfileStreaks(ctx, userID)
	return err
}
