package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"devtracker/backend/models"

	"github.com/google/uuid"
)

var errNotFound = errors.New("not found")

type scoreKey struct {
	user uuid.UUID
	date string
}

type fakeScores struct {
	rows    map[scoreKey]models.DailyScore
	upserts int
	err     error
}

func newFakeScores() *fakeScores {
	return &fakeScores{rows: map[scoreKey]models.DailyScore{}}
}

func (f *fakeScores) Upsert(_ context.Context, s *models.DailyScore) error {
	if f.err != nil {
		return f.err
	}
	f.upserts++
	f.rows[scoreKey{s.UserID, s.Date}] = *s
	return nil
}

func (f *fakeScores) Active(_ context.Context, userID uuid.UUID) ([]models.DailyScore, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.DailyScore
	for k, s := range f.rows {
		if k.user == userID && s.Score > 0 {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

type fakeProfiles struct {
	streaks map[uuid.UUID]models.Streak
	err     error
}

func (f *fakeProfiles) UpdateStreaks(_ context.Context, userID uuid.UUID, s models.Streak, _ time.Time) error {
	if f.err != nil {
		return f.err
	}
	if f.streaks == nil {
		f.streaks = map[uuid.UUID]models.Streak{}
	}
	f.streaks[userID] = s
	return nil
}

type fakeGoals struct {
	rows []*models.DailyGoal
}

func (f *fakeGoals) Create(_ context.Context, g *models.DailyGoal) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	cp := *g
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeGoals) find(userID, goalID uuid.UUID) (int, *models.DailyGoal) {
	for i, g := range f.rows {
		if g.ID == goalID && g.UserID == userID {
			return i, g
		}
	}
	return -1, nil
}

func (f *fakeGoals) Get(_ context.Context, userID, goalID uuid.UUID) (*models.DailyGoal, error) {
	_, g := f.find(userID, goalID)
	if g == nil {
		return nil, errNotFound
	}
	cp := *g
	return &cp, nil
}

func (f *fakeGoals) ForDate(_ context.Context, userID uuid.UUID, date string) ([]models.DailyGoal, error) {
	var out []models.DailyGoal
	for _, g := range f.rows {
		if g.UserID == userID && g.Date == date {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (f *fakeGoals) Update(_ context.Context, userID, goalID uuid.UUID, fields map[string]interface{}) error {
	_, g := f.find(userID, goalID)
	if g == nil {
		return errNotFound
	}
	for k, v := range fields {
		switch k {
		case "is_completed":
			g.IsCompleted = v.(bool)
		case "completed_at":
			if v == nil {
				g.CompletedAt = nil
			} else {
				t := v.(time.Time)
				g.CompletedAt = &t
			}
		case "started_at":
			t := v.(time.Time)
			g.StartedAt = &t
		}
	}
	return nil
}

func (f *fakeGoals) Delete(_ context.Context, userID, goalID uuid.UUID) error {
	i, _ := f.find(userID, goalID)
	if i < 0 {
		return errNotFound
	}
	f.rows = append(f.rows[:i], f.rows[i+1:]...)
	return nil
}

func (f *fakeGoals) DeleteBefore(_ context.Context, userID uuid.UUID, date string) (int64, error) {
	var kept []*models.DailyGoal
	var n int64
	for _, g := range f.rows {
		if g.UserID == userID && g.Date < date {
			n++
			continue
		}
		kept = append(kept, g)
	}
	f.rows = kept
	return n, nil
}
