package leetcode

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"devtracker/backend/models"
	"devtracker/backend/services"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrEmptyUsername    = errors.New("leetcode username is required")
	ErrStatsUnavailable = errors.New("could not fetch LeetCode stats")
)

// FetchRequest identifies whose stats to fetch. UserID may be uuid.Nil for
// anonymous lookups, which are neither remembered nor synced.
type FetchRequest struct {
	UserID   uuid.UUID
	Username string
	// OnSync runs after a background sync that changed tracked problems.
	OnSync func()
}

// Merger combines the three statistics providers into one profile view.
type Merger struct {
	client     *Client
	session    Session
	reconciler *Reconciler
	logger     *zap.Logger
	now        func() time.Time

	wg sync.WaitGroup
}

func NewMerger(client *Client, session Session, reconciler *Reconciler, logger *zap.Logger) *Merger {
	return &Merger{
		client:     client,
		session:    session,
		reconciler: reconciler,
		logger:     logger,
		now:        time.Now,
	}
}

// secondaryResult is what each of the concurrent secondary calls settled to.
type secondaryResult struct {
	stats       *secondaryStats
	statsErr    error
	profile     *profile
	profileErr  error
	calendar    map[int64]int
	calendarErr error
}

// Fetch queries the primary provider, enriches from the secondary one and
// falls back to the last-resort provider when neither produced totals.
func (m *Merger) Fetch(ctx context.Context, req FetchRequest) (*models.ExternalProfileStats, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, ErrEmptyUsername
	}
	log := m.logger.With(zap.String("username", username))

	stats := &models.ExternalProfileStats{Username: username, Name: username}
	found := false

	if p, err := m.client.fetchPrimary(ctx, username); err != nil {
		log.Warn("primary stats provider failed", zap.Error(err))
	} else {
		p.totals.applyTo(stats)
		stats.Avatar = p.Avatar
		stats.Ranking = p.Ranking
		stats.AcceptanceRate = p.AcceptanceRate
		found = true
	}

	sec := m.fetchSecondary(ctx, username)
	switch {
	case sec.statsErr != nil:
		log.Warn("secondary stats provider failed", zap.Error(sec.statsErr))
	case !found:
		sec.stats.applyTo(stats)
		stats.AcceptanceRate = sec.stats.acceptance()
		found = true
	}
	if sec.profileErr != nil {
		log.Warn("secondary profile provider failed", zap.Error(sec.profileErr))
	} else {
		stats.Name = sec.profile.Name
		if stats.Name == "" {
			stats.Name = sec.profile.Username
		}
		if stats.Avatar == "" {
			stats.Avatar = sec.profile.Avatar
		}
		if stats.Ranking == 0 {
			stats.Ranking = sec.profile.Ranking
		}
	}
	if sec.calendarErr != nil {
		log.Warn("secondary calendar provider failed", zap.Error(sec.calendarErr))
	} else {
		stats.Streak = services.CalendarStreak(sec.calendar, m.now())
	}

	if !found {
		if f, err := m.client.fetchFallback(ctx, username); err != nil {
			log.Warn("fallback stats provider failed", zap.Error(err))
		} else {
			f.totals.applyTo(stats)
			stats.AcceptanceRate = f.AcceptanceRate
			stats.Ranking = f.Ranking
			found = true
		}
	}

	if !found {
		return nil, fmt.Errorf("%w for %q: username might be invalid or all providers are unreachable", ErrStatsUnavailable, username)
	}

	if req.UserID != uuid.Nil {
		if err := m.session.SetUsername(ctx, req.UserID, username); err != nil {
			log.Warn("could not remember username", zap.Error(err))
		}
		m.syncInBackground(ctx, req.UserID, username, req.OnSync)
	}
	return stats, nil
}

// fetchSecondary issues the three secondary calls concurrently. Every call
// records its own outcome and none cancels the others.
func (m *Merger) fetchSecondary(ctx context.Context, username string) secondaryResult {
	var res secondaryResult
	var g errgroup.Group
	g.Go(func() error {
		res.stats, res.statsErr = m.client.fetchSecondary(ctx, username)
		return nil
	})
	g.Go(func() error {
		res.profile, res.profileErr = m.client.fetchProfile(ctx, username)
		return nil
	})
	g.Go(func() error {
		res.calendar, res.calendarErr = m.client.fetchCalendar(ctx, username)
		return nil
	})
	_ = g.Wait()
	return res
}

func (m *Merger) syncInBackground(ctx context.Context, userID uuid.UUID, username string, onSync func()) {
	if m.reconciler == nil || onSync == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		if m.reconciler.Sync(ctx, userID, username) {
			onSync()
		}
	}()
}

// Wait blocks until background syncs started by Fetch have finished.
func (m *Merger) Wait() {
	m.wg.Wait()
}
