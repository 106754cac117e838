package leetcode

import (
	"context"
	"sync"
	"time"

	"devtracker/backend/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultRefresh is how often a watched profile is re-fetched.
const DefaultRefresh = 5 * time.Minute

// Fetcher is satisfied by *Merger.
type Fetcher interface {
	Fetch(ctx context.Context, req FetchRequest) (*models.ExternalProfileStats, error)
}

// Snapshot is the latest outcome of a watched profile.
type Snapshot struct {
	Username  string                       `json:"username"`
	Stats     *models.ExternalProfileStats `json:"stats,omitempty"`
	Error     string                       `json:"error,omitempty"`
	UpdatedAt time.Time                    `json:"updated_at"`
}

type watch struct {
	username string
	cancel   context.CancelFunc

	mu   sync.RWMutex
	last Snapshot
}

// Watcher keeps one refresh loop per user: an immediate fetch, then one per
// interval until the loop is cancelled.
type Watcher struct {
	fetcher  Fetcher
	interval time.Duration
	logger   *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	watches map[uuid.UUID]*watch
}

func NewWatcher(fetcher Fetcher, interval time.Duration, logger *zap.Logger) *Watcher {
	if interval <= 0 {
		interval = DefaultRefresh
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		fetcher:  fetcher,
		interval: interval,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		watches:  make(map[uuid.UUID]*watch),
	}
}

// Watch starts refreshing username for userID, replacing any running loop.
func (w *Watcher) Watch(userID uuid.UUID, username string, onSync func()) {
	ctx, cancel := context.WithCancel(w.ctx)
	entry := &watch{username: username, cancel: cancel}

	w.mu.Lock()
	if old, ok := w.watches[userID]; ok {
		old.cancel()
	}
	w.watches[userID] = entry
	w.mu.Unlock()

	w.wg.Add(1)
	go w.run(ctx, entry, FetchRequest{UserID: userID, Username: username, OnSync: onSync})
}

// Unwatch stops the user's loop. It reports whether one was running.
func (w *Watcher) Unwatch(userID uuid.UUID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	entry, ok := w.watches[userID]
	if !ok {
		return false
	}
	entry.cancel()
	delete(w.watches, userID)
	return true
}

// Latest returns the most recent snapshot of the user's watched profile.
func (w *Watcher) Latest(userID uuid.UUID) (Snapshot, bool) {
	w.mu.Lock()
	entry, ok := w.watches[userID]
	w.mu.Unlock()
	if !ok {
		return Snapshot{}, false
	}
	entry.mu.RLock()
	defer entry.mu.RUnlock()
	return entry.last, true
}

// Close stops every loop and waits for them to exit.
func (w *Watcher) Close() {
	w.cancel()
	w.mu.Lock()
	w.watches = make(map[uuid.UUID]*watch)
	w.mu.Unlock()
	w.wg.Wait()
}

func (w *Watcher) run(ctx context.Context, entry *watch, req FetchRequest) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.refresh(ctx, entry, req)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (w *Watcher) refresh(ctx context.Context, entry *watch, req FetchRequest) {
	stats, err := w.fetcher.Fetch(ctx, req)
	if ctx.Err() != nil {
		return
	}
	snap := Snapshot{Username: entry.username, UpdatedAt: time.Now()}
	if err != nil {
		w.logger.Warn("refresh failed", zap.String("username", entry.username), zap.Error(err))
		snap.Error = err.Error()
	} else {
		snap.Stats = stats
	}

	entry.mu.Lock()
	// Keep the last good stats visible while a refresh is failing.
	if snap.Stats == nil {
		snap.Stats = entry.last.Stats
	}
	entry.last = snap
	entry.mu.Unlock()
}
