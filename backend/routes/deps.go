package routes

import (
	"net/http"

	"devtracker/backend/config"
	"devtracker/backend/leetcode"
	"devtracker/backend/services"
	"devtracker/backend/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps is everything the route table hands to controllers.
type Deps struct {
	Store      *store.Store
	Scores     *services.ScoreService
	Goals      *services.GoalService
	Merger     *leetcode.Merger
	Reconciler *leetcode.Reconciler
	Watcher    *leetcode.Watcher
	Logger     *zap.Logger
}

// NewDeps wires the services over db. A nil httpClient uses a default one.
func NewDeps(db *gorm.DB, cfg *config.Config, logger *zap.Logger, httpClient *http.Client) *Deps {
	st := store.New(db)
	scores := services.NewScoreService(st.Scores, st.Profiles, logger.Named("scores"))
	goals := services.NewGoalService(st.Goals, scores, logger.Named("goals"))

	client := leetcode.NewClient(cfg.LeetCode, httpClient)
	reconciler := leetcode.NewReconciler(client, st.Problems, cfg.LeetCode.SyncLimit, logger.Named("sync"))
	merger := leetcode.NewMerger(client, st.Profiles, reconciler, logger.Named("leetcode"))
	watcher := leetcode.NewWatcher(merger, cfg.LeetCode.Refresh, logger.Named("watcher"))

	return &Deps{
		Store:      st,
		Scores:     scores,
		Goals:      goals,
		Merger:     merger,
		Reconciler: reconciler,
		Watcher:    watcher,
		Logger:     logger,
	}
}

// Close stops refresh loops, then waits for background syncs.
func (d *Deps) Close() {
	d.Watcher.Close()
	d.Merger.Wait()
}
