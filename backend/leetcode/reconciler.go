package leetcode

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"devtracker/backend/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultSyncLimit = 50

// SubmissionSource returns a user's most recent submissions, newest first.
type SubmissionSource interface {
	RecentSubmissions(ctx context.Context, username string, limit int) ([]models.Submission, error)
}

// ProblemStore is the persistence the Reconciler writes to.
type ProblemStore interface {
	List(ctx context.Context, userID uuid.UUID, section string) ([]models.CodingProblem, error)
	Create(ctx context.Context, problem *models.CodingProblem) error
	Promote(ctx context.Context, userID uuid.UUID, section, link string, status models.ProblemStatus, completedAt *time.Time) error
}

// Reconciler folds remote submission history into the user's LeetCode section.
// A problem's status only ever moves forward: Unsolved < Attempted < Solved.
type Reconciler struct {
	source   SubmissionSource
	problems ProblemStore
	limit    int
	logger   *zap.Logger
}

func NewReconciler(source SubmissionSource, problems ProblemStore, limit int, logger *zap.Logger) *Reconciler {
	if limit <= 0 {
		limit = DefaultSyncLimit
	}
	return &Reconciler{source: source, problems: problems, limit: limit, logger: logger}
}

// ProblemLink is the canonical URL of a problem slug.
func ProblemLink(slug string) string {
	return fmt.Sprintf("https://leetcode.com/problems/%s/", slug)
}

func submissionStatus(s models.Submission) models.ProblemStatus {
	if s.StatusDisplay == "Accepted" {
		return models.StatusSolved
	}
	return models.StatusAttempted
}

func submittedAt(s models.Submission) (time.Time, error) {
	sec, err := strconv.ParseInt(s.Timestamp, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad submission timestamp %q: %w", s.Timestamp, err)
	}
	return time.Unix(sec, 0).UTC(), nil
}

// Sync reports whether any problem was inserted or upgraded. Provider and
// load failures yield false; per-submission write failures are logged and
// skipped.
func (r *Reconciler) Sync(ctx context.Context, userID uuid.UUID, username string) bool {
	if userID == uuid.Nil || username == "" {
		return false
	}
	log := r.logger.With(zap.String("user_id", userID.String()), zap.String("username", username))

	subs, err := r.source.RecentSubmissions(ctx, username, r.limit)
	if err != nil {
		log.Warn("fetching submissions failed", zap.Error(err))
		return false
	}
	if len(subs) == 0 {
		return false
	}

	existing, err := r.problems.List(ctx, userID, models.LeetCodeSection)
	if err != nil {
		log.Error("loading tracked problems failed", zap.Error(err))
		return false
	}
	known := make(map[string]models.ProblemStatus, len(existing))
	for _, p := range existing {
		if p.ProblemLink == "" {
			continue
		}
		if cur, ok := known[p.ProblemLink]; !ok || p.Status.Rank() > cur.Rank() {
			known[p.ProblemLink] = p.Status
		}
	}

	changes := 0
	// Oldest first, so a later verdict can upgrade an earlier one.
	for i := len(subs) - 1; i >= 0; i-- {
		sub := subs[i]
		if sub.TitleSlug == "" {
			continue
		}
		link := ProblemLink(sub.TitleSlug)
		status := submissionStatus(sub)
		current, tracked := known[link]

		// Solved is terminal; equal or lower verdicts add nothing.
		if tracked && status.Rank() <= current.Rank() {
			continue
		}

		var at time.Time
		if status == models.StatusSolved {
			if at, err = submittedAt(sub); err != nil {
				log.Error("skipping submission", zap.String("title", sub.Title), zap.Error(err))
				continue
			}
		}

		if tracked {
			if err := r.problems.Promote(ctx, userID, models.LeetCodeSection, link, status, &at); err != nil {
				log.Error("upgrading problem failed", zap.String("title", sub.Title), zap.Error(err))
				continue
			}
		} else {
			problem := &models.CodingProblem{
				UserID:      userID,
				SectionName: models.LeetCodeSection,
				ProblemName: sub.Title,
				ProblemLink: link,
				// The submission list carries no difficulty.
				Difficulty: models.DifficultyMedium,
				Status:     status,
			}
			if status == models.StatusSolved {
				problem.CompletedAt = &at
			}
			if err := r.problems.Create(ctx, problem); err != nil {
				log.Error("syncing problem failed", zap.String("title", sub.Title), zap.Error(err))
				continue
			}
		}
		known[link] = status
		changes++
	}

	if changes > 0 {
		log.Info("synced submissions", zap.Int("changes", changes))
	}
	return changes > 0
}
