package controllers

import (
	"context"
	"strings"

	"devtracker/backend/config"
	"devtracker/backend/leetcode"
	"devtracker/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type LeetCodeController struct {
	Merger     *leetcode.Merger
	Reconciler *leetcode.Reconciler
	Watcher    *leetcode.Watcher
	Session    leetcode.Session
	Cfg        *config.Config
	Logger     *zap.Logger
}

func NewLeetCodeController(
	merger *leetcode.Merger,
	reconciler *leetcode.Reconciler,
	watcher *leetcode.Watcher,
	session leetcode.Session,
	cfg *config.Config,
	logger *zap.Logger,
) *LeetCodeController {
	return &LeetCodeController{
		Merger:     merger,
		Reconciler: reconciler,
		Watcher:    watcher,
		Session:    session,
		Cfg:        cfg,
		Logger:     logger,
	}
}

type WatchRequest struct {
	Username string `json:"username"`
}

// username picks the explicit name, else the one remembered for the user.
func (lc *LeetCodeController) username(ctx context.Context, userID uuid.UUID, explicit string) (string, error) {
	if name := strings.TrimSpace(explicit); name != "" {
		return name, nil
	}
	name, err := lc.Session.Username(ctx, userID)
	if err != nil {
		return "", err
	}
	if name == "" {
		return "", leetcode.ErrEmptyUsername
	}
	return name, nil
}

func (lc *LeetCodeController) onSync(userID uuid.UUID) func() {
	return func() {
		lc.Logger.Info("leetcode problems updated", zap.String("user_id", userID.String()))
	}
}

// GetStats godoc
// @Summary Get LeetCode stats
// @Description Merges the statistics providers; remembers the username and syncs submissions in the background
// @Tags leetcode
// @Produce json
// @Param username query string false "LeetCode username, defaults to the remembered one"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /leetcode/stats [get]
func (lc *LeetCodeController) GetStats(c *fiber.Ctx) error {
	userID, err := currentUser(c, lc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	ctx := c.UserContext()
	name, err := lc.username(ctx, userID, c.Query("username"))
	if err != nil {
		return handleError(c, lc.Logger, err)
	}

	stats, err := lc.Merger.Fetch(ctx, leetcode.FetchRequest{
		UserID:   userID,
		Username: name,
		OnSync:   lc.onSync(userID),
	})
	if err != nil {
		return handleError(c, lc.Logger, err)
	}
	return utils.OK(c, stats)
}

// SyncProblems godoc
// @Summary Sync LeetCode submissions
// @Description Folds recent submissions of the remembered username into the LeetCode section
// @Tags leetcode
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /leetcode/sync [post]
func (lc *LeetCodeController) SyncProblems(c *fiber.Ctx) error {
	userID, err := currentUser(c, lc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	ctx := c.UserContext()
	name, err := lc.username(ctx, userID, c.Query("username"))
	if err != nil {
		return handleError(c, lc.Logger, err)
	}

	changed := lc.Reconciler.Sync(ctx, userID, name)
	return utils.OK(c, fiber.Map{"username": name, "changed": changed})
}

func (lc *LeetCodeController) StartWatch(c *fiber.Ctx) error {
	userID, err := currentUser(c, lc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input WatchRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return utils.BadRequest(c, "Cannot parse JSON")
		}
	}
	name, err := lc.username(c.UserContext(), userID, input.Username)
	if err != nil {
		return handleError(c, lc.Logger, err)
	}

	lc.Watcher.Watch(userID, name, lc.onSync(userID))
	return utils.Success(c, fiber.StatusAccepted, fiber.Map{"username": name})
}

func (lc *LeetCodeController) GetWatch(c *fiber.Ctx) error {
	userID, err := currentUser(c, lc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	snap, ok := lc.Watcher.Latest(userID)
	if !ok {
		return utils.NotFound(c, "No active watch")
	}
	return utils.OK(c, snap)
}

func (lc *LeetCodeController) StopWatch(c *fiber.Ctx) error {
	userID, err := currentUser(c, lc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	if !lc.Watcher.Unwatch(userID) {
		return utils.NotFound(c, "No active watch")
	}
	return utils.NoContent(c)
}
