package controllers

import (
	"time"

	"devtracker/backend/config"
	"devtracker/backend/services"
	"devtracker/backend/store"
	"devtracker/backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ProgressController struct {
	Scores  *store.Scores
	Service *services.ScoreService
	Cfg     *config.Config
	Logger  *zap.Logger
}

func NewProgressController(scores *store.Scores, service *services.ScoreService, cfg *config.Config, logger *zap.Logger) *ProgressController {
	return &ProgressController{Scores: scores, Service: service, Cfg: cfg, Logger: logger}
}

// GetScores godoc
// @Summary Get daily scores
// @Description Returns every daily score of the user, oldest first
// @Tags progress
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /progress/scores [get]
func (pc *ProgressController) GetScores(c *fiber.Ctx) error {
	userID, err := currentUser(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	scores, err := pc.Scores.All(c.UserContext(), userID)
	if err != nil {
		return handleError(c, pc.Logger, err)
	}
	return utils.OK(c, scores)
}

// GetHeatmap godoc
// @Summary Get activity heatmap
// @Description Returns one entry per day for the past year plus a summary
// @Tags progress
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /progress/heatmap [get]
func (pc *ProgressController) GetHeatmap(c *fiber.Ctx) error {
	userID, err := currentUser(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	scores, err := pc.Scores.All(c.UserContext(), userID)
	if err != nil {
		return handleError(c, pc.Logger, err)
	}
	return utils.OK(c, services.BuildHeatmap(scores, time.Now()))
}

// RecalculateStreak recomputes the streak from stored scores and writes it
// to the profile.
func (pc *ProgressController) RecalculateStreak(c *fiber.Ctx) error {
	userID, err := currentUser(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	streak, err := pc.Service.UpdateProfileStreaks(c.UserContext(), userID)
	if err != nil {
		return handleError(c, pc.Logger, err)
	}
	return utils.OK(c, streak)
}
