package controllers

import (
	"errors"

	"devtracker/backend/config"
	"devtracker/backend/leetcode"
	"devtracker/backend/middleware"
	"devtracker/backend/services"
	"devtracker/backend/store"
	"devtracker/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// currentUser returns the id set by AuthMiddleware, or parses the token when
// the handler is mounted without it.
func currentUser(c *fiber.Ctx, cfg *config.Config) (uuid.UUID, error) {
	if id, ok := c.Locals(middleware.UserIDKey).(uuid.UUID); ok && id != uuid.Nil {
		return id, nil
	}
	return utils.ExtractUserIDFromToken(c, cfg)
}

func paramID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

// handleError answers err with the status its kind maps to.
func handleError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return utils.NotFound(c, "Resource not found")
	case errors.Is(err, services.ErrGoalLocked):
		return utils.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidGoal), errors.Is(err, services.ErrVerificationFailed):
		return utils.Error(c, fiber.StatusUnprocessableEntity, err)
	case errors.Is(err, leetcode.ErrEmptyUsername):
		return utils.BadRequest(c, err.Error())
	case errors.Is(err, leetcode.ErrStatsUnavailable):
		return utils.BadGateway(c, err.Error())
	}
	logger.Error("request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return utils.InternalServerError(c, "Internal server error")
}
