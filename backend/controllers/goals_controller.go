package controllers

import (
	"devtracker/backend/config"
	"devtracker/backend/services"
	"devtracker/backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type GoalsController struct {
	Goals  *services.GoalService
	Cfg    *config.Config
	Logger *zap.Logger
}

func NewGoalsController(goals *services.GoalService, cfg *config.Config, logger *zap.Logger) *GoalsController {
	return &GoalsController{Goals: goals, Cfg: cfg, Logger: logger}
}

type ToggleGoalRequest struct {
	// Verification is the self-reported count some categories require.
	Verification *int `json:"verification"`
}

// GetTodayGoals godoc
// @Summary List today's goals
// @Description Sweeps goals older than a week, then returns today's goals
// @Tags goals
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /goals [get]
func (gc *GoalsController) GetTodayGoals(c *fiber.Ctx) error {
	userID, err := currentUser(c, gc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	goals, err := gc.Goals.Today(c.UserContext(), userID)
	if err != nil {
		return handleError(c, gc.Logger, err)
	}
	return utils.OK(c, goals)
}

// CreateGoal godoc
// @Summary Create a goal for today
// @Tags goals
// @Accept json
// @Produce json
// @Param input body services.NewGoal true "Goal"
// @Success 201 {object} utils.SuccessResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /goals [post]
func (gc *GoalsController) CreateGoal(c *fiber.Ctx) error {
	userID, err := currentUser(c, gc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input services.NewGoal
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	goal, err := gc.Goals.Create(c.UserContext(), userID, input)
	if err != nil {
		return handleError(c, gc.Logger, err)
	}
	return utils.Created(c, goal)
}

// ToggleGoal godoc
// @Summary Toggle goal completion
// @Tags goals
// @Accept json
// @Produce json
// @Param id path string true "Goal ID"
// @Param input body ToggleGoalRequest false "Verification"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /goals/{id}/toggle [post]
func (gc *GoalsController) ToggleGoal(c *fiber.Ctx) error {
	userID, err := currentUser(c, gc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	goalID, err := paramID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid goal ID")
	}

	var input ToggleGoalRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return utils.BadRequest(c, "Cannot parse JSON")
		}
	}

	goal, err := gc.Goals.Toggle(c.UserContext(), userID, goalID, input.Verification)
	if err != nil {
		return handleError(c, gc.Logger, err)
	}
	return utils.OK(c, goal)
}

func (gc *GoalsController) StartGoal(c *fiber.Ctx) error {
	userID, err := currentUser(c, gc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	goalID, err := paramID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid goal ID")
	}

	goal, err := gc.Goals.Start(c.UserContext(), userID, goalID)
	if err != nil {
		return handleError(c, gc.Logger, err)
	}
	return utils.OK(c, goal)
}

func (gc *GoalsController) DeleteGoal(c *fiber.Ctx) error {
	userID, err := currentUser(c, gc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	goalID, err := paramID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid goal ID")
	}

	if err := gc.Goals.Delete(c.UserContext(), userID, goalID); err != nil {
		return handleError(c, gc.Logger, err)
	}
	return utils.NoContent(c)
}
