package controllers

import (
	"strings"
	"time"

	"devtracker/backend/config"
	"devtracker/backend/models"
	"devtracker/backend/store"
	"devtracker/backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ProblemsController struct {
	Problems *store.Problems
	Cfg      *config.Config
	Logger   *zap.Logger
}

func NewProblemsController(problems *store.Problems, cfg *config.Config, logger *zap.Logger) *ProblemsController {
	return &ProblemsController{Problems: problems, Cfg: cfg, Logger: logger}
}

type CreateProblemRequest struct {
	SectionName     string               `json:"section_name" example:"Arrays"`
	ProblemName     string               `json:"problem_name" example:"Two Sum"`
	ProblemLink     string               `json:"problem_link"`
	Difficulty      models.Difficulty    `json:"difficulty" enums:"Easy,Medium,Hard"`
	Status          models.ProblemStatus `json:"status" enums:"Unsolved,Attempted,Solved"`
	YoutubeSolution string               `json:"youtube_solution"`
	ResourceURL     string               `json:"resource_url"`
	Notes           string               `json:"notes"`
}

type UpdateProblemRequest struct {
	SectionName     *string               `json:"section_name"`
	ProblemName     *string               `json:"problem_name"`
	ProblemLink     *string               `json:"problem_link"`
	Difficulty      *models.Difficulty    `json:"difficulty"`
	Status          *models.ProblemStatus `json:"status"`
	YoutubeSolution *string               `json:"youtube_solution"`
	ResourceURL     *string               `json:"resource_url"`
	Notes           *string               `json:"notes"`
}

// GetProblems godoc
// @Summary List coding problems
// @Description Returns the user's problems newest first, optionally for one section
// @Tags problems
// @Produce json
// @Param section query string false "Section name"
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /problems [get]
func (pc *ProblemsController) GetProblems(c *fiber.Ctx) error {
	userID, err := currentUser(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	problems, err := pc.Problems.List(c.UserContext(), userID, strings.TrimSpace(c.Query("section")))
	if err != nil {
		return handleError(c, pc.Logger, err)
	}
	return utils.OK(c, problems)
}

func (pc *ProblemsController) CreateProblem(c *fiber.Ctx) error {
	userID, err := currentUser(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input CreateProblemRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	problem := models.CodingProblem{
		UserID:          userID,
		SectionName:     strings.TrimSpace(input.SectionName),
		ProblemName:     strings.TrimSpace(input.ProblemName),
		ProblemLink:     strings.TrimSpace(input.ProblemLink),
		Difficulty:      input.Difficulty,
		Status:          input.Status,
		YoutubeSolution: input.YoutubeSolution,
		ResourceURL:     input.ResourceURL,
		Notes:           input.Notes,
	}
	if problem.Difficulty == "" {
		problem.Difficulty = models.DifficultyMedium
	}
	if problem.Status == "" {
		problem.Status = models.StatusUnsolved
	}

	invalid := map[string]string{}
	if problem.SectionName == "" {
		invalid["section_name"] = "is required"
	}
	if problem.ProblemName == "" {
		invalid["problem_name"] = "is required"
	}
	if !problem.Difficulty.Valid() {
		invalid["difficulty"] = "must be Easy, Medium or Hard"
	}
	if !problem.Status.Valid() {
		invalid["status"] = "must be Unsolved, Attempted or Solved"
	}
	if len(invalid) > 0 {
		return utils.ValidationError(c, invalid)
	}

	if problem.Status == models.StatusSolved {
		now := time.Now()
		problem.CompletedAt = &now
	}
	if err := pc.Problems.Create(c.UserContext(), &problem); err != nil {
		return handleError(c, pc.Logger, err)
	}
	return utils.Created(c, problem)
}

// UpdateProblem godoc
// @Summary Update a coding problem
// @Description Manual edits may move the status in either direction
// @Tags problems
// @Accept json
// @Produce json
// @Param id path string true "Problem ID"
// @Param input body UpdateProblemRequest true "Fields to change"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /problems/{id} [put]
func (pc *ProblemsController) UpdateProblem(c *fiber.Ctx) error {
	userID, err := currentUser(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	problemID, err := paramID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid problem ID")
	}

	var input UpdateProblemRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	fields := map[string]interface{}{}
	invalid := map[string]string{}
	if input.SectionName != nil {
		if name := strings.TrimSpace(*input.SectionName); name == "" {
			invalid["section_name"] = "must not be empty"
		} else {
			fields["section_name"] = name
		}
	}
	if input.ProblemName != nil {
		if name := strings.TrimSpace(*input.ProblemName); name == "" {
			invalid["problem_name"] = "must not be empty"
		} else {
			fields["problem_name"] = name
		}
	}
	if input.ProblemLink != nil {
		fields["problem_link"] = strings.TrimSpace(*input.ProblemLink)
	}
	if input.Difficulty != nil {
		if !input.Difficulty.Valid() {
			invalid["difficulty"] = "must be Easy, Medium or Hard"
		} else {
			fields["difficulty"] = *input.Difficulty
		}
	}
	if input.Status != nil {
		switch {
		case !input.Status.Valid():
			invalid["status"] = "must be Unsolved, Attempted or Solved"
		case *input.Status == models.StatusSolved:
			fields["status"] = *input.Status
			fields["completed_at"] = time.Now()
		default:
			fields["status"] = *input.Status
			fields["completed_at"] = nil
		}
	}
	if input.YoutubeSolution != nil {
		fields["youtube_solution"] = *input.YoutubeSolution
	}
	if input.ResourceURL != nil {
		fields["resource_url"] = *input.ResourceURL
	}
	if input.Notes != nil {
		fields["notes"] = *input.Notes
	}

	if len(invalid) > 0 {
		return utils.ValidationError(c, invalid)
	}
	if len(fields) == 0 {
		return utils.BadRequest(c, "No fields to update")
	}

	ctx := c.UserContext()
	if err := pc.Problems.Update(ctx, userID, problemID, fields); err != nil {
		return handleError(c, pc.Logger, err)
	}
	problem, err := pc.Problems.Get(ctx, userID, problemID)
	if err != nil {
		return handleError(c, pc.Logger, err)
	}
	return utils.OK(c, problem)
}

func (pc *ProblemsController) DeleteProblem(c *fiber.Ctx) error {
	userID, err := currentUser(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	problemID, err := paramID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid problem ID")
	}

	if err := pc.Problems.Delete(c.UserContext(), userID, problemID); err != nil {
		return handleError(c, pc.Logger, err)
	}
	return utils.NoContent(c)
}
