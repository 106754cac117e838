package controllers

import (
	"net/url"
	"strings"

	"devtracker/backend/config"
	"devtracker/backend/store"
	"devtracker/backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type UserController struct {
	Profiles *store.Profiles
	Cfg      *config.Config
	Logger   *zap.Logger
}

func NewUserController(profiles *store.Profiles, cfg *config.Config, logger *zap.Logger) *UserController {
	return &UserController{Profiles: profiles, Cfg: cfg, Logger: logger}
}

type UpdateProfileRequest struct {
	FullName    *string `json:"full_name" example:"Jane Doe"`
	AvatarURL   *string `json:"avatar_url" format:"uri"`
	CareerPath  *string `json:"career_path" example:"Backend"`
	GithubURL   *string `json:"github_url" format:"uri"`
	LinkedinURL *string `json:"linkedin_url" format:"uri"`
	LeetcodeURL *string `json:"leetcode_url" format:"uri"`
}

// GetProfile godoc
// @Summary Get user profile
// @Description Returns the authenticated user's profile, creating it on first access
// @Tags users
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /profile [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	userID, err := currentUser(c, uc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	profile, err := uc.Profiles.Get(c.UserContext(), userID)
	if err != nil {
		return handleError(c, uc.Logger, err)
	}
	return utils.OK(c, profile)
}

// UpdateProfile godoc
// @Summary Update user profile
// @Tags users
// @Accept json
// @Produce json
// @Param input body UpdateProfileRequest true "Profile update data"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /profile [put]
func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	userID, err := currentUser(c, uc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input UpdateProfileRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	fields := map[string]interface{}{}
	invalid := map[string]string{}
	if input.FullName != nil {
		fields["full_name"] = strings.TrimSpace(*input.FullName)
	}
	if input.CareerPath != nil {
		fields["career_path"] = strings.TrimSpace(*input.CareerPath)
	}
	for column, value := range map[string]*string{
		"avatar_url":   input.AvatarURL,
		"github_url":   input.GithubURL,
		"linkedin_url": input.LinkedinURL,
		"leetcode_url": input.LeetcodeURL,
	} {
		if value == nil {
			continue
		}
		link := strings.TrimSpace(*value)
		if link != "" && !validURL(link) {
			invalid[column] = "must be an http(s) URL"
			continue
		}
		fields[column] = link
	}

	if len(invalid) > 0 {
		return utils.ValidationError(c, invalid)
	}
	if len(fields) == 0 {
		return utils.BadRequest(c, "No fields to update")
	}

	ctx := c.UserContext()
	if err := uc.Profiles.Update(ctx, userID, fields); err != nil {
		return handleError(c, uc.Logger, err)
	}
	profile, err := uc.Profiles.Get(ctx, userID)
	if err != nil {
		return handleError(c, uc.Logger, err)
	}
	return utils.OK(c, profile)
}

func validURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
