package middleware

import (
	"devtracker/backend/config"
	"devtracker/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// UserIDKey is the Locals key the authenticated user id is stored under.
const UserIDKey = "user_id"

func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}
