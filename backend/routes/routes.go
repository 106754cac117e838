package routes

import (
	"devtracker/backend/config"
	"devtracker/backend/controllers"
	"devtracker/backend/middleware"
	"devtracker/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// NewApp builds the Fiber app with CORS, request logging and every route.
func NewApp(deps *Deps, cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			}
			return utils.Error(c, code, err)
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(deps.Logger.Named("http")))

	SetupRoutes(app, deps, cfg)
	return app
}

func SetupRoutes(app *fiber.App, deps *Deps, cfg *config.Config) {
	app.Get("/api/health", func(c *fiber.Ctx) error {
		return utils.OK(c, fiber.Map{"status": "ok"})
	})

	api := app.Group("/api", middleware.AuthMiddleware(cfg))

	// Profile routes
	userController := controllers.NewUserController(deps.Store.Profiles, cfg, deps.Logger)
	api.Get("/profile", userController.GetProfile)
	api.Put("/profile", userController.UpdateProfile)

	// Goals routes
	goalsController := controllers.NewGoalsController(deps.Goals, cfg, deps.Logger)
	goals := api.Group("/goals")
	goals.Get("/", goalsController.GetTodayGoals)
	goals.Post("/", goalsController.CreateGoal)
	goals.Post("/:id/toggle", goalsController.ToggleGoal)
	goals.Post("/:id/start", goalsController.StartGoal)
	goals.Delete("/:id", goalsController.DeleteGoal)

	// Problems routes
	problemsController := controllers.NewProblemsController(deps.Store.Problems, cfg, deps.Logger)
	problems := api.Group("/problems")
	problems.Get("/", problemsController.GetProblems)
	problems.Post("/", problemsController.CreateProblem)
	problems.Put("/:id", problemsController.UpdateProblem)
	problems.Delete("/:id", problemsController.DeleteProblem)

	// Progress routes
	progressController := controllers.NewProgressController(deps.Store.Scores, deps.Scores, cfg, deps.Logger)
	api.Get("/progress/scores", progressController.GetScores)
	api.Get("/progress/heatmap", progressController.GetHeatmap)
	api.Post("/progress/streak", progressController.RecalculateStreak)

	// LeetCode routes
	leetcodeController := controllers.NewLeetCodeController(
		deps.Merger, deps.Reconciler, deps.Watcher, deps.Store.Profiles, cfg, deps.Logger,
	)
	lc := api.Group("/leetcode")
	lc.Get("/stats", leetcodeController.GetStats)
	lc.Post("/sync", leetcodeController.SyncProblems)
	lc.Get("/watch", leetcodeController.GetWatch)
	lc.Post("/watch", leetcodeController.StartWatch)
	lc.Delete("/watch", leetcodeController.StopWatch)
}
