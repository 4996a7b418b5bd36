// handlers/score_routes.go
package handlers

import (
	"game-score-service/services"

	"github.com/gofiber/fiber/v2"
)

func SetupScoreRoutes(app *fiber.App, scoreService *services.ScoreService) {
	// Single redemption of a distributed code
	app.Post("/add-score", func(c *fiber.Ctx) error {
		var req services.AddScoreRequest
		if err := parseJSON(c, "SCORES", &req); err != nil {
			return fail(c, "SCORES", err)
		}

		res, err := scoreService.AddScore(c.UserContext(), req)
		if err != nil {
			return fail(c, "SCORES", err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	})

	// One scoring occasion for a list of players
	app.Post("/add-scores", func(c *fiber.Ctx) error {
		var req services.AddScoresRequest
		if err := parseJSON(c, "SCORES", &req); err != nil {
			return fail(c, "SCORES", err)
		}

		res, err := scoreService.AddScores(c.UserContext(), req)
		if err != nil {
			return fail(c, "SCORES", err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	})
}
