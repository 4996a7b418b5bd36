// handlers/code_routes.go
package handlers

import (
	"game-score-service/services"

	"github.com/gofiber/fiber/v2"
)

func SetupCodeRoutes(app *fiber.App, codeService *services.CodeService) {
	app.Post("/create-code", func(c *fiber.Ctx) error {
		var req services.CreateCodeRequest
		if err := parseJSON(c, "CODES", &req); err != nil {
			return fail(c, "CODES", err)
		}

		res, err := codeService.CreateCode(c.UserContext(), req)
		if err != nil {
			return fail(c, "CODES", err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	})
}
