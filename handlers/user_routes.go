// handlers/user_routes.go
package handlers

import (
	"game-score-service/services"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App, userService *services.UserService) {
	app.Post("/create-user", func(c *fiber.Ctx) error {
		var req services.CreateUserRequest
		if err := parseJSON(c, "USERS", &req); err != nil {
			return fail(c, "USERS", err)
		}

		res, err := userService.CreateUser(c.UserContext(), req)
		if err != nil {
			return fail(c, "USERS", err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	})

	app.Get("/users", func(c *fiber.Ctx) error {
		users, err := userService.ListUsers(c.UserContext())
		if err != nil {
			return fail(c, "USERS", err)
		}
		return c.JSON(users)
	})
}
