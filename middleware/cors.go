// middleware/cors.go
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const (
	allowMethods = "GET,POST,OPTIONS"
	allowHeaders = "Origin, Content-Type, Accept, Authorization, X-Requested-With"
)

// CORS allows cross-origin calls. With "*" every response carries a wildcard
// origin plus Access-Control-Allow-Credentials, which fiber's cors middleware
// refuses to combine, so that case is written by hand.
func CORS(allowedOrigins string) fiber.Handler {
	origins := strings.TrimSpace(allowedOrigins)
	if origins != "" && origins != "*" {
		list := strings.Split(origins, ",")
		for i, o := range list {
			list[i] = strings.TrimSpace(o)
		}
		return cors.New(cors.Config{
			AllowOrigins:     strings.Join(list, ","),
			AllowMethods:     allowMethods,
			AllowHeaders:     allowHeaders,
			AllowCredentials: true,
			MaxAge:           86400,
		})
	}

	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
		c.Set(fiber.HeaderAccessControlAllowCredentials, "true")
		if c.Method() == fiber.MethodOptions {
			c.Set(fiber.HeaderAccessControlAllowMethods, allowMethods)
			c.Set(fiber.HeaderAccessControlAllowHeaders, allowHeaders)
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	}
}
