package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corsApp(origins string) *fiber.App {
	app := fiber.New()
	app.Use(CORS(origins))
	app.Get("/users", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestCORS_Wildcard(t *testing.T) {
	app := corsApp("*")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "true", resp.Header.Get(fiber.HeaderAccessControlAllowCredentials))

	resp, err = app.Test(httptest.NewRequest(http.MethodOptions, "/users", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, allowMethods, resp.Header.Get(fiber.HeaderAccessControlAllowMethods))
}

func TestCORS_EmptyFallsBackToWildcard(t *testing.T) {
	resp, err := corsApp("").Test(httptest.NewRequest(http.MethodGet, "/users", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
}

func TestCORS_OriginList(t *testing.T) {
	app := corsApp("https://game.gg, https://admin.gg")

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set(fiber.HeaderOrigin, "https://admin.gg")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "https://admin.gg", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "true", resp.Header.Get(fiber.HeaderAccessControlAllowCredentials))

	req = httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set(fiber.HeaderOrigin, "https://other.gg")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Empty(t, resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
}
