package handlers

import (
	"log"
	"net/url"

	"game-score-service/services"

	"github.com/gofiber/fiber/v2"
)

// fail reports every failure the same way: 400 with the error text. The kind
// lets clients branch on category.
func fail(c *fiber.Ctx, tag string, err error) error {
	log.Printf("[%s] ❌ %s %s: %v", tag, c.Method(), c.Path(), err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": err.Error(),
		"kind":    services.KindOf(err),
	})
}

// parseJSON decodes the raw body whatever the Content-Type header says.
func parseJSON(c *fiber.Ctx, tag string, v any) error {
	log.Printf("[%s] request %s", tag, c.Body())
	if err := c.App().Config().JSONDecoder(c.Body(), v); err != nil {
		return &services.Error{Kind: services.KindInvalid, Message: "invalid request body", Err: err}
	}
	return nil
}

// dateParams reads the minDate and maxDate path parameters.
func dateParams(c *fiber.Ctx) (from, to string, err error) {
	if from, err = pathParam(c, "minDate"); err != nil {
		return "", "", err
	}
	if to, err = pathParam(c, "maxDate"); err != nil {
		return "", "", err
	}
	return from, to, nil
}

func pathParam(c *fiber.Ctx, name string) (string, error) {
	value, err := url.PathUnescape(c.Params(name))
	if err != nil {
		return "", &services.Error{Kind: services.KindInvalid, Message: "invalid " + name, Err: err}
	}
	return value, nil
}
