// handlers/export_routes.go
package handlers

import (
	"context"
	"fmt"
	"time"

	"game-score-service/services"

	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func SetupExportRoutes(app *fiber.App, exportService *services.ExportService) {
	app.Get("/export-csv/:minDate/:maxDate", csvExport("scores", exportService.ScoresCSV))
	app.Get("/export-stats-csv/:minDate/:maxDate", csvExport("redemptions", exportService.RedemptionsCSV))

	app.Get("/export-xlsx/:minDate/:maxDate", func(c *fiber.Ctx) error {
		from, to, err := parseRange(c)
		if err != nil {
			return fail(c, "EXPORT", err)
		}
		body, err := exportService.ScoresXLSX(c.UserContext(), from, to)
		if err != nil {
			return fail(c, "EXPORT", err)
		}
		c.Set(fiber.HeaderContentType, xlsxContentType)
		c.Set(fiber.HeaderContentDisposition, attachment(services.ExportFilename("scores", from, to, "xlsx")))
		return c.Send(body)
	})
}

type csvFunc func(ctx context.Context, from, to time.Time) (string, error)

func csvExport(kind string, export csvFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, to, err := parseRange(c)
		if err != nil {
			return fail(c, "EXPORT", err)
		}
		body, err := export(c.UserContext(), from, to)
		if err != nil {
			return fail(c, "EXPORT", err)
		}
		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, attachment(services.ExportFilename(kind, from, to, "csv")))
		return c.SendString(body)
	}
}

func parseRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	rawFrom, rawTo, err := dateParams(c)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	from, err := services.ParseDate(rawFrom)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := services.ParseDate(rawTo)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

func attachment(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filename)
}
