package handlers

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"bilboko-doinuak/middleware"
	"bilboko-doinuak/models"
	"bilboko-doinuak/services"
	"bilboko-doinuak/utils"
)

// sendCSV buffers the whole export before touching the response, so a
// mid-export failure yields a clean JSON error instead of a JSON tail glued
// onto partial CSV output.
func sendCSV(c *fiber.Ctx, filename string, build func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := build(&buf); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to export CSV",
			"cause": err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(buf.Bytes())
}

// SetupAdminRoutes registers the collaborator dashboard: registration stats,
// demographic distributions, CSV export and media upload. Everything here
// needs the remote backend plus an allow-listed admin account.
func SetupAdminRoutes(app *fiber.App, auth *services.AuthService, stats *services.StatsService, adminEmails []string) {
	api := app.Group("/api/admin", middleware.RequireAdmin(auth, adminEmails))

	api.Use(func(c *fiber.Ctx) error {
		if stats.DB == nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "the remote backend is not configured",
			})
		}
		return c.Next()
	})

	api.Get("/stats", func(c *fiber.Ctx) error {
		all, err := stats.AllStats()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to compute stats",
				"cause": err.Error(),
			})
		}
		return c.JSON(all)
	})

	api.Get("/stats/users", func(c *fiber.Ctx) error {
		userStats, err := stats.UserStats()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to compute user stats",
				"cause": err.Error(),
			})
		}
		return c.JSON(userStats)
	})

	distributionRoute := func(path string, fetch func() ([]models.DistributionItem, error)) {
		api.Get(path, func(c *fiber.Ctx) error {
			items, err := fetch()
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to compute distribution",
					"cause": err.Error(),
				})
			}
			return c.JSON(items)
		})
	}
	distributionRoute("/stats/age", stats.AgeDistribution)
	distributionRoute("/stats/gender", stats.GenderDistribution)
	distributionRoute("/stats/barrio", stats.BarrioDistribution)

	api.Get("/stats/recent", func(c *fiber.Ctx) error {
		rows, err := stats.RecentRegistrations(c.QueryInt("limit", 10))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch recent registrations",
				"cause": err.Error(),
			})
		}
		return c.JSON(rows)
	})

	api.Get("/stats/export", func(c *fiber.Ctx) error {
		filename := fmt.Sprintf("bilboko-doinuak-stats-%s.csv", time.Now().Format("2006-01-02"))
		limit := c.QueryInt("limit", 100)
		return sendCSV(c, filename, func(w io.Writer) error {
			return stats.ExportCSV(w, limit)
		})
	})

	// Audio and image uploads for new sound points land in the R2 bucket.
	api.Post("/media", func(c *fiber.Ctx) error {
		if !utils.MediaConfigured() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "the media store is not configured",
			})
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "a file field is required",
				"cause": err.Error(),
			})
		}
		folder := c.FormValue("folder", "media")

		url, err := utils.UploadMedia(c.Context(), fileHeader, utils.MediaKey(folder, fileHeader.Filename))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to upload media",
				"cause": err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
	})
}
