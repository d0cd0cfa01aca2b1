package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bilboko-doinuak/services"
	"bilboko-doinuak/utils"
)

// SetupConfigRoutes exposes the feature flags the client adapts to: whether
// cloud accounts, Google sign-in and media uploads are live on this deploy.
func SetupConfigRoutes(app *fiber.App, auth *services.AuthService, googleOAuth bool) {
	app.Get("/api/config/features", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"remoteStorage": auth.Configured(),
			"auth":          auth.Configured(),
			"googleOAuth":   auth.Configured() && googleOAuth,
			"media":         utils.MediaConfigured(),
			"dailyMissions": true,
			"collections":   true,
		})
	})

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}
