package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bilboko-doinuak/levels"
	"bilboko-doinuak/middleware"
	"bilboko-doinuak/services"
	"bilboko-doinuak/storage"
)

// SetupContentRoutes registers the public catalog: sound points, routes,
// route-ordered points, badge and level metadata.
func SetupContentRoutes(app *fiber.App, content *services.ContentService) {
	api := app.Group("/api")

	api.Get("/sounds", func(c *fiber.Ctx) error {
		points := content.SoundPoints(middleware.Lang(c), c.Query("query"), c.Query("category"))
		return c.JSON(points)
	})

	api.Get("/sounds/:id", func(c *fiber.Ctx) error {
		point, err := content.SoundPoint(c.Params("id"), middleware.Lang(c))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "sound point not found",
			})
		}
		return c.JSON(point)
	})

	api.Get("/routes", func(c *fiber.Ctx) error {
		return c.JSON(content.Routes(middleware.Lang(c)))
	})

	api.Get("/routes/:id", func(c *fiber.Ctx) error {
		route, err := content.Route(c.Params("id"), middleware.Lang(c))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "route not found",
			})
		}
		return c.JSON(route)
	})

	// Points come back in walking-visit order along the route geometry.
	api.Get("/routes/:id/points", func(c *fiber.Ctx) error {
		points, err := content.RoutePoints(c.Params("id"), middleware.Lang(c))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "route not found",
			})
		}
		return c.JSON(points)
	})

	api.Get("/badges", func(c *fiber.Ctx) error {
		return c.JSON(levels.BadgeCatalog)
	})

	api.Get("/levels", func(c *fiber.Ctx) error {
		return c.JSON(levels.Levels)
	})
}

// SetupCollectionRoutes registers the per-user sound-collection views and
// the unlock operation.
func SetupCollectionRoutes(app *fiber.App, content *services.ContentService, store *storage.Factory) {
	app.Get("/api/collections", middleware.RequireIdentity(), func(c *fiber.Ctx) error {
		adapter := store.Adapter(middleware.UserID(c), middleware.DeviceID(c))
		progress, err := adapter.GetProgress(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load progress",
				"cause": err.Error(),
			})
		}
		return c.JSON(content.CollectionProgress(progress.UnlockedSounds, middleware.Lang(c)))
	})

	app.Post("/api/user/collections/unlock", middleware.RequireIdentity(), func(c *fiber.Ctx) error {
		var body struct {
			SoundID string `json:"soundId"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
				"cause": err.Error(),
			})
		}
		if !content.SoundExists(body.SoundID) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "sound point not found",
			})
		}

		adapter := store.Adapter(middleware.UserID(c), middleware.DeviceID(c))
		progress, err := adapter.GetProgress(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load progress",
				"cause": err.Error(),
			})
		}

		already := false
		for _, id := range progress.UnlockedSounds {
			if id == body.SoundID {
				already = true
				break
			}
		}
		if !already {
			progress.UnlockedSounds = append(progress.UnlockedSounds, body.SoundID)
			if err := adapter.SaveProgress(c.Context(), progress); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to save progress",
					"cause": err.Error(),
				})
			}
		}

		return c.JSON(fiber.Map{
			"unlocked":       !already,
			"unlockedSounds": progress.UnlockedSounds,
			"collections":    content.CollectionProgress(progress.UnlockedSounds, middleware.Lang(c)),
		})
	})
}
