package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bilboko-doinuak/middleware"
	"bilboko-doinuak/models"
	"bilboko-doinuak/storage"
)

// SetupProfileRoutes registers the profile read/write endpoints and the
// local-to-cloud migration trigger.
func SetupProfileRoutes(app *fiber.App, store *storage.Factory) {
	api := app.Group("/api/user", middleware.RequireIdentity())

	api.Get("/profile", func(c *fiber.Ctx) error {
		adapter := store.Adapter(middleware.UserID(c), middleware.DeviceID(c))
		profile, err := adapter.GetProfile(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load profile",
				"cause": err.Error(),
			})
		}
		if profile == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "profile not found",
			})
		}
		return c.JSON(profile)
	})

	api.Put("/profile", func(c *fiber.Ctx) error {
		var body struct {
			DisplayName string          `json:"displayName"`
			AvatarURL   string          `json:"avatarUrl"`
			AgeRange    models.AgeRange `json:"ageRange"`
			Gender      models.Gender   `json:"gender"`
			Barrio      models.Barrio   `json:"barrio"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
				"cause": err.Error(),
			})
		}
		// Junk survey values would flow straight into the admin
		// distributions, so unknown options are rejected here.
		if !body.AgeRange.Valid() || !body.Gender.Valid() || !body.Barrio.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "unknown survey value",
			})
		}

		userID, deviceID := middleware.UserID(c), middleware.DeviceID(c)
		adapter := store.Adapter(userID, deviceID)

		profile, err := adapter.GetProfile(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load profile",
				"cause": err.Error(),
			})
		}

		now := storage.NowISO()
		if profile == nil {
			id := userID
			if id == "" {
				id = deviceID
			}
			profile = &models.UserProfile{ID: id, CreatedAt: now}
		}

		profile.DisplayName = body.DisplayName
		profile.AvatarURL = body.AvatarURL
		profile.AgeRange = body.AgeRange
		profile.Gender = body.Gender
		profile.Barrio = body.Barrio
		// The survey is complete once the demographic fields are all set.
		profile.ProfileCompleted = body.AgeRange != "" && body.Gender != "" && body.Barrio != ""
		profile.LastLoginAt = now

		if err := adapter.SaveProfile(c.Context(), profile); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to save profile",
				"cause": err.Error(),
			})
		}
		return c.JSON(profile)
	})

	// Migration copies the device's local blobs into the cloud account once,
	// never overwriting data the account already has.
	api.Post("/migrate", middleware.RequireUser(), func(c *fiber.Ctx) error {
		remote := store.Remote(middleware.UserID(c), middleware.DeviceID(c))
		remote.MigrateFromLocal(c.Context())
		return c.JSON(fiber.Map{"migrated": true})
	})
}
