package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bilboko-doinuak/middleware"
	"bilboko-doinuak/missions"
	"bilboko-doinuak/models"
	"bilboko-doinuak/storage"
)

// missionView flattens a mission plus its per-user state to one language.
func missionView(m missions.Mission, lang string, progress int, claimed []string) fiber.Map {
	description := m.DescriptionES
	if lang == "eu" {
		description = m.DescriptionEU
	}
	return fiber.Map{
		"id":          m.ID,
		"type":        m.Type,
		"target":      m.Target,
		"reward":      m.Reward,
		"description": description,
		"progress":    progress,
		"percent":     missions.ProgressPercent(m, progress),
		"completed":   missions.IsCompleted(m, progress),
		"claimed":     missions.IsClaimed(m.ID, claimed),
	}
}

// refreshMissions regenerates a stale snapshot and recomputes every
// mission's progress from today's gameplay, persisting when anything moved.
func refreshMissions(c *fiber.Ctx, adapter storage.Adapter, progress *models.GameProgress) ([]missions.Mission, error) {
	today := missions.Today()
	dirty := false

	if missions.ShouldRegenerate(progress.DailyMissions, today) {
		progress.DailyMissions = missions.NewState(today)
		dirty = true
	}

	todays := missions.Generate(today)
	stats := missions.StatsFromProgress(progress, today)
	updated := missions.CalculateProgress(todays, progress.DailyMissions.Progress, stats)
	for id, v := range updated {
		if progress.DailyMissions.Progress[id] != v {
			dirty = true
		}
	}
	progress.DailyMissions.Progress = updated

	if dirty {
		if err := adapter.SaveProgress(c.Context(), progress); err != nil {
			return nil, err
		}
	}
	return todays, nil
}

// SetupMissionRoutes registers the daily-mission endpoints. The mission list
// itself is public (identical for everyone on a given day); progress and
// claiming need an identity.
func SetupMissionRoutes(app *fiber.App, store *storage.Factory) {
	app.Get("/api/missions/today", func(c *fiber.Ctx) error {
		lang := middleware.Lang(c)
		todays := missions.Generate(missions.Today())

		out := make([]fiber.Map, 0, len(todays))
		for _, m := range todays {
			out = append(out, missionView(m, lang, 0, nil))
		}
		return c.JSON(fiber.Map{
			"date":     missions.Today(),
			"missions": out,
		})
	})

	api := app.Group("/api/user/missions", middleware.RequireIdentity())

	api.Get("/", func(c *fiber.Ctx) error {
		adapter := store.Adapter(middleware.UserID(c), middleware.DeviceID(c))
		progress, err := adapter.GetProgress(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load progress",
				"cause": err.Error(),
			})
		}

		todays, err := refreshMissions(c, adapter, progress)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to save mission progress",
				"cause": err.Error(),
			})
		}

		lang := middleware.Lang(c)
		state := progress.DailyMissions
		out := make([]fiber.Map, 0, len(todays))
		for _, m := range todays {
			out = append(out, missionView(m, lang, state.Progress[m.ID], state.Claimed))
		}
		return c.JSON(fiber.Map{
			"date":     state.Date,
			"missions": out,
			"coins":    progress.Coins,
		})
	})

	api.Post("/:id/claim", func(c *fiber.Ctx) error {
		missionID := c.Params("id")

		adapter := store.Adapter(middleware.UserID(c), middleware.DeviceID(c))
		progress, err := adapter.GetProgress(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load progress",
				"cause": err.Error(),
			})
		}

		todays, err := refreshMissions(c, adapter, progress)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to save mission progress",
				"cause": err.Error(),
			})
		}

		var mission *missions.Mission
		for i := range todays {
			if todays[i].ID == missionID {
				mission = &todays[i]
				break
			}
		}
		if mission == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "mission not found for today",
			})
		}

		state := progress.DailyMissions
		if missions.IsClaimed(mission.ID, state.Claimed) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "reward already claimed",
			})
		}
		if !missions.IsCompleted(*mission, state.Progress[mission.ID]) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "mission is not completed yet",
			})
		}

		state.Claimed = append(state.Claimed, mission.ID)
		progress.Coins += mission.Reward
		if err := adapter.SaveProgress(c.Context(), progress); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to save progress",
				"cause": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"reward": mission.Reward,
			"coins":  progress.Coins,
		})
	})
}
