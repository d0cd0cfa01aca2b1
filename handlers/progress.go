package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bilboko-doinuak/levels"
	"bilboko-doinuak/middleware"
	"bilboko-doinuak/models"
	"bilboko-doinuak/storage"
)

const (
	xpPerCorrectAnswer = 20
	fastMemoryMoves    = 20
)

// progressView decorates raw progress with the derived level numbers the
// client renders on the profile screen.
func progressView(p *models.GameProgress) fiber.Map {
	current, needed := levels.XPForNextLevel(p.Odisea2XP)
	return fiber.Map{
		"progress":      p,
		"levelInfo":     levels.LevelInfo(p.Level),
		"levelProgress": levels.CalculateLevelProgress(p.Odisea2XP),
		"xpInLevel":     current,
		"xpForNext":     needed,
	}
}

// SetupProgressRoutes registers the game-progress endpoints: read, XP
// grants, badge unlocks and finished-game reporting.
func SetupProgressRoutes(app *fiber.App, store *storage.Factory) {
	api := app.Group("/api/user", middleware.RequireIdentity())

	api.Get("/progress", func(c *fiber.Ctx) error {
		adapter := store.Adapter(middleware.UserID(c), middleware.DeviceID(c))
		progress, err := adapter.GetProgress(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load progress",
				"cause": err.Error(),
			})
		}
		return c.JSON(progressView(progress))
	})

	api.Post("/progress/xp", func(c *fiber.Ctx) error {
		var body struct {
			Amount int `json:"amount"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
				"cause": err.Error(),
			})
		}
		if body.Amount <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "amount must be positive",
			})
		}

		adapter := store.Adapter(middleware.UserID(c), middleware.DeviceID(c))
		progress, err := adapter.AddXP(c.Context(), body.Amount)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to add XP",
				"cause": err.Error(),
			})
		}
		return c.JSON(progressView(progress))
	})

	api.Post("/badges/:id", func(c *fiber.Ctx) error {
		badgeID := c.Params("id")
		if _, ok := levels.BadgeByID(badgeID); !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "unknown badge",
			})
		}

		adapter := store.Adapter(middleware.UserID(c), middleware.DeviceID(c))
		if err := adapter.UnlockBadge(c.Context(), badgeID, nil); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to unlock badge",
				"cause": err.Error(),
			})
		}

		progress, err := adapter.GetProgress(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load progress",
				"cause": err.Error(),
			})
		}
		return c.JSON(progressView(progress))
	})

	// One call per finished game: records the play, pays quiz XP and unlocks
	// the performance badges so the client never sequences these itself.
	api.Post("/games", func(c *fiber.Ctx) error {
		var body struct {
			GameType   string `json:"gameType"`
			Score      int    `json:"score"`
			MaxScore   int    `json:"maxScore"`
			Moves      *int   `json:"moves"`
			BestStreak *int   `json:"bestStreak"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
				"cause": err.Error(),
			})
		}
		if body.GameType != models.GameTypeQuiz && body.GameType != models.GameTypeMemory {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "gameType must be quiz or memory",
			})
		}
		if body.Score < 0 || body.MaxScore < 0 || body.Score > body.MaxScore {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "score must be between 0 and maxScore",
			})
		}

		adapter := store.Adapter(middleware.UserID(c), middleware.DeviceID(c))
		record := models.GameRecord{
			GameType:   body.GameType,
			Score:      body.Score,
			MaxScore:   body.MaxScore,
			Moves:      body.Moves,
			BestStreak: body.BestStreak,
		}
		if err := adapter.RecordGame(c.Context(), record); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to record game",
				"cause": err.Error(),
			})
		}

		earnedXP := 0
		if body.GameType == models.GameTypeQuiz {
			earnedXP = body.Score * xpPerCorrectAnswer
		}
		if earnedXP > 0 {
			if _, err := adapter.AddXP(c.Context(), earnedXP); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to add XP",
					"cause": err.Error(),
				})
			}
		}

		switch {
		case body.GameType == models.GameTypeQuiz && body.MaxScore > 0 && body.Score == body.MaxScore:
			if err := adapter.UnlockBadge(c.Context(), levels.BadgePerfectQuiz, nil); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to unlock badge",
					"cause": err.Error(),
				})
			}
		case body.GameType == models.GameTypeMemory && body.Moves != nil && *body.Moves < fastMemoryMoves:
			if err := adapter.UnlockBadge(c.Context(), levels.BadgeFastMemory, nil); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to unlock badge",
					"cause": err.Error(),
				})
			}
		}

		progress, err := adapter.GetProgress(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load progress",
				"cause": err.Error(),
			})
		}
		view := progressView(progress)
		view["earnedXP"] = earnedXP
		return c.JSON(view)
	})
}
