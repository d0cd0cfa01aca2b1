package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"bilboko-doinuak/middleware"
	"bilboko-doinuak/services"
)

// SetupAuthRoutes registers sign-up, sign-in, magic-link, Google OAuth and
// sign-out. All of these require the remote backend; without it the app runs
// in anonymous/local mode and these endpoints answer 503.
func SetupAuthRoutes(app *fiber.App, auth *services.AuthService) {
	api := app.Group("/api/auth")

	requireConfigured := func(c *fiber.Ctx) error {
		if !auth.Configured() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "authentication is not configured on this server",
			})
		}
		return c.Next()
	}
	api.Use(requireConfigured)

	type credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	api.Post("/signup", func(c *fiber.Ctx) error {
		var body credentials
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
				"cause": err.Error(),
			})
		}

		user, token, err := auth.SignUp(c.Context(), body.Email, body.Password)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "failed to sign up",
				"cause": err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"user":  user,
			"token": token,
		})
	})

	api.Post("/signin", func(c *fiber.Ctx) error {
		var body credentials
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
				"cause": err.Error(),
			})
		}

		user, token, err := auth.SignIn(c.Context(), body.Email, body.Password)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "invalid email or password",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to sign in",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"user":  user,
			"token": token,
		})
	})

	// The magic-link token is returned in the response: mail delivery is the
	// front-of-house's concern, the API only mints and verifies tokens.
	api.Post("/magic-link", func(c *fiber.Ctx) error {
		var body struct {
			Email string `json:"email"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
				"cause": err.Error(),
			})
		}

		token, err := auth.IssueMagicLink(c.Context(), body.Email)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "failed to issue magic link",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"token": token})
	})

	api.Post("/magic-link/verify", func(c *fiber.Ctx) error {
		var body struct {
			Token string `json:"token"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
				"cause": err.Error(),
			})
		}

		user, session, err := auth.VerifyMagicLink(c.Context(), body.Token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired magic link",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"user":  user,
			"token": session,
		})
	})

	api.Get("/google", func(c *fiber.Ctx) error {
		return c.Redirect(auth.GoogleAuthURL(uuid.NewString()), fiber.StatusTemporaryRedirect)
	})

	api.Get("/google/callback", func(c *fiber.Ctx) error {
		code := c.Query("code")
		if code == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "missing authorization code",
			})
		}

		user, session, err := auth.HandleGoogleCallback(c.Context(), code)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Google sign-in failed",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"user":  user,
			"token": session,
		})
	})

	api.Post("/signout", func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token != "" && token != header {
			auth.SignOut(token)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	api.Get("/me", middleware.RequireUser(), func(c *fiber.Ctx) error {
		user, err := auth.GetUser(c.Context(), middleware.UserID(c))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "account not found",
				"cause": err.Error(),
			})
		}
		return c.JSON(user)
	})
}
