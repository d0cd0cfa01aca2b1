package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"bilboko-doinuak/services"
)

// UserContext resolves the request identity: a Bearer session token sets
// user_id, and the X-Device-ID header (the app's per-install id) is always
// captured so anonymous play can hit the local backend. Invalid tokens are
// rejected outright rather than silently downgraded to anonymous.
func UserContext(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("device_id", c.Get("X-Device-ID"))

		header := c.Get("Authorization")
		if header == "" {
			return c.Next()
		}
		token := strings.TrimPrefix(header, "Bearer ")
		if token == header {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "malformed Authorization header",
			})
		}

		userID, err := auth.ParseSession(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid session token",
				"cause": err.Error(),
			})
		}
		c.Locals("user_id", userID)
		return c.Next()
	}
}

// UserID returns the authenticated user id, or "" for anonymous requests.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}

// DeviceID returns the caller's device id, or "".
func DeviceID(c *fiber.Ctx) string {
	id, _ := c.Locals("device_id").(string)
	return id
}

// RequireIdentity gates gameplay routes: a signed-in user or at least a
// device id must be present.
func RequireIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if UserID(c) == "" && DeviceID(c) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "authentication or an X-Device-ID header is required",
			})
		}
		return c.Next()
	}
}

// RequireUser gates routes that only make sense for signed-in users.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if UserID(c) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "authentication required",
			})
		}
		return c.Next()
	}
}

// RequireAdmin allows only signed-in users whose email is in the
// ADMIN_EMAILS allow-list.
func RequireAdmin(auth *services.AuthService, adminEmails []string) fiber.Handler {
	allowed := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			allowed[e] = true
		}
	}

	return func(c *fiber.Ctx) error {
		userID := UserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "authentication required",
			})
		}
		user, err := auth.GetUser(c.Context(), userID)
		if err != nil || !allowed[strings.ToLower(user.Email)] {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "admin access required",
			})
		}
		return c.Next()
	}
}
