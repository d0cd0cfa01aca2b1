package middleware

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"
)

var langMatcher = language.NewMatcher([]language.Tag{
	language.Spanish, // default
	language.MustParse("eu"),
})

// Language negotiates the response language for content endpoints.
// A ?lang= query param wins over the Accept-Language header; anything
// outside es/eu falls back to Spanish.
func Language() fiber.Handler {
	return func(c *fiber.Ctx) error {
		accept := c.Get("Accept-Language")
		if q := c.Query("lang"); q != "" {
			accept = q
		}
		tag, _ := language.MatchStrings(langMatcher, accept)
		base, _ := tag.Base()

		lang := "es"
		if base.String() == "eu" {
			lang = "eu"
		}
		c.Locals("lang", lang)
		return c.Next()
	}
}

// Lang returns the negotiated language, defaulting to Spanish.
func Lang(c *fiber.Ctx) string {
	if l, ok := c.Locals("lang").(string); ok && l != "" {
		return l
	}
	return "es"
}
