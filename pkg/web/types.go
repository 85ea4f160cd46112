package web

import (
	"github.com/gofiber/fiber/v3"
)

// queryInput returns the "input" query parameter, or nil when the
// parameter is absent. Presence matters: an empty input still substitutes
// the placeholder, a missing one leaves node configs untouched.
func queryInput(c fiber.Ctx) *string {
	if !c.Request().URI().QueryArgs().Has("input") {
		return nil
	}

	value := c.Query("input")

	return &value
}
