package routes

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func setupDashboardRoutes(api fiber.Router, deps Deps) {
	api.Get("/stats", func(c *fiber.Ctx) error { return c.JSON(deps.Stats.Compute()) })
	api.Get("/activities", func(c *fiber.Ctx) error { return listActivities(c, deps) })
}

// GET /api/activities?dossier_id=&limit= — fil d'audit, plus récent
// d'abord.
func listActivities(c *fiber.Ctx, deps Deps) error {
	var filter *uint
	if v := c.Query("dossier_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "dossier_id invalide"})
		}
		u := uint(id)
		filter = &u
	}

	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "limit invalide"})
		}
		limit = n
	}

	return c.JSON(deps.Store.ListActivities(filter, limit))
}
