package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Samsooon76/cerfalt/config"
	"github.com/Samsooon76/cerfalt/services"
	"github.com/Samsooon76/cerfalt/store"
)

// Deps regroupe l'état injecté dans les handlers : le store construit une
// fois par processus, les services, et l'identité de repli quand la requête
// ne porte pas d'en-tête X-User-ID.
type Deps struct {
	Store          *store.Store
	Pipeline       *services.Pipeline
	Ingest         *services.Ingest
	Stats          *services.Stats
	Cfg            config.Config
	DefaultActorID uint
}

// SetupRoutes branche toute la surface HTTP sur l'application Fiber.
func SetupRoutes(app *fiber.App, deps Deps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "cerfalt-api",
			"status":  "ok",
			"env":     deps.Cfg.Env,
		})
	})

	SetupAuthRoutes(app, deps)

	api := app.Group("/api")
	setupUserRoutes(api, deps)
	setupApprenticeRoutes(api, deps)
	setupCompanyRoutes(api, deps)
	setupMentorRoutes(api, deps)
	setupDossierRoutes(api, deps)
	setupDocumentRoutes(api, deps)
	setupCommentRoutes(api, deps)
	setupDashboardRoutes(api, deps)
}
