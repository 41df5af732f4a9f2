package routes

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/Samsooon76/cerfalt/models"
	"github.com/Samsooon76/cerfalt/services"
	"github.com/Samsooon76/cerfalt/store"
)

func setupDossierRoutes(api fiber.Router, deps Deps) {
	dossiers := api.Group("/dossiers")
	dossiers.Post("/", func(c *fiber.Ctx) error { return createDossier(c, deps) })
	dossiers.Get("/", func(c *fiber.Ctx) error { return c.JSON(deps.Store.ListDossiers()) })
	dossiers.Get("/:id", func(c *fiber.Ctx) error { return getDossier(c, deps) })
	dossiers.Put("/:id", func(c *fiber.Ctx) error { return updateDossier(c, deps) })
	dossiers.Delete("/:id", func(c *fiber.Ctx) error { return deleteDossier(c, deps) })
	dossiers.Get("/:id/details", func(c *fiber.Ctx) error { return dossierDetails(c, deps) })
	dossiers.Put("/:id/stage", func(c *fiber.Ctx) error { return changeStage(c, deps) })
}

type dossierBody struct {
	ApprenticeID *uint    `json:"apprentice_id"`
	CompanyID    *uint    `json:"company_id"`
	MentorID     *uint    `json:"mentor_id"`
	Stage        *string  `json:"stage"`
	StartDate    *string  `json:"start_date"`
	EndDate      *string  `json:"end_date"`
	Duration     *int     `json:"duration"`
	Salary       *float64 `json:"salary"`
	WorkHours    *string  `json:"work_hours"`
}

// Les trois références sont exigées mais leur existence n'est pas vérifiée
// ici ; la lecture jointe (/details) est le point de contrôle.
func createDossier(c *fiber.Ctx, deps Deps) error {
	var body dossierBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "payload invalide"})
	}
	if body.ApprenticeID == nil || body.CompanyID == nil || body.MentorID == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "apprentice_id, company_id et mentor_id sont requis"})
	}
	stage := models.StageRequest
	if body.Stage != nil {
		if !models.ValidStage(*body.Stage) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": fmt.Sprintf("étape inconnue: %q", *body.Stage)})
		}
		stage = *body.Stage
	}

	created := deps.Store.CreateDossier(models.Dossier{
		ApprenticeID: *body.ApprenticeID,
		CompanyID:    *body.CompanyID,
		MentorID:     *body.MentorID,
		Stage:        stage,
		StartDate:    body.StartDate,
		EndDate:      body.EndDate,
		Duration:     body.Duration,
		Salary:       body.Salary,
		WorkHours:    body.WorkHours,
	})

	services.LogActivity(deps.Store, resolveActor(c, deps.DefaultActorID), &created.ID,
		models.ActivityCreate, fmt.Sprintf("Dossier %d créé", created.ID))
	return c.Status(fiber.StatusCreated).JSON(created)
}

func getDossier(c *fiber.Ctx, deps Deps) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	dossier := deps.Store.GetDossier(id)
	if dossier == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "dossier introuvable"})
	}
	return c.JSON(dossier)
}

func updateDossier(c *fiber.Ctx, deps Deps) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	var body dossierBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "payload invalide"})
	}
	if body.Stage != nil && !models.ValidStage(*body.Stage) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": fmt.Sprintf("étape inconnue: %q", *body.Stage)})
	}

	dossier := deps.Store.UpdateDossier(id, store.DossierUpdate{
		ApprenticeID: body.ApprenticeID,
		CompanyID:    body.CompanyID,
		MentorID:     body.MentorID,
		Stage:        body.Stage,
		StartDate:    body.StartDate,
		EndDate:      body.EndDate,
		Duration:     body.Duration,
		Salary:       body.Salary,
		WorkHours:    body.WorkHours,
	})
	if dossier == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "dossier introuvable"})
	}

	services.LogActivity(deps.Store, resolveActor(c, deps.DefaultActorID), &dossier.ID,
		models.ActivityUpdate, fmt.Sprintf("Dossier %d mis à jour", dossier.ID))
	return c.JSON(dossier)
}

func deleteDossier(c *fiber.Ctx, deps Deps) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if !deps.Store.DeleteDossier(id) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "dossier introuvable"})
	}

	services.LogActivity(deps.Store, resolveActor(c, deps.DefaultActorID), nil,
		models.ActivityDelete, fmt.Sprintf("Dossier %d supprimé", id))
	return c.JSON(fiber.Map{"message": "dossier supprimé"})
}

// GET /api/dossiers/:id/details — vue jointe, échoue fermé sur toute
// référence obligatoire cassée alors que la lecture brute la tolère.
func dossierDetails(c *fiber.Ctx, deps Deps) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	details := deps.Store.GetDossierDetails(id)
	if details == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "dossier ou référence associée introuvable"})
	}
	return c.JSON(details)
}

type stagePayload struct {
	Stage string `json:"stage"`
}

// PUT /api/dossiers/:id/stage
func changeStage(c *fiber.Ctx, deps Deps) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	var body stagePayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "payload invalide"})
	}

	actor := resolveActor(c, deps.DefaultActorID)
	dossier, err := deps.Pipeline.TransitionStage(actor, id, body.Stage)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(dossier)
}
