package routes

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/Samsooon76/cerfalt/models"
	"github.com/Samsooon76/cerfalt/services"
	"github.com/Samsooon76/cerfalt/store"
)

func setupApprenticeRoutes(api fiber.Router, deps Deps) {
	apprentices := api.Group("/apprentices")
	apprentices.Post("/", func(c *fiber.Ctx) error { return createApprentice(c, deps) })
	apprentices.Get("/", func(c *fiber.Ctx) error { return c.JSON(deps.Store.ListApprentices()) })
	apprentices.Get("/:id", func(c *fiber.Ctx) error { return getApprentice(c, deps) })
	apprentices.Put("/:id", func(c *fiber.Ctx) error { return updateApprentice(c, deps) })
	apprentices.Delete("/:id", func(c *fiber.Ctx) error { return deleteApprentice(c, deps) })
	// Mode direct : import d'une pièce d'identité avec extraction
	// obligatoire, dossier créé au besoin.
	apprentices.Post("/:id/extract-id-card", func(c *fiber.Ctx) error { return extractIDCard(c, deps) })
}

type apprenticeBody struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	BirthDate *string `json:"birth_date"`
	Address   *string `json:"address"`
	Education *string `json:"education"`
}

func createApprentice(c *fiber.Ctx, deps Deps) error {
	var body apprenticeBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "payload invalide"})
	}
	if body.FirstName == nil || *body.FirstName == "" || body.LastName == nil || *body.LastName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "prénom et nom sont requis"})
	}

	apprentice := models.Apprentice{
		FirstName: *body.FirstName,
		LastName:  *body.LastName,
		Phone:     body.Phone,
		BirthDate: body.BirthDate,
		Address:   body.Address,
		Education: body.Education,
	}
	if body.Email != nil {
		apprentice.Email = *body.Email
	}
	created := deps.Store.CreateApprentice(apprentice)

	services.LogActivity(deps.Store, resolveActor(c, deps.DefaultActorID), nil,
		models.ActivityCreate, fmt.Sprintf("Apprenti %s %s créé", created.FirstName, created.LastName))
	return c.Status(fiber.StatusCreated).JSON(created)
}

func getApprentice(c *fiber.Ctx, deps Deps) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	apprentice := deps.Store.GetApprentice(id)
	if apprentice == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "apprenti introuvable"})
	}
	return c.JSON(apprentice)
}

func updateApprentice(c *fiber.Ctx, deps Deps) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	var body apprenticeBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "payload invalide"})
	}

	apprentice := deps.Store.UpdateApprentice(id, store.ApprenticeUpdate{
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Email:     body.Email,
		Phone:     body.Phone,
		BirthDate: body.BirthDate,
		Address:   body.Address,
		Education: body.Education,
	})
	if apprentice == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "apprenti introuvable"})
	}

	services.LogActivity(deps.Store, resolveActor(c, deps.DefaultActorID), nil,
		models.ActivityUpdate, fmt.Sprintf("Apprenti %s %s mis à jour", apprentice.FirstName, apprentice.LastName))
	return c.JSON(apprentice)
}

func deleteApprentice(c *fiber.Ctx, deps Deps) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if !deps.Store.DeleteApprentice(id) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "apprenti introuvable"})
	}

	services.LogActivity(deps.Store, resolveActor(c, deps.DefaultActorID), nil,
		models.ActivityDelete, fmt.Sprintf("Apprenti %d supprimé", id))
	return c.JSON(fiber.Map{"message": "apprenti supprimé"})
}

// POST /api/apprentices/:id/extract-id-card (multipart : file, type)
func extractIDCard(c *fiber.Ctx, deps Deps) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	header, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "fichier requis"})
	}
	data, err := readMultipartFile(header)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "fichier illisible"})
	}

	docType := c.FormValue("type", models.DocTypeIDCard)
	actor := resolveActor(c, deps.DefaultActorID)

	summary, err := deps.Ingest.UploadForApprentice(c.Context(), actor, id, docType, header.Filename, data)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(summary)
}
