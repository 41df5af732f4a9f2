package routes

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/Samsooon76/cerfalt/models"
	"github.com/Samsooon76/cerfalt/services"
	"github.com/Samsooon76/cerfalt/store"
)

func setupMentorRoutes(api fiber.Router, deps Deps) {
	mentors := api.Group("/mentors")
	mentors.Post("/", func(c *fiber.Ctx) error { return createMentor(c, deps) })
	mentors.Get("/", func(c *fiber.Ctx) error { return c.JSON(deps.Store.ListMentors()) })
	mentors.Get("/:id", func(c *fiber.Ctx) error { return getMentor(c, deps) })
	mentors.Put("/:id", func(c *fiber.Ctx) error { return updateMentor(c, deps) })
	mentors.Delete("/:id", func(c *fiber.Ctx) error { return deleteMentor(c, deps) })
}

type mentorBody struct {
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	Position   *string `json:"position"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Experience *string `json:"experience"`
	CompanyID  *uint   `json:"company_id"`
}

func createMentor(c *fiber.Ctx, deps Deps) error {
	var body mentorBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "payload invalide"})
	}
	if body.FirstName == nil || *body.FirstName == "" || body.LastName == nil || *body.LastName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "prénom et nom sont requis"})
	}

	created := deps.Store.CreateMentor(models.Mentor{
		FirstName:  *body.FirstName,
		LastName:   *body.LastName,
		Position:   body.Position,
		Email:      body.Email,
		Phone:      body.Phone,
		Experience: body.Experience,
		CompanyID:  body.CompanyID,
	})

	services.LogActivity(deps.Store, resolveActor(c, deps.DefaultActorID), nil,
		models.ActivityCreate, fmt.Sprintf("Tuteur %s %s créé", created.FirstName, created.LastName))
	return c.Status(fiber.StatusCreated).JSON(created)
}

func getMentor(c *fiber.Ctx, deps Deps) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	mentor := deps.Store.GetMentor(id)
	if mentor == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "tuteur introuvable"})
	}
	return c.JSON(mentor)
}

func updateMentor(c *fiber.Ctx, deps Deps) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	var body mentorBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "payload invalide"})
	}

	mentor := deps.Store.UpdateMentor(id, store.MentorUpdate{
		FirstName:  body.FirstName,
		LastName:   body.LastName,
		Position:   body.Position,
		Email:      body.Email,
		Phone:      body.Phone,
		Experience: body.Experience,
		CompanyID:  body.CompanyID,
	})
	if mentor == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "tuteur introuvable"})
	}

	services.LogActivity(deps.Store, resolveActor(c, deps.DefaultActorID), nil,
		models.ActivityUpdate, fmt.Sprintf("Tuteur %s %s mis à jour", mentor.FirstName, mentor.LastName))
	return c.JSON(mentor)
}

func deleteMentor(c *fiber.Ctx, deps Deps) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if !deps.Store.DeleteMentor(id) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "tuteur introuvable"})
	}

	services.LogActivity(deps.Store, resolveActor(c, deps.DefaultActorID), nil,
		models.ActivityDelete, fmt.Sprintf("Tuteur %d supprimé", id))
	return c.JSON(fiber.Map{"message": "tuteur supprimé"})
}
