package routes

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/Samsooon76/cerfalt/models"
	"github.com/Samsooon76/cerfalt/services"
	"github.com/Samsooon76/cerfalt/store"
)

func setupCompanyRoutes(api fiber.Router, deps Deps) {
	companies := api.Group("/companies")
	companies.Post("/", func(c *fiber.Ctx) error { return createCompany(c, deps) })
	companies.Get("/", func(c *fiber.Ctx) error { return c.JSON(deps.Store.ListCompanies()) })
	companies.Get("/:id", func(c *fiber.Ctx) error { return getCompany(c, deps) })
	companies.Put("/:id", func(c *fiber.Ctx) error { return updateCompany(c, deps) })
	companies.Delete("/:id", func(c *fiber.Ctx) error { return deleteCompany(c, deps) })
}

type companyBody struct {
	Name    *string `json:"name"`
	Siret   *string `json:"siret"`
	Address *string `json:"address"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
}

func createCompany(c *fiber.Ctx, deps Deps) error {
	var body companyBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "payload invalide"})
	}
	if body.Name == nil || *body.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "le nom de l'entreprise est requis"})
	}

	created := deps.Store.CreateCompany(models.Company{
		Name:    *body.Name,
		Siret:   body.Siret,
		Address: body.Address,
		Email:   body.Email,
		Phone:   body.Phone,
	})

	services.LogActivity(deps.Store, resolveActor(c, deps.DefaultActorID), nil,
		models.ActivityCreate, fmt.Sprintf("Entreprise %s créée", created.Name))
	return c.Status(fiber.StatusCreated).JSON(created)
}

func getCompany(c *fiber.Ctx, deps Deps) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	company := deps.Store.GetCompany(id)
	if company == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "entreprise introuvable"})
	}
	return c.JSON(company)
}

func updateCompany(c *fiber.Ctx, deps Deps) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	var body companyBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "payload invalide"})
	}

	company := deps.Store.UpdateCompany(id, store.CompanyUpdate{
		Name:    body.Name,
		Siret:   body.Siret,
		Address: body.Address,
		Email:   body.Email,
		Phone:   body.Phone,
	})
	if company == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "entreprise introuvable"})
	}

	services.LogActivity(deps.Store, resolveActor(c, deps.DefaultActorID), nil,
		models.ActivityUpdate, fmt.Sprintf("Entreprise %s mise à jour", company.Name))
	return c.JSON(company)
}

// La suppression ne cascade pas : les tuteurs gardant une référence vers
// l'entreprise supprimée la voient simplement cassée.
func deleteCompany(c *fiber.Ctx, deps Deps) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if !deps.Store.DeleteCompany(id) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "entreprise introuvable"})
	}

	services.LogActivity(deps.Store, resolveActor(c, deps.DefaultActorID), nil,
		models.ActivityDelete, fmt.Sprintf("Entreprise %d supprimée", id))
	return c.JSON(fiber.Map{"message": "entreprise supprimée"})
}
