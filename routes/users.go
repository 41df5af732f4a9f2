package routes

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/Samsooon76/cerfalt/models"
	"github.com/Samsooon76/cerfalt/services"
	"github.com/Samsooon76/cerfalt/store"
	"github.com/Samsooon76/cerfalt/utils"
)

func setupUserRoutes(api fiber.Router, deps Deps) {
	users := api.Group("/users")
	users.Post("/", func(c *fiber.Ctx) error { return createUser(c, deps) })
	users.Get("/", func(c *fiber.Ctx) error { return c.JSON(deps.Store.ListUsers()) })
	users.Get("/:id", func(c *fiber.Ctx) error { return getUser(c, deps) })
	users.Put("/:id", func(c *fiber.Ctx) error { return updateUser(c, deps) })
	users.Delete("/:id", func(c *fiber.Ctx) error { return deleteUser(c, deps) })
}

type userBody struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	FullName *string `json:"full_name"`
	Role     *string `json:"role"`
	Avatar   *string `json:"avatar"`
}

func createUser(c *fiber.Ctx, deps Deps) error {
	var body userBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "payload invalide"})
	}
	if body.Username == nil || *body.Username == "" || body.Password == nil || *body.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "username et password sont requis"})
	}
	if deps.Store.GetUserByUsername(*body.Username) != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "nom d'utilisateur déjà pris"})
	}

	hash, err := utils.HashPassword(*body.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "impossible de hasher le mot de passe"})
	}

	user := models.User{
		Username: *body.Username,
		Password: hash,
		Role:     models.RoleViewer,
		Avatar:   body.Avatar,
	}
	if body.FullName != nil {
		user.FullName = *body.FullName
	}
	if body.Role != nil {
		user.Role = *body.Role
	}
	created := deps.Store.CreateUser(user)

	services.LogActivity(deps.Store, resolveActor(c, deps.DefaultActorID), nil,
		models.ActivityCreate, fmt.Sprintf("Utilisateur %s créé", created.Username))
	return c.Status(fiber.StatusCreated).JSON(created)
}

func getUser(c *fiber.Ctx, deps Deps) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	user := deps.Store.GetUser(id)
	if user == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "utilisateur introuvable"})
	}
	return c.JSON(user)
}

func updateUser(c *fiber.Ctx, deps Deps) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	var body userBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "payload invalide"})
	}

	upd := store.UserUpdate{
		Username: body.Username,
		FullName: body.FullName,
		Role:     body.Role,
		Avatar:   body.Avatar,
	}
	if body.Password != nil && *body.Password != "" {
		hash, err := utils.HashPassword(*body.Password)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "impossible de hasher le mot de passe"})
		}
		upd.Password = &hash
	}

	user := deps.Store.UpdateUser(id, upd)
	if user == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "utilisateur introuvable"})
	}

	services.LogActivity(deps.Store, resolveActor(c, deps.DefaultActorID), nil,
		models.ActivityUpdate, fmt.Sprintf("Utilisateur %s mis à jour", user.Username))
	return c.JSON(user)
}

func deleteUser(c *fiber.Ctx, deps Deps) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if !deps.Store.DeleteUser(id) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "utilisateur introuvable"})
	}

	services.LogActivity(deps.Store, resolveActor(c, deps.DefaultActorID), nil,
		models.ActivityDelete, fmt.Sprintf("Utilisateur %d supprimé", id))
	return c.JSON(fiber.Map{"message": "utilisateur supprimé"})
}
