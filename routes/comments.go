package routes

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Samsooon76/cerfalt/models"
	"github.com/Samsooon76/cerfalt/services"
)

func setupCommentRoutes(api fiber.Router, deps Deps) {
	comments := api.Group("/comments")
	comments.Post("/", func(c *fiber.Ctx) error { return createComment(c, deps) })
	comments.Get("/", func(c *fiber.Ctx) error { return listComments(c, deps) })
	comments.Delete("/:id", func(c *fiber.Ctx) error { return deleteComment(c, deps) })
}

type commentBody struct {
	DossierID uint   `json:"dossier_id"`
	Content   string `json:"content"`
}

func createComment(c *fiber.Ctx, deps Deps) error {
	var body commentBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "payload invalide"})
	}
	if body.DossierID == 0 || body.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "dossier_id et content sont requis"})
	}
	if deps.Store.GetDossier(body.DossierID) == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "dossier introuvable"})
	}

	actor := resolveActor(c, deps.DefaultActorID)
	created := deps.Store.CreateComment(models.Comment{
		DossierID: body.DossierID,
		UserID:    actor,
		Content:   body.Content,
	})

	services.LogActivity(deps.Store, actor, &created.DossierID,
		models.ActivityComment, fmt.Sprintf("Commentaire ajouté au dossier %d", created.DossierID))
	return c.Status(fiber.StatusCreated).JSON(created)
}

// GET /api/comments?dossier_id=
func listComments(c *fiber.Ctx, deps Deps) error {
	var filter *uint
	if v := c.Query("dossier_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "dossier_id invalide"})
		}
		u := uint(id)
		filter = &u
	}
	return c.JSON(deps.Store.ListComments(filter))
}

func deleteComment(c *fiber.Ctx, deps Deps) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	comment := deps.Store.GetComment(id)
	if comment == nil || !deps.Store.DeleteComment(id) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "commentaire introuvable"})
	}

	services.LogActivity(deps.Store, resolveActor(c, deps.DefaultActorID), &comment.DossierID,
		models.ActivityCommentDelete, fmt.Sprintf("Commentaire supprimé du dossier %d", comment.DossierID))
	return c.JSON(fiber.Map{"message": "commentaire supprimé"})
}
