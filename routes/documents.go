package routes

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Samsooon76/cerfalt/models"
	"github.com/Samsooon76/cerfalt/services"
)

func setupDocumentRoutes(api fiber.Router, deps Deps) {
	documents := api.Group("/documents")
	documents.Post("/", func(c *fiber.Ctx) error { return uploadDocument(c, deps) })
	documents.Get("/", func(c *fiber.Ctx) error { return listDocuments(c, deps) })
	documents.Get("/:id", func(c *fiber.Ctx) error { return getDocument(c, deps) })
	documents.Delete("/:id", func(c *fiber.Ctx) error { return deleteDocument(c, deps) })
}

// POST /api/documents (multipart : dossier_id, type, name, file, extract)
// Mode rattachement : le dossier doit exister, l'échec d'extraction ne
// bloque jamais l'import.
func uploadDocument(c *fiber.Ctx, deps Deps) error {
	dossierID, err := strconv.ParseUint(c.FormValue("dossier_id"), 10, 32)
	if err != nil || dossierID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "dossier_id est requis"})
	}

	header, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "fichier requis"})
	}
	data, err := readMultipartFile(header)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "fichier illisible"})
	}

	docType := c.FormValue("type", models.DocTypeOther)
	name := c.FormValue("name", header.Filename)
	extract := c.FormValue("extract") == "true"
	actor := resolveActor(c, deps.DefaultActorID)

	doc, err := deps.Ingest.UploadToDossier(c.Context(), actor, uint(dossierID), docType, name, data, extract)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

// GET /api/documents?dossier_id=
func listDocuments(c *fiber.Ctx, deps Deps) error {
	var filter *uint
	if v := c.Query("dossier_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "dossier_id invalide"})
		}
		u := uint(id)
		filter = &u
	}
	return c.JSON(deps.Store.ListDocuments(filter))
}

func getDocument(c *fiber.Ctx, deps Deps) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	doc := deps.Store.GetDocument(id)
	if doc == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "document introuvable"})
	}
	return c.JSON(doc)
}

// DELETE /api/documents/:id — supprime la fiche puis tente d'effacer le
// fichier ; un résidu sur disque n'est pas une erreur pour l'appelant.
func deleteDocument(c *fiber.Ctx, deps Deps) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	doc := deps.Store.GetDocument(id)
	if doc == nil || !deps.Store.DeleteDocument(id) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "document introuvable"})
	}
	if err := os.Remove(doc.StoragePath); err != nil && !os.IsNotExist(err) {
		log.Printf("fichier %s non supprimé: %v", doc.StoragePath, err)
	}

	services.LogActivity(deps.Store, resolveActor(c, deps.DefaultActorID), &doc.DossierID,
		models.ActivityDocumentDelete, fmt.Sprintf("Document %q supprimé", doc.Name))
	return c.JSON(fiber.Map{"message": "document supprimé"})
}
