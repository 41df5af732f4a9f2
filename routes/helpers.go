package routes

import (
	"errors"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Samsooon76/cerfalt/services"
)

// readMultipartFile charge en mémoire le contenu d'un fichier multipart ;
// le plafond de taille est revérifié par le workflow d'ingestion.
func readMultipartFile(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// resolveActor lit l'identité de l'appelant depuis l'en-tête X-User-ID ;
// elle est toujours résolue en amont du cœur, jamais déduite par les
// opérations elles-mêmes. À défaut, l'administrateur initial fait foi.
func resolveActor(c *fiber.Ctx, fallback uint) uint {
	if v := c.Get("X-User-ID"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil && id > 0 {
			return uint(id)
		}
	}
	return fallback
}

// parseID extrait un identifiant positif d'un paramètre de route.
func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("identifiant invalide")
	}
	return uint(id), nil
}

// writeServiceError traduit la taxonomie d'erreurs du cœur en statuts
// HTTP : validation → 400, introuvable → 404, extraction → 502,
// stockage et le reste → 500. Le message lisible accompagne toujours la
// réponse quand l'opération en a produit un.
func writeServiceError(c *fiber.Ctx, err error) error {
	var vErr *services.ValidationError
	var exErr *services.ExtractionError
	var stErr *services.StorageError
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "ressource introuvable"})
	case errors.As(err, &vErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": vErr.Message})
	case errors.As(err, &exErr):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": exErr.Error()})
	case errors.As(err, &stErr):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": stErr.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "erreur serveur"})
	}
}
