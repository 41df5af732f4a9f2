package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Samsooon76/cerfalt/utils"
)

// SetupAuthRoutes expose le login. Le jeton émis identifie l'appelant côté
// UI ; aucun middleware ne conditionne l'accès dessus (identité admin
// implicite assumée).
func SetupAuthRoutes(app *fiber.App, deps Deps) {
	auth := app.Group("/auth")
	auth.Post("/login", func(c *fiber.Ctx) error { return login(c, deps) })
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func login(c *fiber.Ctx, deps Deps) error {
	var body loginPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "payload invalide"})
	}

	user := deps.Store.GetUserByUsername(body.Username)
	if user == nil || !utils.CheckPassword(user.Password, body.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "identifiant ou mot de passe invalide"})
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	t, err := token.SignedString([]byte(deps.Cfg.JWTSecret))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "impossible de signer le jeton"})
	}

	return c.JSON(fiber.Map{"token": t, "user": user})
}
