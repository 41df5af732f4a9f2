package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Samsooon76/cerfalt/config"
	"github.com/Samsooon76/cerfalt/integrations/mistral"
	"github.com/Samsooon76/cerfalt/models"
	"github.com/Samsooon76/cerfalt/routes"
	"github.com/Samsooon76/cerfalt/services"
	"github.com/Samsooon76/cerfalt/store"
	"github.com/Samsooon76/cerfalt/utils"
)

func main() {
	cfg := config.LoadConfig()

	st := store.New()
	admin := seedAdmin(st, cfg)

	var extractor services.IdentityExtractor
	if cfg.MistralAPIKey != "" {
		client, err := mistral.NewClient(cfg.MistralAPIKey, cfg.MistralModel, cfg.MistralAPIBase)
		if err != nil {
			log.Printf("client Mistral indisponible: %v", err)
		} else {
			extractor = client
		}
	}

	deps := routes.Deps{
		Store:          st,
		Pipeline:       &services.Pipeline{Store: st},
		Ingest:         &services.Ingest{Store: st, Extractor: extractor, UploadDir: cfg.UploadDir},
		Stats:          &services.Stats{Store: st},
		Cfg:            cfg,
		DefaultActorID: admin.ID,
	}

	app := fiber.New(fiber.Config{
		BodyLimit: services.MaxUploadBytes + 1<<20, // marge pour l'enveloppe multipart
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-User-ID",
	}))

	routes.SetupRoutes(app, deps)

	go func() {
		log.Println("🚀 Serveur sur http://localhost:" + cfg.Port)
		if err := app.Listen(cfg.HTTPAddr()); err != nil {
			log.Printf("serveur arrêté: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Arrêt du serveur Cerfalt...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("arrêt forcé: %v", err)
	}
}

// seedAdmin garantit le compte administrateur initial : toute mutation non
// authentifiée lui est attribuée.
func seedAdmin(st *store.Store, cfg config.Config) models.User {
	if existing := st.GetUserByUsername(cfg.AdminUsername); existing != nil {
		return *existing
	}
	hash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Fatalf("impossible de préparer le compte admin: %v", err)
	}
	admin := st.CreateUser(models.User{
		Username: cfg.AdminUsername,
		Password: hash,
		FullName: "Administrateur",
		Role:     models.RoleAdmin,
	})
	log.Printf("compte admin %q initialisé", admin.Username)
	return admin
}
