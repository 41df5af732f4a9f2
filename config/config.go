package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config contient la configuration principale du service.
type Config struct {
	Env            string
	Port           string
	UploadDir      string
	JWTSecret      string
	MistralAPIKey  string
	MistralModel   string
	MistralAPIBase string
	AdminUsername  string
	AdminPassword  string
}

// LoadConfig charge la configuration depuis les variables d'environnement,
// après un éventuel .env local.
func LoadConfig() Config {
	_ = loadEnvIfExists()

	cfg := Config{
		Env:            getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "3030"),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		JWTSecret:      getEnv("JWT_SECRET", "changeme-super-secret"),
		MistralAPIKey:  getEnv("MISTRAL_API_KEY", ""),
		MistralModel:   getEnv("MISTRAL_MODEL", ""),
		MistralAPIBase: getEnv("MISTRAL_API_BASE", ""),
		AdminUsername:  getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:  getEnv("ADMIN_PASSWORD", "admin123"),
	}

	if cfg.JWTSecret == "changeme-super-secret" {
		log.Println("[AVERTISSEMENT] JWT_SECRET utilise la valeur par défaut. Ne pas utiliser en production.")
	}
	if cfg.MistralAPIKey == "" {
		log.Println("[INFO] MISTRAL_API_KEY n'est pas configuré. L'extraction OCR sera désactivée.")
	}

	return cfg
}

func (c Config) HTTPAddr() string {
	return ":" + c.Port
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

// loadEnvIfExists charge un fichier .env local s'il existe.
func loadEnvIfExists() error {
	if _, err := os.Stat(".env"); err == nil {
		return godotenv.Load()
	}
	return nil
}
