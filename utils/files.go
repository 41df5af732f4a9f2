package utils

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

func SaveBytesToFile(b []byte, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// SanitizeFilename nettoie un nom de fichier pour éviter les caractères
// problématiques.
func SanitizeFilename(name string) string {
	if name == "" {
		return "document"
	}
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "..", "_")
	return name
}

// UniqueStoragePath génère un chemin de stockage sans collision : deux
// uploads simultanés du même nom d'affichage sont attendus, le suffixe
// aléatoire les départage.
func UniqueStoragePath(dir, displayName string) string {
	stamp := time.Now().Format("20060102-150405")
	suffix := uuid.NewString()[:8]
	return filepath.Join(dir, stamp+"-"+suffix+"-"+SanitizeFilename(displayName))
}
