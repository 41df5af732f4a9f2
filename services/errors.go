package services

import (
	"errors"
	"fmt"
)

// ErrNotFound signale une entité référencée absente. Détecté avant toute
// mutation.
var ErrNotFound = errors.New("introuvable")

// ValidationError : entrée invalide ou manquante, aucune mutation effectuée.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ExtractionError : échec de l'appel au collaborateur OCR. Avalé et
// journalisé en mode rattachement à un dossier, propagé en mode direct
// apprenti (ce mode n'a pas d'autre raison d'être que l'extraction).
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string { return "extraction échouée: " + e.Err.Error() }
func (e *ExtractionError) Unwrap() error { return e.Err }

// StorageError : échec de persistance locale. Fatal, l'opération est
// abandonnée ; les écritures déjà commises ne sont pas annulées.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return "échec de stockage: " + e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }
