package services

import (
	"github.com/Samsooon76/cerfalt/models"
	"github.com/Samsooon76/cerfalt/store"
)

// LogActivity ajoute une entrée d'audit. Chaque action mutante doit en
// laisser une ; l'acteur est toujours résolu en amont et passé
// explicitement, jamais déduit ici.
func LogActivity(s *store.Store, actorID uint, dossierID *uint, activityType, description string) models.Activity {
	return s.AppendActivity(models.Activity{
		UserID:      actorID,
		DossierID:   dossierID,
		Type:        activityType,
		Description: description,
	})
}
