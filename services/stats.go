package services

import (
	"math"
	"time"

	"github.com/Samsooon76/cerfalt/models"
	"github.com/Samsooon76/cerfalt/store"
)

// Stats dérive les compteurs du tableau de bord depuis l'état courant du
// store. Lecture pure, recalculée à chaque appel, jamais mise en cache.
type Stats struct {
	Store *store.Store
}

// StatsResult est la réponse de l'endpoint /api/stats.
type StatsResult struct {
	TotalFiles            int            `json:"total_files"`
	ByStage               map[string]int `json:"by_stage"`
	ValidatedFiles        int            `json:"validated_files"`
	AverageProcessingTime float64        `json:"average_processing_time"`
}

// Compute agrège tous les dossiers : total, répartition par étape, nombre
// de validés et durée moyenne de cycle en jours sur les dossiers validés
// (0 s'il n'y en a aucun, pas de division par zéro).
func (s *Stats) Compute() StatsResult {
	dossiers := s.Store.ListDossiers()

	result := StatsResult{
		TotalFiles: len(dossiers),
		ByStage:    AggregateByStage(dossiers),
	}

	var totalDays int
	for _, d := range dossiers {
		if d.Stage != models.StageValidated {
			continue
		}
		result.ValidatedFiles++
		totalDays += cycleDays(d.CreatedAt, d.UpdatedAt)
	}
	if result.ValidatedFiles > 0 {
		result.AverageProcessingTime = float64(totalDays) / float64(result.ValidatedFiles)
	}
	return result
}

// cycleDays arrondit la durée de traitement au jour supérieur ; un dossier
// validé dans la journée compte pour un jour.
func cycleDays(created, updated time.Time) int {
	d := updated.Sub(created)
	if d < 0 {
		d = -d
	}
	return int(math.Ceil(d.Hours() / 24))
}
