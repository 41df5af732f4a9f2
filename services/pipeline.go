package services

import (
	"fmt"

	"github.com/Samsooon76/cerfalt/models"
	"github.com/Samsooon76/cerfalt/store"
)

// Pipeline porte les deux opérations du suivi d'étapes : la transition et
// l'agrégation par étape du tableau de bord.
type Pipeline struct {
	Store *store.Store
}

// TransitionStage place le dossier sur newStage. Aucune contrainte d'ordre :
// toute étape du vocabulaire est atteignable depuis toute autre, retour en
// arrière compris. Une étape hors vocabulaire est une erreur de validation,
// un dossier inconnu une erreur notFound ; dans les deux cas rien n'est muté
// et aucune activité n'est journalisée.
func (p *Pipeline) TransitionStage(actorID, dossierID uint, newStage string) (*models.Dossier, error) {
	if !models.ValidStage(newStage) {
		return nil, validationf("étape inconnue: %q", newStage)
	}
	if p.Store.GetDossier(dossierID) == nil {
		return nil, ErrNotFound
	}

	stage := newStage
	updated := p.Store.UpdateDossier(dossierID, store.DossierUpdate{Stage: &stage})
	if updated == nil {
		return nil, ErrNotFound
	}

	LogActivity(p.Store, actorID, &updated.ID, models.ActivityStageChange,
		fmt.Sprintf("Dossier passé à l'étape %s", newStage))
	return updated, nil
}

// AggregateByStage compte les dossiers par étape. Les cinq clés sont
// toujours présentes, à zéro si besoin, pour que le tableau de bord n'ait
// pas à traiter les clés manquantes.
func AggregateByStage(dossiers []models.Dossier) map[string]int {
	counts := make(map[string]int, len(models.Stages))
	for _, stage := range models.Stages {
		counts[stage] = 0
	}
	for _, d := range dossiers {
		counts[d.Stage]++
	}
	return counts
}
