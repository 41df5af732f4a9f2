package services

import (
	"testing"
	"time"

	"github.com/Samsooon76/cerfalt/models"
	"github.com/Samsooon76/cerfalt/store"
)

func TestComputeOnEmptyStore(t *testing.T) {
	s := store.New()
	stats := &Stats{Store: s}

	result := stats.Compute()
	if result.TotalFiles != 0 || result.ValidatedFiles != 0 {
		t.Fatalf("compteurs à zéro attendus: %+v", result)
	}
	if result.AverageProcessingTime != 0 {
		t.Fatalf("pas de division par zéro : moyenne 0 attendue, obtenu %v", result.AverageProcessingTime)
	}
	if len(result.ByStage) != len(models.Stages) {
		t.Fatalf("les cinq clés d'étape doivent être présentes même à vide")
	}
	for stage, n := range result.ByStage {
		if n != 0 {
			t.Fatalf("étape %s non nulle sur store vide", stage)
		}
	}
}

func TestCycleDaysRoundsUp(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		delta time.Duration
		want  int
	}{
		{0, 0},
		{time.Minute, 1},
		{23 * time.Hour, 1},
		{24 * time.Hour, 1},
		{25 * time.Hour, 2},
		{10 * 24 * time.Hour, 10},
	}
	for _, tc := range cases {
		if got := cycleDays(base, base.Add(tc.delta)); got != tc.want {
			t.Fatalf("cycleDays(%v) = %d, attendu %d", tc.delta, got, tc.want)
		}
		// L'écart est pris en valeur absolue.
		if got := cycleDays(base.Add(tc.delta), base); got != tc.want {
			t.Fatalf("cycleDays inversé (%v) = %d, attendu %d", tc.delta, got, tc.want)
		}
	}
}

func TestComputeCountsAndAverages(t *testing.T) {
	s := store.New()
	p := &Pipeline{Store: s}
	stats := &Stats{Store: s}

	for i := 0; i < 3; i++ {
		newDossier(s)
	}
	dossiers := s.ListDossiers()
	if _, err := p.TransitionStage(1, dossiers[0].ID, models.StageValidated); err != nil {
		t.Fatalf("transition: %v", err)
	}
	if _, err := p.TransitionStage(1, dossiers[1].ID, models.StageValidated); err != nil {
		t.Fatalf("transition: %v", err)
	}

	result := stats.Compute()
	if result.TotalFiles != 3 {
		t.Fatalf("3 dossiers attendus, obtenu %d", result.TotalFiles)
	}
	if result.ValidatedFiles != 2 {
		t.Fatalf("2 dossiers validés attendus, obtenu %d", result.ValidatedFiles)
	}
	// Validés dans la foulée : chaque cycle est arrondi au jour
	// supérieur, la moyenne vaut donc 1.
	if result.AverageProcessingTime != 1 {
		t.Fatalf("moyenne de 1 jour attendue, obtenu %v", result.AverageProcessingTime)
	}
	if result.ByStage[models.StageValidated] != 2 || result.ByStage[models.StageRequest] != 1 {
		t.Fatalf("répartition inattendue: %v", result.ByStage)
	}
}
