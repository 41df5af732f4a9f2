package services

import (
	"errors"
	"testing"

	"github.com/Samsooon76/cerfalt/models"
	"github.com/Samsooon76/cerfalt/store"
)

func newDossier(s *store.Store) models.Dossier {
	a := s.CreateApprentice(models.Apprentice{FirstName: "Alice", LastName: "Martin"})
	c := s.CreateCompany(models.Company{Name: "Acme"})
	m := s.CreateMentor(models.Mentor{FirstName: "Paul", LastName: "Durand"})
	return s.CreateDossier(models.Dossier{ApprenticeID: a.ID, CompanyID: c.ID, MentorID: m.ID})
}

func countActivities(s *store.Store, activityType string) int {
	n := 0
	for _, a := range s.ListActivities(nil, 0) {
		if a.Type == activityType {
			n++
		}
	}
	return n
}

func TestTransitionStageAcceptsEveryStage(t *testing.T) {
	s := store.New()
	p := &Pipeline{Store: s}
	d := newDossier(s)

	// Toute étape est atteignable depuis toute autre, retour en arrière
	// compris.
	order := []string{
		models.StageValidated,
		models.StageCreated,
		models.StageProcessing,
		models.StageRequest,
		models.StageVerification,
	}
	for i, stage := range order {
		before := s.GetDossier(d.ID).UpdatedAt
		updated, err := p.TransitionStage(1, d.ID, stage)
		if err != nil {
			t.Fatalf("transition vers %s: %v", stage, err)
		}
		if updated.Stage != stage {
			t.Fatalf("étape %s attendue, obtenu %s", stage, updated.Stage)
		}
		if updated.UpdatedAt.Before(before) {
			t.Fatalf("updated_at doit être rafraîchi par la transition")
		}
		if got := countActivities(s, models.ActivityStageChange); got != i+1 {
			t.Fatalf("exactement une activité STAGE_CHANGE par transition ; attendu %d, obtenu %d", i+1, got)
		}
	}
}

func TestTransitionStageRejectsUnknownStage(t *testing.T) {
	s := store.New()
	p := &Pipeline{Store: s}
	d := newDossier(s)

	for _, bad := range []string{"", "validated", "ARCHIVE", "REQUEST "} {
		_, err := p.TransitionStage(1, d.ID, bad)
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("ValidationError attendue pour %q, obtenu %v", bad, err)
		}
	}

	after := s.GetDossier(d.ID)
	if after.Stage != models.StageRequest || !after.UpdatedAt.Equal(d.UpdatedAt) {
		t.Fatalf("une étape invalide ne doit rien muter")
	}
	if countActivities(s, models.ActivityStageChange) != 0 {
		t.Fatalf("aucune activité ne doit être journalisée sur entrée invalide")
	}
}

func TestTransitionStageOnMissingDossier(t *testing.T) {
	s := store.New()
	p := &Pipeline{Store: s}

	_, err := p.TransitionStage(1, 999, models.StageValidated)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("ErrNotFound attendu, obtenu %v", err)
	}
	if s.CountActivities() != 0 {
		t.Fatalf("aucune activité ne doit être créée pour un dossier absent")
	}
}

func TestAggregateByStageCountsEveryDossierOnce(t *testing.T) {
	s := store.New()
	p := &Pipeline{Store: s}

	for i := 0; i < 4; i++ {
		newDossier(s)
	}
	dossiers := s.ListDossiers()
	if _, err := p.TransitionStage(1, dossiers[0].ID, models.StageValidated); err != nil {
		t.Fatalf("transition: %v", err)
	}
	if _, err := p.TransitionStage(1, dossiers[1].ID, models.StageProcessing); err != nil {
		t.Fatalf("transition: %v", err)
	}

	counts := AggregateByStage(s.ListDossiers())
	if len(counts) != len(models.Stages) {
		t.Fatalf("les cinq clés doivent toujours être présentes: %v", counts)
	}
	sum := 0
	for _, n := range counts {
		sum += n
	}
	if sum != 4 {
		t.Fatalf("chaque dossier doit être compté exactement une fois ; somme %d", sum)
	}
	if counts[models.StageRequest] != 2 || counts[models.StageValidated] != 1 || counts[models.StageProcessing] != 1 {
		t.Fatalf("répartition inattendue: %v", counts)
	}
	if counts[models.StageCreated] != 0 || counts[models.StageVerification] != 0 {
		t.Fatalf("les étapes vides doivent valoir 0: %v", counts)
	}
}
