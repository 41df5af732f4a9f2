package store

import (
	"testing"

	"github.com/Samsooon76/cerfalt/models"
)

func strPtr(s string) *string { return &s }

func TestIDsAreMonotonicAndNeverReused(t *testing.T) {
	s := New()

	c1 := s.CreateCompany(models.Company{Name: "Alpha"})
	c2 := s.CreateCompany(models.Company{Name: "Beta"})
	c3 := s.CreateCompany(models.Company{Name: "Gamma"})
	if c1.ID != 1 || c2.ID != 2 || c3.ID != 3 {
		t.Fatalf("ids attendus 1,2,3 ; obtenus %d,%d,%d", c1.ID, c2.ID, c3.ID)
	}

	if !s.DeleteCompany(c2.ID) {
		t.Fatalf("suppression de l'entreprise %d attendue", c2.ID)
	}
	c4 := s.CreateCompany(models.Company{Name: "Delta"})
	if c4.ID != 4 {
		t.Fatalf("un id supprimé ne doit jamais être réattribué ; obtenu %d", c4.ID)
	}
}

func TestPartialUpdateLeavesUnsetFieldsUntouched(t *testing.T) {
	s := New()
	a := s.CreateApprentice(models.Apprentice{
		FirstName: "Alice",
		LastName:  "Martin",
		Email:     "alice@exemple.fr",
		Address:   strPtr("1 Rue du Port"),
	})

	updated := s.UpdateApprentice(a.ID, ApprenticeUpdate{Phone: strPtr("0601020304")})
	if updated == nil {
		t.Fatalf("mise à jour attendue")
	}
	if updated.FirstName != "Alice" || updated.Email != "alice@exemple.fr" {
		t.Fatalf("les champs non fournis doivent rester intacts: %+v", updated)
	}
	if updated.Address == nil || *updated.Address != "1 Rue du Port" {
		t.Fatalf("adresse perdue lors d'une mise à jour partielle")
	}
	if updated.Phone == nil || *updated.Phone != "0601020304" {
		t.Fatalf("téléphone non appliqué")
	}
	if updated.UpdatedAt.Before(a.UpdatedAt) {
		t.Fatalf("updated_at doit être rafraîchi")
	}
}

func TestUpdateAndDeleteOnMissingIDs(t *testing.T) {
	s := New()
	if s.UpdateApprentice(42, ApprenticeUpdate{FirstName: strPtr("X")}) != nil {
		t.Fatalf("mise à jour d'un id absent doit renvoyer nil")
	}
	if s.DeleteApprentice(42) {
		t.Fatalf("suppression d'un id absent doit renvoyer false")
	}
	if s.GetApprentice(42) != nil {
		t.Fatalf("lecture d'un id absent doit renvoyer nil, sans panique")
	}
}

func TestListKeepsInsertionOrder(t *testing.T) {
	s := New()
	for _, name := range []string{"Un", "Deux", "Trois"} {
		s.CreateCompany(models.Company{Name: name})
	}
	list := s.ListCompanies()
	if len(list) != 3 {
		t.Fatalf("3 entreprises attendues, obtenu %d", len(list))
	}
	for i, want := range []string{"Un", "Deux", "Trois"} {
		if list[i].Name != want {
			t.Fatalf("ordre d'insertion non conservé: %v", list)
		}
	}
}

func TestGetReturnsCopies(t *testing.T) {
	s := New()
	a := s.CreateApprentice(models.Apprentice{FirstName: "Alice", LastName: "Martin"})

	got := s.GetApprentice(a.ID)
	got.FirstName = "Muté"

	again := s.GetApprentice(a.ID)
	if again.FirstName != "Alice" {
		t.Fatalf("le store ne doit jamais exposer son état interne")
	}
}

func TestDanglingReferencesToleratedOnRawReadOnly(t *testing.T) {
	s := New()
	a := s.CreateApprentice(models.Apprentice{FirstName: "Alice", LastName: "Martin"})
	c := s.CreateCompany(models.Company{Name: "Acme"})
	m := s.CreateMentor(models.Mentor{FirstName: "Paul", LastName: "Durand"})
	d := s.CreateDossier(models.Dossier{ApprenticeID: a.ID, CompanyID: c.ID, MentorID: m.ID})

	if s.GetDossierDetails(d.ID) == nil {
		t.Fatalf("détails attendus quand toutes les références existent")
	}

	s.DeleteCompany(c.ID)

	// Lecture brute : la référence cassée est tolérée.
	if s.GetDossier(d.ID) == nil {
		t.Fatalf("la lecture brute doit tolérer une référence cassée")
	}
	// Lecture jointe : échec fermé.
	if s.GetDossierDetails(d.ID) != nil {
		t.Fatalf("la lecture jointe doit échouer sur une référence cassée")
	}
}

func TestDossierDetailsJoinsDocumentsAndComments(t *testing.T) {
	s := New()
	u := s.CreateUser(models.User{Username: "admin", Role: models.RoleAdmin})
	ghost := s.CreateUser(models.User{Username: "parti"})
	a := s.CreateApprentice(models.Apprentice{FirstName: "Alice", LastName: "Martin"})
	c := s.CreateCompany(models.Company{Name: "Acme"})
	m := s.CreateMentor(models.Mentor{FirstName: "Paul", LastName: "Durand"})
	d := s.CreateDossier(models.Dossier{ApprenticeID: a.ID, CompanyID: c.ID, MentorID: m.ID})
	other := s.CreateDossier(models.Dossier{ApprenticeID: a.ID, CompanyID: c.ID, MentorID: m.ID})

	s.CreateDocument(models.Document{DossierID: d.ID, Name: "cni.png", Type: models.DocTypeIDCard})
	s.CreateDocument(models.Document{DossierID: other.ID, Name: "autre.pdf", Type: models.DocTypeOther})
	s.CreateComment(models.Comment{DossierID: d.ID, UserID: u.ID, Content: "à vérifier"})
	s.CreateComment(models.Comment{DossierID: d.ID, UserID: ghost.ID, Content: "auteur disparu"})
	s.DeleteUser(ghost.ID)

	details := s.GetDossierDetails(d.ID)
	if details == nil {
		t.Fatalf("détails attendus")
	}
	if len(details.Documents) != 1 || details.Documents[0].Name != "cni.png" {
		t.Fatalf("seuls les documents du dossier doivent être joints: %+v", details.Documents)
	}
	if len(details.Comments) != 2 {
		t.Fatalf("2 commentaires attendus, obtenu %d", len(details.Comments))
	}
	if details.Comments[0].Author == nil || details.Comments[0].Author.Username != "admin" {
		t.Fatalf("auteur du commentaire attendu")
	}
	// Un auteur disparu est toléré ici, contrairement aux trois
	// références obligatoires.
	if details.Comments[1].Author != nil {
		t.Fatalf("auteur disparu doit donner Author nil, pas un échec")
	}
}

func TestActivitiesAreRecentFirstFilteredAndLimited(t *testing.T) {
	s := New()
	d1 := uint(1)
	d2 := uint(2)
	s.AppendActivity(models.Activity{UserID: 1, DossierID: &d1, Type: models.ActivityCreate, Description: "a"})
	s.AppendActivity(models.Activity{UserID: 1, DossierID: &d2, Type: models.ActivityCreate, Description: "b"})
	s.AppendActivity(models.Activity{UserID: 1, DossierID: &d1, Type: models.ActivityStageChange, Description: "c"})
	s.AppendActivity(models.Activity{UserID: 1, Type: models.ActivityDelete, Description: "d"})

	all := s.ListActivities(nil, 0)
	if len(all) != 4 || all[0].Description != "d" || all[3].Description != "a" {
		t.Fatalf("ordre antichronologique attendu: %+v", all)
	}

	forD1 := s.ListActivities(&d1, 0)
	if len(forD1) != 2 || forD1[0].Description != "c" {
		t.Fatalf("filtre par dossier incorrect: %+v", forD1)
	}

	limited := s.ListActivities(nil, 2)
	if len(limited) != 2 || limited[0].Description != "d" || limited[1].Description != "c" {
		t.Fatalf("limite non respectée: %+v", limited)
	}
}

func TestFindDossierByApprentice(t *testing.T) {
	s := New()
	a := s.CreateApprentice(models.Apprentice{FirstName: "Alice", LastName: "Martin"})
	if s.FindDossierByApprentice(a.ID) != nil {
		t.Fatalf("aucun dossier attendu")
	}
	first := s.CreateDossier(models.Dossier{ApprenticeID: a.ID, CompanyID: 1, MentorID: 1})
	s.CreateDossier(models.Dossier{ApprenticeID: a.ID, CompanyID: 1, MentorID: 1})

	found := s.FindDossierByApprentice(a.ID)
	if found == nil || found.ID != first.ID {
		t.Fatalf("le premier dossier (ordre d'insertion) doit être renvoyé")
	}
}

func TestCreateDossierDefaultsToRequestStage(t *testing.T) {
	s := New()
	d := s.CreateDossier(models.Dossier{ApprenticeID: 1, CompanyID: 1, MentorID: 1})
	if d.Stage != models.StageRequest {
		t.Fatalf("étape initiale REQUEST attendue, obtenu %q", d.Stage)
	}
}
