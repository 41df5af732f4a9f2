package store

import (
	"time"

	"github.com/Samsooon76/cerfalt/models"
)

func (s *Store) CreateDocument(d models.Document) models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documentSeq++
	d.ID = s.documentSeq
	d.CreatedAt = time.Now()
	s.documents[d.ID] = d
	return d
}

func (s *Store) GetDocument(id uint) *models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.documents[id]; ok {
		return &d
	}
	return nil
}

func (s *Store) DeleteDocument(id uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[id]; !ok {
		return false
	}
	delete(s.documents, id)
	return true
}

// ListDocuments renvoie tous les documents, ou ceux d'un dossier si
// dossierID est non nil.
func (s *Store) ListDocuments(dossierID *uint) []models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Document, 0, len(s.documents))
	for _, id := range sortedIDs(s.documents) {
		d := s.documents[id]
		if dossierID != nil && d.DossierID != *dossierID {
			continue
		}
		out = append(out, d)
	}
	return out
}

func (s *Store) CreateComment(c models.Comment) models.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commentSeq++
	c.ID = s.commentSeq
	c.CreatedAt = time.Now()
	s.comments[c.ID] = c
	return c
}

func (s *Store) GetComment(id uint) *models.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.comments[id]; ok {
		return &c
	}
	return nil
}

func (s *Store) DeleteComment(id uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[id]; !ok {
		return false
	}
	delete(s.comments, id)
	return true
}

func (s *Store) ListComments(dossierID *uint) []models.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Comment, 0, len(s.comments))
	for _, id := range sortedIDs(s.comments) {
		c := s.comments[id]
		if dossierID != nil && c.DossierID != *dossierID {
			continue
		}
		out = append(out, c)
	}
	return out
}

// AppendActivity ajoute une entrée au journal d'audit. Le journal est en
// ajout seul : aucune opération de mise à jour ni de suppression n'existe.
func (s *Store) AppendActivity(a models.Activity) models.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activitySeq++
	a.ID = s.activitySeq
	a.CreatedAt = time.Now()
	s.activities[a.ID] = a
	return a
}

// ListActivities renvoie les entrées les plus récentes d'abord, filtrées
// par dossier si demandé, limitées à limit si limit > 0.
func (s *Store) ListActivities(dossierID *uint, limit int) []models.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := sortedIDs(s.activities)
	out := make([]models.Activity, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		a := s.activities[ids[i]]
		if dossierID != nil && (a.DossierID == nil || *a.DossierID != *dossierID) {
			continue
		}
		out = append(out, a)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// CountActivities sert aux tests et au tableau de bord.
func (s *Store) CountActivities() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.activities)
}
