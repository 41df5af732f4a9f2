package store

import (
	"time"

	"github.com/Samsooon76/cerfalt/models"
)

type DossierUpdate struct {
	ApprenticeID *uint
	CompanyID    *uint
	MentorID     *uint
	Stage        *string
	StartDate    *string
	EndDate      *string
	Duration     *int
	Salary       *float64
	WorkHours    *string
}

// CreateDossier n'effectue aucune vérification d'existence des trois
// références : les lectures brutes tolèrent les références cassées, seule
// la lecture jointe (DossierDetails) échoue dessus.
func (s *Store) CreateDossier(d models.Dossier) models.Dossier {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dossierSeq++
	d.ID = s.dossierSeq
	if d.Stage == "" {
		d.Stage = models.StageRequest
	}
	now := time.Now()
	d.CreatedAt = now
	d.UpdatedAt = now
	s.dossiers[d.ID] = d
	return d
}

func (s *Store) GetDossier(id uint) *models.Dossier {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.dossiers[id]; ok {
		return &d
	}
	return nil
}

func (s *Store) UpdateDossier(id uint, upd DossierUpdate) *models.Dossier {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.dossiers[id]
	if !ok {
		return nil
	}
	if upd.ApprenticeID != nil {
		d.ApprenticeID = *upd.ApprenticeID
	}
	if upd.CompanyID != nil {
		d.CompanyID = *upd.CompanyID
	}
	if upd.MentorID != nil {
		d.MentorID = *upd.MentorID
	}
	if upd.Stage != nil {
		d.Stage = *upd.Stage
	}
	if upd.StartDate != nil {
		d.StartDate = upd.StartDate
	}
	if upd.EndDate != nil {
		d.EndDate = upd.EndDate
	}
	if upd.Duration != nil {
		d.Duration = upd.Duration
	}
	if upd.Salary != nil {
		d.Salary = upd.Salary
	}
	if upd.WorkHours != nil {
		d.WorkHours = upd.WorkHours
	}
	d.UpdatedAt = time.Now()
	s.dossiers[id] = d
	return &d
}

func (s *Store) DeleteDossier(id uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.dossiers[id]; !ok {
		return false
	}
	delete(s.dossiers, id)
	return true
}

func (s *Store) ListDossiers() []models.Dossier {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Dossier, 0, len(s.dossiers))
	for _, id := range sortedIDs(s.dossiers) {
		out = append(out, s.dossiers[id])
	}
	return out
}

// FindDossierByApprentice renvoie le premier dossier (ordre d'insertion)
// rattaché à l'apprenti, ou nil.
func (s *Store) FindDossierByApprentice(apprenticeID uint) *models.Dossier {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range sortedIDs(s.dossiers) {
		if d := s.dossiers[id]; d.ApprenticeID == apprenticeID {
			return &d
		}
	}
	return nil
}

// CommentWithAuthor joint un commentaire à son auteur ; Author est nil si
// l'utilisateur a disparu (toléré ici, contrairement aux trois références
// obligatoires du dossier).
type CommentWithAuthor struct {
	models.Comment
	Author *models.User `json:"author,omitempty"`
}

// DossierDetails est la vue jointe d'un dossier pour la page de détail.
type DossierDetails struct {
	Dossier    models.Dossier      `json:"dossier"`
	Apprentice models.Apprentice   `json:"apprentice"`
	Company    models.Company      `json:"company"`
	Mentor     models.Mentor       `json:"mentor"`
	Documents  []models.Document   `json:"documents"`
	Comments   []CommentWithAuthor `json:"comments"`
}

// GetDossierDetails échoue fermé : nil dès que le dossier ou l'une de ses
// trois références obligatoires est introuvable, alors que les lectures
// brutes tolèrent les références cassées.
func (s *Store) GetDossierDetails(id uint) *DossierDetails {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.dossiers[id]
	if !ok {
		return nil
	}
	apprentice, ok := s.apprentices[d.ApprenticeID]
	if !ok {
		return nil
	}
	company, ok := s.companies[d.CompanyID]
	if !ok {
		return nil
	}
	mentor, ok := s.mentors[d.MentorID]
	if !ok {
		return nil
	}

	details := &DossierDetails{
		Dossier:    d,
		Apprentice: apprentice,
		Company:    company,
		Mentor:     mentor,
		Documents:  []models.Document{},
		Comments:   []CommentWithAuthor{},
	}
	for _, docID := range sortedIDs(s.documents) {
		if doc := s.documents[docID]; doc.DossierID == id {
			details.Documents = append(details.Documents, doc)
		}
	}
	for _, cid := range sortedIDs(s.comments) {
		c := s.comments[cid]
		if c.DossierID != id {
			continue
		}
		joined := CommentWithAuthor{Comment: c}
		if author, ok := s.users[c.UserID]; ok {
			joined.Author = &author
		}
		details.Comments = append(details.Comments, joined)
	}
	return details
}
