package store

import (
	"time"

	"github.com/Samsooon76/cerfalt/models"
)

type ApprenticeUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	BirthDate *string
	Address   *string
	Education *string
}

type CompanyUpdate struct {
	Name    *string
	Siret   *string
	Address *string
	Email   *string
	Phone   *string
}

type MentorUpdate struct {
	FirstName  *string
	LastName   *string
	Position   *string
	Email      *string
	Phone      *string
	Experience *string
	CompanyID  *uint
}

func (s *Store) CreateApprentice(a models.Apprentice) models.Apprentice {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apprenticeSeq++
	a.ID = s.apprenticeSeq
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	s.apprentices[a.ID] = a
	return a
}

func (s *Store) GetApprentice(id uint) *models.Apprentice {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.apprentices[id]; ok {
		return &a
	}
	return nil
}

func (s *Store) UpdateApprentice(id uint, upd ApprenticeUpdate) *models.Apprentice {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.apprentices[id]
	if !ok {
		return nil
	}
	if upd.FirstName != nil {
		a.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		a.LastName = *upd.LastName
	}
	if upd.Email != nil {
		a.Email = *upd.Email
	}
	if upd.Phone != nil {
		a.Phone = upd.Phone
	}
	if upd.BirthDate != nil {
		a.BirthDate = upd.BirthDate
	}
	if upd.Address != nil {
		a.Address = upd.Address
	}
	if upd.Education != nil {
		a.Education = upd.Education
	}
	a.UpdatedAt = time.Now()
	s.apprentices[id] = a
	return &a
}

func (s *Store) DeleteApprentice(id uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.apprentices[id]; !ok {
		return false
	}
	delete(s.apprentices, id)
	return true
}

func (s *Store) ListApprentices() []models.Apprentice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Apprentice, 0, len(s.apprentices))
	for _, id := range sortedIDs(s.apprentices) {
		out = append(out, s.apprentices[id])
	}
	return out
}

func (s *Store) CreateCompany(c models.Company) models.Company {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companySeq++
	c.ID = s.companySeq
	c.CreatedAt = time.Now()
	s.companies[c.ID] = c
	return c
}

func (s *Store) GetCompany(id uint) *models.Company {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.companies[id]; ok {
		return &c
	}
	return nil
}

func (s *Store) UpdateCompany(id uint, upd CompanyUpdate) *models.Company {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.companies[id]
	if !ok {
		return nil
	}
	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.Siret != nil {
		c.Siret = upd.Siret
	}
	if upd.Address != nil {
		c.Address = upd.Address
	}
	if upd.Email != nil {
		c.Email = upd.Email
	}
	if upd.Phone != nil {
		c.Phone = upd.Phone
	}
	s.companies[id] = c
	return &c
}

// DeleteCompany ne touche pas aux tuteurs qui référencent l'entreprise :
// la référence est faible, les lecteurs doivent vérifier.
func (s *Store) DeleteCompany(id uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.companies[id]; !ok {
		return false
	}
	delete(s.companies, id)
	return true
}

func (s *Store) ListCompanies() []models.Company {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Company, 0, len(s.companies))
	for _, id := range sortedIDs(s.companies) {
		out = append(out, s.companies[id])
	}
	return out
}

func (s *Store) CreateMentor(m models.Mentor) models.Mentor {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mentorSeq++
	m.ID = s.mentorSeq
	m.CreatedAt = time.Now()
	s.mentors[m.ID] = m
	return m
}

func (s *Store) GetMentor(id uint) *models.Mentor {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.mentors[id]; ok {
		return &m
	}
	return nil
}

func (s *Store) UpdateMentor(id uint, upd MentorUpdate) *models.Mentor {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.mentors[id]
	if !ok {
		return nil
	}
	if upd.FirstName != nil {
		m.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		m.LastName = *upd.LastName
	}
	if upd.Position != nil {
		m.Position = upd.Position
	}
	if upd.Email != nil {
		m.Email = upd.Email
	}
	if upd.Phone != nil {
		m.Phone = upd.Phone
	}
	if upd.Experience != nil {
		m.Experience = upd.Experience
	}
	if upd.CompanyID != nil {
		m.CompanyID = upd.CompanyID
	}
	s.mentors[id] = m
	return &m
}

func (s *Store) DeleteMentor(id uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.mentors[id]; !ok {
		return false
	}
	delete(s.mentors, id)
	return true
}

func (s *Store) ListMentors() []models.Mentor {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Mentor, 0, len(s.mentors))
	for _, id := range sortedIDs(s.mentors) {
		out = append(out, s.mentors[id])
	}
	return out
}
