package store

import (
	"time"

	"github.com/Samsooon76/cerfalt/models"
)

// UserUpdate porte les champs modifiables d'un utilisateur ; un pointeur
// nil laisse le champ existant intact.
type UserUpdate struct {
	Username *string
	Password *string
	FullName *string
	Role     *string
	Avatar   *string
}

func (s *Store) CreateUser(u models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userSeq++
	u.ID = s.userSeq
	u.CreatedAt = time.Now()
	s.users[u.ID] = u
	return u
}

func (s *Store) GetUser(id uint) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return &u
	}
	return nil
}

// GetUserByUsername sert au login ; renvoie nil si inconnu.
func (s *Store) GetUserByUsername(username string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range sortedIDs(s.users) {
		if u := s.users[id]; u.Username == username {
			return &u
		}
	}
	return nil
}

func (s *Store) UpdateUser(id uint, upd UserUpdate) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	if upd.Username != nil {
		u.Username = *upd.Username
	}
	if upd.Password != nil {
		u.Password = *upd.Password
	}
	if upd.FullName != nil {
		u.FullName = *upd.FullName
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	if upd.Avatar != nil {
		u.Avatar = upd.Avatar
	}
	s.users[id] = u
	return &u
}

func (s *Store) DeleteUser(id uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return false
	}
	delete(s.users, id)
	return true
}

func (s *Store) ListUsers() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.User, 0, len(s.users))
	for _, id := range sortedIDs(s.users) {
		out = append(out, s.users[id])
	}
	return out
}
