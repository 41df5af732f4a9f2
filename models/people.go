package models

import "time"

// Apprenti suivi par le centre. Les champs optionnels sont des pointeurs :
// un champ nil ou vide est considéré comme "non renseigné" par la
// réconciliation OCR (remplissage uniquement si vide).
type Apprentice struct {
	ID        uint      `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	BirthDate *string   `json:"birth_date,omitempty"`
	Address   *string   `json:"address,omitempty"`
	Education *string   `json:"education,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Entreprise d'accueil.
type Company struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Siret     *string   `json:"siret,omitempty"`
	Address   *string   `json:"address,omitempty"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Maître d'apprentissage. CompanyID est une référence faible : la
// suppression de l'entreprise ne supprime pas le tuteur.
type Mentor struct {
	ID         uint      `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Position   *string   `json:"position,omitempty"`
	Email      *string   `json:"email,omitempty"`
	Phone      *string   `json:"phone,omitempty"`
	Experience *string   `json:"experience,omitempty"`
	CompanyID  *uint     `json:"company_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
