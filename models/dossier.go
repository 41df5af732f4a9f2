package models

import "time"

// Les cinq étapes du pipeline de traitement d'un dossier. L'ordre est
// l'ordre d'affichage canonique ; les transitions sont libres entre les
// cinq valeurs (un retour en arrière est autorisé).
const (
	StageRequest      = "REQUEST"
	StageCreated      = "CREATED"
	StageVerification = "VERIFICATION"
	StageProcessing   = "PROCESSING"
	StageValidated    = "VALIDATED"
)

// Stages liste les étapes dans l'ordre canonique.
var Stages = []string{
	StageRequest,
	StageCreated,
	StageVerification,
	StageProcessing,
	StageValidated,
}

// ValidStage indique si s appartient au vocabulaire des étapes.
func ValidStage(s string) bool {
	for _, stage := range Stages {
		if stage == s {
			return true
		}
	}
	return false
}

// Dossier relie un apprenti, une entreprise et un tuteur. Les trois
// références sont obligatoires mais leur existence n'est pas vérifiée à la
// création ; seule la lecture jointe (détails) échoue sur une référence
// cassée. UpdatedAt est rafraîchi par toute mutation, changement d'étape
// compris.
type Dossier struct {
	ID           uint      `json:"id"`
	ApprenticeID uint      `json:"apprentice_id"`
	CompanyID    uint      `json:"company_id"`
	MentorID     uint      `json:"mentor_id"`
	Stage        string    `json:"stage"`
	StartDate    *string   `json:"start_date,omitempty"`
	EndDate      *string   `json:"end_date,omitempty"`
	Duration     *int      `json:"duration,omitempty"`
	Salary       *float64  `json:"salary,omitempty"`
	WorkHours    *string   `json:"work_hours,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
