package models

import "time"

// Types d'activités journalisées.
const (
	ActivityCreate         = "CREATE"
	ActivityUpdate         = "UPDATE"
	ActivityDelete         = "DELETE"
	ActivityStageChange    = "STAGE_CHANGE"
	ActivityDocumentUpload = "DOCUMENT_UPLOAD"
	ActivityDocumentDelete = "DOCUMENT_DELETE"
	ActivityComment        = "COMMENT"
	ActivityCommentDelete  = "COMMENT_DELETE"
	ActivityOCRUpdate      = "OCR_UPDATE"
)

// Activity est une entrée du journal d'audit : une action mutante, son
// auteur et, le cas échéant, le dossier concerné. Le journal est en
// ajout seul, jamais modifié ni purgé.
type Activity struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	DossierID   *uint     `json:"dossier_id,omitempty"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
