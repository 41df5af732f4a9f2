package models

import "time"

// Types de documents reconnus. Seuls ID_CARD et PASSPORT sont éligibles à
// l'extraction OCR.
const (
	DocTypeCerfa       = "CERFA"
	DocTypeIDCard      = "ID_CARD"
	DocTypePassport    = "PASSPORT"
	DocTypeCertificate = "CERTIFICATE"
	DocTypeContract    = "CONTRACT"
	DocTypeOther       = "OTHER"
)

// DocumentTypes liste les types acceptés à l'upload.
var DocumentTypes = []string{
	DocTypeCerfa,
	DocTypeIDCard,
	DocTypePassport,
	DocTypeCertificate,
	DocTypeContract,
	DocTypeOther,
}

// ValidDocumentType indique si t appartient au vocabulaire des types.
func ValidDocumentType(t string) bool {
	for _, dt := range DocumentTypes {
		if dt == t {
			return true
		}
	}
	return false
}

// ExtractableDocumentType indique si t est un document d'identité
// éligible à l'extraction.
func ExtractableDocumentType(t string) bool {
	return t == DocTypeIDCard || t == DocTypePassport
}

// Document importé, rattaché à un dossier. ExtractedData contient soit le
// résultat d'extraction sérialisé, soit la sentinelle "non extrait".
type Document struct {
	ID            uint      `json:"id"`
	DossierID     uint      `json:"dossier_id"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	StoragePath   string    `json:"storage_path"`
	MimeType      string    `json:"mime_type"`
	SizeBytes     int64     `json:"size_bytes"`
	ExtractedData string    `json:"extracted_data"`
	CreatedAt     time.Time `json:"created_at"`
}

// Commentaire d'un utilisateur sur un dossier.
type Comment struct {
	ID        uint      `json:"id"`
	DossierID uint      `json:"dossier_id"`
	UserID    uint      `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
