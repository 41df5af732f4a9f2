package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Samsooon76/cerfalt/integrations/mistral"
	"github.com/Samsooon76/cerfalt/models"
	"github.com/Samsooon76/cerfalt/store"
	"github.com/Samsooon76/cerfalt/utils"
)

// MaxUploadBytes est le plafond de taille d'un fichier importé (10 Mio).
const MaxUploadBytes = 10 << 20

const defaultExtractTimeout = 30 * time.Second

// IdentityExtractor est le collaborateur OCR vu par le workflow : un appel
// distant, lent et faillible. Les tests le remplacent par un double en
// mémoire.
type IdentityExtractor interface {
	ExtractIdentityFields(ctx context.Context, imageBytes []byte, mimeType string) (*mistral.ExtractedIdentity, error)
}

// Ingest implémente le workflow d'import de documents : réception des
// octets, extraction OCR éventuelle, réconciliation remplissage-si-vide
// dans la fiche apprenti, création du document et journalisation.
type Ingest struct {
	Store     *store.Store
	Extractor IdentityExtractor // nil quand l'OCR n'est pas configuré
	UploadDir string
	// ExtractTimeout borne l'appel OCR pour qu'un collaborateur lent ne
	// bloque pas l'ingestion ; un dépassement est traité comme un échec
	// d'extraction. Zéro = 30 s.
	ExtractTimeout time.Duration
}

// UploadSummary est la réponse du mode direct apprenti : le document créé,
// le dossier résolu (créé au besoin) et les champs effectivement remplis.
type UploadSummary struct {
	Document       models.Document `json:"document"`
	DossierID      uint            `json:"dossier_id"`
	DossierCreated bool            `json:"dossier_created"`
	UpdatedFields  []string        `json:"updated_fields"`
}

// UploadToDossier rattache un document à un dossier existant (mode A).
// L'extraction n'est tentée que si attemptExtract est vrai, que le type est
// une pièce d'identité et que le contenu est une image JPEG/PNG ; son échec
// est journalisé mais ne fait jamais échouer l'import.
func (s *Ingest) UploadToDossier(ctx context.Context, actorID, dossierID uint, docType, name string, data []byte, attemptExtract bool) (*models.Document, error) {
	if err := validateUpload(docType, data); err != nil {
		return nil, err
	}

	dossier := s.Store.GetDossier(dossierID)
	if dossier == nil {
		return nil, ErrNotFound
	}

	mimeType := http.DetectContentType(data)
	var extracted *mistral.ExtractedIdentity
	if attemptExtract && models.ExtractableDocumentType(docType) && extractableImage(mimeType) {
		fields, err := s.extract(ctx, data, mimeType)
		if err != nil {
			// Dégradation volontaire : l'import continue sans données
			// extraites, seule la trace interne garde l'erreur.
			log.Printf("extraction OCR ignorée (dossier %d): %v", dossierID, err)
		} else {
			extracted = fields
		}
	}

	if extracted != nil {
		s.reconcileApprentice(actorID, dossier.ApprenticeID, &dossier.ID, extracted)
	}

	doc, err := s.persistDocument(actorID, dossier.ID, docType, name, mimeType, data, extracted)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// UploadForApprentice importe une pièce d'identité directement sur un
// apprenti (mode B). L'extraction est la raison d'être de ce mode : son
// échec fait échouer toute l'opération, avant tout effet de bord. Si
// l'apprenti n'a aucun dossier, un dossier est créé avec des références
// entreprise/tuteur provisoires pour accueillir le document.
func (s *Ingest) UploadForApprentice(ctx context.Context, actorID, apprenticeID uint, docType, name string, data []byte) (*UploadSummary, error) {
	if docType == "" {
		docType = models.DocTypeIDCard
	}
	if !models.ExtractableDocumentType(docType) {
		return nil, validationf("type %q non éligible à l'extraction", docType)
	}
	if err := validateUpload(docType, data); err != nil {
		return nil, err
	}
	mimeType := http.DetectContentType(data)
	if !extractableImage(mimeType) {
		return nil, validationf("type de fichier %q non supporté pour l'extraction (JPEG/PNG attendus)", mimeType)
	}

	apprentice := s.Store.GetApprentice(apprenticeID)
	if apprentice == nil {
		return nil, ErrNotFound
	}

	extracted, err := s.extract(ctx, data, mimeType)
	if err != nil {
		return nil, &ExtractionError{Err: err}
	}

	dossier := s.Store.FindDossierByApprentice(apprenticeID)
	created := false
	if dossier == nil {
		dossier = s.createPlaceholderDossier(actorID, apprentice)
		created = true
	}

	updatedFields := s.reconcileApprentice(actorID, apprenticeID, &dossier.ID, extracted)

	doc, err := s.persistDocument(actorID, dossier.ID, docType, name, mimeType, data, extracted)
	if err != nil {
		return nil, err
	}

	return &UploadSummary{
		Document:       *doc,
		DossierID:      dossier.ID,
		DossierCreated: created,
		UpdatedFields:  updatedFields,
	}, nil
}

func validateUpload(docType string, data []byte) error {
	if !models.ValidDocumentType(docType) {
		return validationf("type de document inconnu: %q", docType)
	}
	if len(data) == 0 {
		return validationf("fichier vide")
	}
	if len(data) > MaxUploadBytes {
		return validationf("fichier trop volumineux (maximum 10 Mio)")
	}
	return nil
}

func extractableImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/jpeg") || strings.HasPrefix(mimeType, "image/png")
}

// extract appelle le collaborateur OCR sous délai borné. Le store n'est
// jamais verrouillé pendant cet appel : lire, extraire, puis réconcilier.
func (s *Ingest) extract(ctx context.Context, data []byte, mimeType string) (*mistral.ExtractedIdentity, error) {
	if s.Extractor == nil {
		return nil, errors.New("extraction OCR non configurée")
	}
	timeout := s.ExtractTimeout
	if timeout == 0 {
		timeout = defaultExtractTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return s.Extractor.ExtractIdentityFields(ctx, data, mimeType)
}

// reconcileApprentice applique la politique remplissage-si-vide : une
// valeur extraite n'est copiée que si le champ correspondant de la fiche
// est vide ou absent, jamais par écrasement. Renvoie les noms des champs
// réellement modifiés ; s'il y en a, la fiche est persistée et une
// activité OCR_UPDATE est journalisée.
func (s *Ingest) reconcileApprentice(actorID, apprenticeID uint, dossierID *uint, extracted *mistral.ExtractedIdentity) []string {
	apprentice := s.Store.GetApprentice(apprenticeID)
	if apprentice == nil {
		return nil
	}

	var upd store.ApprenticeUpdate
	var changed []string

	if apprentice.FirstName == "" && extracted.FirstName != "" {
		upd.FirstName = &extracted.FirstName
		changed = append(changed, "first_name")
	}
	if apprentice.LastName == "" && extracted.LastName != "" {
		upd.LastName = &extracted.LastName
		changed = append(changed, "last_name")
	}
	if blank(apprentice.BirthDate) && extracted.BirthDate != "" {
		upd.BirthDate = &extracted.BirthDate
		changed = append(changed, "birth_date")
	}
	if blank(apprentice.Address) && extracted.Address != "" {
		upd.Address = &extracted.Address
		changed = append(changed, "address")
	}

	if len(changed) == 0 {
		return nil
	}
	if s.Store.UpdateApprentice(apprenticeID, upd) == nil {
		return nil
	}
	LogActivity(s.Store, actorID, dossierID, models.ActivityOCRUpdate,
		fmt.Sprintf("Fiche apprenti complétée par OCR (%s)", strings.Join(changed, ", ")))
	return changed
}

func blank(s *string) bool {
	return s == nil || *s == ""
}

// createPlaceholderDossier fabrique un dossier d'accueil pour un apprenti
// sans dossier : les références entreprise et tuteur pointent vers des
// fiches provisoires à compléter, pas vers la vraie entreprise.
func (s *Ingest) createPlaceholderDossier(actorID uint, apprentice *models.Apprentice) *models.Dossier {
	company := s.Store.CreateCompany(models.Company{Name: "Entreprise à renseigner"})
	mentor := s.Store.CreateMentor(models.Mentor{FirstName: "Tuteur", LastName: "À renseigner"})
	dossier := s.Store.CreateDossier(models.Dossier{
		ApprenticeID: apprentice.ID,
		CompanyID:    company.ID,
		MentorID:     mentor.ID,
		Stage:        models.StageRequest,
	})
	LogActivity(s.Store, actorID, &dossier.ID, models.ActivityCreate,
		fmt.Sprintf("Dossier créé automatiquement pour %s %s après import de pièce d'identité",
			apprentice.FirstName, apprentice.LastName))
	return &dossier
}

// persistDocument écrit les octets sur disque à un chemin unique, crée la
// fiche document (résultat d'extraction sérialisé ou sentinelle "non
// extrait") et journalise l'upload. Un échec d'écriture est fatal ; les
// écritures déjà commises en amont ne sont pas annulées.
func (s *Ingest) persistDocument(actorID, dossierID uint, docType, name, mimeType string, data []byte, extracted *mistral.ExtractedIdentity) (*models.Document, error) {
	path := utils.UniqueStoragePath(s.UploadDir, name)
	if err := utils.SaveBytesToFile(data, path); err != nil {
		return nil, &StorageError{Err: err}
	}

	doc := s.Store.CreateDocument(models.Document{
		DossierID:     dossierID,
		Name:          name,
		Type:          docType,
		StoragePath:   path,
		MimeType:      mimeType,
		SizeBytes:     int64(len(data)),
		ExtractedData: extractionPayload(extracted),
	})
	LogActivity(s.Store, actorID, &dossierID, models.ActivityDocumentUpload,
		fmt.Sprintf("Document %q (%s) ajouté", name, docType))
	return &doc, nil
}

// extractionPayload sérialise le résultat d'extraction, ou la sentinelle
// datée quand l'extraction a été sautée ou a échoué.
func extractionPayload(extracted *mistral.ExtractedIdentity) string {
	if extracted == nil {
		b, _ := json.Marshal(map[string]string{
			"status": "NON_EXTRAIT",
			"date":   time.Now().Format(time.RFC3339),
		})
		return string(b)
	}
	b, err := json.Marshal(extracted)
	if err != nil {
		return "{}"
	}
	return string(b)
}
