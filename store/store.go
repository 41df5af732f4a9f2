package store

import (
	"sort"
	"sync"

	"github.com/Samsooon76/cerfalt/models"
)

// Store est la base en mémoire du service : une collection par type
// d'entité, chacune avec son compteur d'identifiants. Les compteurs ne
// reviennent jamais en arrière, un id supprimé n'est donc jamais réattribué.
//
// Un seul mutex sérialise les mutations ; les lectures renvoient des copies,
// jamais de pointeur vers l'état interne. Les workflows lents (appel OCR)
// ne doivent jamais tenir ce verrou : lire, appeler le service distant,
// puis écrire.
type Store struct {
	mu sync.Mutex

	users       map[uint]models.User
	apprentices map[uint]models.Apprentice
	companies   map[uint]models.Company
	mentors     map[uint]models.Mentor
	dossiers    map[uint]models.Dossier
	documents   map[uint]models.Document
	comments    map[uint]models.Comment
	activities  map[uint]models.Activity

	userSeq       uint
	apprenticeSeq uint
	companySeq    uint
	mentorSeq     uint
	dossierSeq    uint
	documentSeq   uint
	commentSeq    uint
	activitySeq   uint
}

// New construit un store vide. Chaque test en instancie un neuf, le binaire
// n'en construit qu'un, injecté partout.
func New() *Store {
	return &Store{
		users:       make(map[uint]models.User),
		apprentices: make(map[uint]models.Apprentice),
		companies:   make(map[uint]models.Company),
		mentors:     make(map[uint]models.Mentor),
		dossiers:    make(map[uint]models.Dossier),
		documents:   make(map[uint]models.Document),
		comments:    make(map[uint]models.Comment),
		activities:  make(map[uint]models.Activity),
	}
}

// sortedIDs renvoie les clés triées ; les ids étant monotones, l'ordre
// croissant est l'ordre d'insertion.
func sortedIDs[T any](m map[uint]T) []uint {
	ids := make([]uint, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
