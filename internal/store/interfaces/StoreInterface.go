package interfaces

import "cellar/internal/models"

type CompressorInterface interface {
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
}

// StoreInterface persists the cellar document. Load never fails: a missing
// or unreadable payload yields a fresh document.
type StoreInterface interface {
	Load() *models.Document
	Save(doc *models.Document) error
	Reset() error
}
