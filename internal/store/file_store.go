package store

import (
	"cellar/internal/models"
	"cellar/internal/providers"
	"cellar/internal/store/interfaces"
	"cellar/internal/structures"
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
)

type FileStore struct {
	path       string
	compress   bool
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewFileStore(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) interfaces.StoreInterface {
	return &FileStore{
		path:       conf.Persistence.FilePath,
		compress:   conf.Persistence.Compress,
		compressor: compressor,
		logger:     logger,
		metrics:    metrics,
	}
}

// Load reads the stored document. A corrupt payload is removed and a fresh
// document returned, so a damaged file never blocks startup.
func (f *FileStore) Load() *models.Document {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.NewDocument()
		}
		f.logger.Warnf(providers.TypeStore, "Unable to read %s, starting empty: %s", f.path, err)
		f.metrics.IncStoreRecoveries("read")
		return models.NewDocument()
	}

	if IsCompressed(data) {
		data, err = f.compressor.Decompress(data)
		if err != nil {
			return f.discard("decompress", err)
		}
	}

	doc, from, err := decodeDocument(data)
	if err != nil {
		return f.discard("decode", err)
	}
	if from < models.DocumentVersion {
		f.logger.Warnf(providers.TypeStore, "Upgraded stored document from version %d to %d", from, models.DocumentVersion)
	} else if from > models.DocumentVersion {
		f.logger.Warnf(providers.TypeStore, "Stored document version %d is newer than supported version %d", from, models.DocumentVersion)
	}
	return doc
}

func (f *FileStore) discard(reason string, cause error) *models.Document {
	f.logger.Warnf(providers.TypeStore, "Failed to parse saved state (%s); resetting: %s", reason, cause)
	f.metrics.IncStoreRecoveries(reason)
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		f.logger.Errorf(providers.TypeStore, "Unable to remove corrupt state %s: %s", f.path, err)
	}
	return models.NewDocument()
}

// Save writes the full document with a single rename so readers see either
// the previous or the new payload.
func (f *FileStore) Save(doc *models.Document) error {
	start := time.Now()
	defer func() {
		f.metrics.ObservePersistenceDuration(time.Since(start))
	}()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if f.compress {
		data, err = f.compressor.Compress(data)
		if err != nil {
			return fmt.Errorf("compress document: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	tmpFile := f.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, f.path)
}

// Reset discards the stored payload.
func (f *FileStore) Reset() error {
	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove stored state: %w", err)
	}
	f.logger.Infof(providers.TypeStore, "Stored state %s removed", f.path)
	return nil
}
