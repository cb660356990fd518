package services

import (
	"cellar/internal/models"
	"cellar/internal/providers"
	"cellar/internal/store/interfaces"
	"errors"
	"fmt"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

const dateLayout = "2006-01-02"

var (
	ErrWineNotFound = errors.New("wine not found")
	ErrLogNotFound  = errors.New("log not found")
	ErrNoteNotFound = errors.New("note not found")
)

// WineView is a catalog entry joined with its remaining count.
type WineView struct {
	*models.WineEntry
	Remaining int `json:"remaining"`
}

type WineList struct {
	Wines []WineView     `json:"wines"`
	Count int            `json:"count"`
	Stats models.Stats   `json:"stats"`
	Sort  models.SortKey `json:"sort"`
}

// LogView is a log together with the largest quantity it may be edited to.
type LogView struct {
	Log      models.ConsumptionLog `json:"log"`
	Headroom int                   `json:"headroom"`
}

type LogResult struct {
	Log       models.ConsumptionLog `json:"log"`
	Clamp     models.Clamp          `json:"clamp"`
	Remaining int                   `json:"remaining"`
}

type CellarServiceInterface interface {
	Restore() ([]models.Discrepancy, error)
	Catalog() *models.Catalog
	Revision() uint64
	Remaining() map[string]int
	Wine(id string) (WineView, error)
	ListWines(filter models.FilterSet, key models.SortKey) WineList
	Facets() models.Facets
	Journal() []models.JournalItem
	Log(key string) (LogView, error)
	RecordConsumption(id string, in models.ConsumptionInput) (LogResult, error)
	EditLog(key string, changes models.LogChanges) (LogResult, error)
	DeleteLog(key string) error
	AddNote(in models.NoteInput) (models.FreeNote, error)
	DeleteNote(id string) error
	Export() ([]byte, error)
	Reset() error
	Verify() []models.Discrepancy
	TotalRemaining() int
	LogCount() int
	NoteCount() int
}

// CellarService owns the catalog and the persisted document. Every
// operation holds mu, so a mutation and its save complete before the next
// operation starts.
type CellarService struct {
	mu       sync.Mutex
	catalog  *models.Catalog
	doc      *models.Document
	store    interfaces.StoreInterface
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
	revision uint64
	now      func() time.Time
}

func NewCellarService(catalog *models.Catalog, store interfaces.StoreInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) CellarServiceInterface {
	return &CellarService{
		catalog: catalog,
		doc:     models.NewDocument(),
		store:   store,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

func (cs *CellarService) today() string {
	return cs.now().Format(dateLayout)
}

// persist saves the document and bumps the revision. Callers hold mu.
func (cs *CellarService) persist() error {
	cs.revision++
	if err := cs.store.Save(cs.doc); err != nil {
		cs.logger.Errorf(providers.TypeStore, "Error while persisting state: %s", err)
		return fmt.Errorf("persist state: %w", err)
	}
	return nil
}

func (cs *CellarService) reportClamp(operation string, c models.Clamp) {
	if !c.Clamped() {
		return
	}
	cs.metrics.IncClamped(operation)
	cs.logger.Debugf(providers.TypePost, "%s quantity clamped from %d to %d", operation, c.Requested, c.Applied)
}

// Restore loads the stored document, repairs a ledger that disagrees with
// its logs, and runs the one-time seed migration. It returns the ledger
// discrepancies it repaired.
func (cs *CellarService) Restore() ([]models.Discrepancy, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.doc = cs.store.Load()
	changed := false
	discrepancies := cs.doc.Reconcile()
	if len(discrepancies) > 0 {
		for _, d := range discrepancies {
			cs.logger.Warnf(providers.TypeStore, "Ledger for %s is %d but logs sum to %d; rebuilding", d.WineID, d.Ledger, d.Logged)
		}
		cs.metrics.IncStoreRecoveries("ledger")
		cs.doc.RebuildLedger()
		changed = true
	}

	if n := cs.doc.MigrateOnce(cs.catalog, cs.today()); n > 0 {
		cs.logger.Infof(providers.TypeApp, "Seeded %d consumption logs from catalog", n)
		changed = true
	}
	cs.revision++
	if changed {
		return discrepancies, cs.persist()
	}
	return discrepancies, nil
}

func (cs *CellarService) Catalog() *models.Catalog {
	return cs.catalog
}

func (cs *CellarService) Revision() uint64 {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.revision
}

func (cs *CellarService) Remaining() map[string]int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.doc.Remaining(cs.catalog)
}

func (cs *CellarService) Wine(id string) (WineView, error) {
	w, ok := cs.catalog.Get(id)
	if !ok {
		return WineView{}, ErrWineNotFound
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return WineView{WineEntry: w, Remaining: cs.doc.RemainingFor(w)}, nil
}

func (cs *CellarService) ListWines(filter models.FilterSet, key models.SortKey) WineList {
	remaining := cs.Remaining()
	list := models.Sort(models.Filter(cs.catalog, remaining, filter), key)

	views := make([]WineView, 0, len(list))
	for _, w := range list {
		views = append(views, WineView{WineEntry: w, Remaining: remaining[w.ID]})
	}
	return WineList{
		Wines: views,
		Count: len(views),
		Stats: models.BuildStats(cs.catalog, list, remaining),
		Sort:  key,
	}
}

func (cs *CellarService) Facets() models.Facets {
	return models.BuildFacets(cs.catalog)
}

func (cs *CellarService) Journal() []models.JournalItem {
	cs.mu.Lock()
	snapshot := cs.doc.Clone()
	cs.mu.Unlock()
	return models.BuildJournal(snapshot, cs.catalog)
}

func (cs *CellarService) Log(key string) (LogView, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	log := cs.doc.FindLog(key)
	if log == nil {
		return LogView{}, ErrLogNotFound
	}
	return LogView{Log: *log, Headroom: cs.doc.Headroom(cs.catalog, log)}, nil
}

func (cs *CellarService) RecordConsumption(id string, in models.ConsumptionInput) (LogResult, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	log, clamp := cs.doc.RecordConsumption(cs.catalog, id, in, cs.today())
	if log == nil {
		return LogResult{}, ErrWineNotFound
	}
	cs.reportClamp("consume", clamp)
	w, _ := cs.catalog.Get(id)
	result := LogResult{Log: *log, Clamp: clamp, Remaining: cs.doc.RemainingFor(w)}
	return result, cs.persist()
}

// EditLog limits the requested quantity to the log's headroom, the way the
// edit form does, before the ledger is moved by the delta.
func (cs *CellarService) EditLog(key string, changes models.LogChanges) (LogResult, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	log := cs.doc.FindLog(key)
	if log == nil {
		return LogResult{}, ErrLogNotFound
	}
	requested := changes.Quantity
	headroom := max(1, cs.doc.Headroom(cs.catalog, log))
	if changes.Quantity > headroom {
		changes.Quantity = headroom
	}
	clamp := cs.doc.EditLog(log, changes)
	clamp.Requested = requested
	cs.reportClamp("edit", clamp)

	result := LogResult{Log: *log, Clamp: clamp}
	if w, ok := cs.catalog.Get(log.ID); ok {
		result.Remaining = cs.doc.RemainingFor(w)
	}
	return result, cs.persist()
}

func (cs *CellarService) DeleteLog(key string) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	log := cs.doc.FindLog(key)
	if log == nil || !cs.doc.DeleteLog(log) {
		return ErrLogNotFound
	}
	return cs.persist()
}

func (cs *CellarService) AddNote(in models.NoteInput) (models.FreeNote, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	note := cs.doc.AddNote(cs.catalog, in, cs.today())
	return *note, cs.persist()
}

func (cs *CellarService) DeleteNote(id string) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if !cs.doc.DeleteNote(id) {
		return ErrNoteNotFound
	}
	return cs.persist()
}

// Export renders the whole document as indented JSON.
func (cs *CellarService) Export() ([]byte, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return json.MarshalIndent(cs.doc, "", "  ")
}

// Reset discards all local state and replays the seed migration.
func (cs *CellarService) Reset() error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if err := cs.store.Reset(); err != nil {
		cs.logger.Errorf(providers.TypeStore, "Reset failed: %s", err)
		return err
	}
	cs.doc = models.NewDocument()
	n := cs.doc.MigrateOnce(cs.catalog, cs.today())
	cs.logger.Infof(providers.TypeApp, "Local data reset, %d consumption logs seeded", n)
	return cs.persist()
}

func (cs *CellarService) Verify() []models.Discrepancy {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.doc.Reconcile()
}

func (cs *CellarService) TotalRemaining() int {
	total := 0
	for _, r := range cs.Remaining() {
		total += r
	}
	return total
}

func (cs *CellarService) LogCount() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return len(cs.doc.Logs)
}

func (cs *CellarService) NoteCount() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return len(cs.doc.FreeNotes)
}
