package testutil

import (
	"cellar/internal/models"
	"cellar/internal/providers"
	"errors"
	"fmt"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (e LogEntry) Message() string {
	return fmt.Sprintf(e.Format, e.Args...)
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu               sync.Mutex
	Requests         int
	CacheHits        int
	CacheMisses      int
	PersistenceCalls int
	Clamped          map[string]int
	Recoveries       map[string]int
	Watched          providers.CellarGaugeSource
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{Clamped: make(map[string]int), Recoveries: make(map[string]int)}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistenceCalls++
}
func (m *MockMetrics) IncClamped(operation string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Clamped[operation]++
}
func (m *MockMetrics) IncStoreRecoveries(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Recoveries[reason]++
}
func (m *MockMetrics) WatchCellar(source providers.CellarGaugeSource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Watched = source
}

// MockStore implements interfaces.StoreInterface in memory. Saved documents
// are cloned so later mutations by the caller are not visible.
type MockStore struct {
	mu       sync.Mutex
	Doc      *models.Document
	Saves    int
	Resets   int
	SaveErr  error
	ResetErr error
}

var ErrMockStore = errors.New("mock store failure")

func (m *MockStore) Load() *models.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Doc == nil {
		return models.NewDocument()
	}
	return m.Doc.Clone()
}

func (m *MockStore) Save(doc *models.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Saves++
	m.Doc = doc.Clone()
	return nil
}

func (m *MockStore) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ResetErr != nil {
		return m.ResetErr
	}
	m.Resets++
	m.Doc = nil
	return nil
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

// Wines builds a small catalog used across package tests.
func Wines() *models.Catalog {
	intPtr := func(v int) *int { return &v }
	c, _ := models.NewCatalog([]*models.WineEntry{
		{ID: "w1", Bottle: "Barolo Cannubi", Vintage: intPtr(2015), Quantity: 3, Style: "Red", Country: "Italy", Region: "Piedmont", Grapes: "Nebbiolo", Location: "Rack 1"},
		{ID: "w2", Bottle: "Cloudy Bay", Vintage: intPtr(2021), Quantity: 2, Style: "White", Country: "New Zealand", Grapes: "Sauvignon Blanc", Location: "Fridge"},
		{ID: "w3", Bottle: "Chateau Musar", Quantity: 1, Style: "Red", Country: "Lebanon", Grapes: "Cabernet Sauvignon", Location: "Rack 2", Status: models.StatusConsumed, ConsumedDate: "2023-12-31", Rating: intPtr(5)},
	})
	return c
}
