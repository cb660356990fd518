package catalog

import (
	"bytes"
	"cellar/internal/models"
	"cellar/internal/providers"
	"cellar/internal/structures"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
)

const maxCatalogSize = 32 << 20 // 32 MB

var ErrEmptySource = errors.New("catalog source is empty")

// rawWine mirrors the catalog file. Numeric fields arrive as numbers,
// numeric strings, or placeholders such as "NV", so they are decoded loosely.
type rawWine struct {
	ID                     any    `json:"id"`
	Bottle                 string `json:"bottle"`
	Vintage                any    `json:"vintage"`
	Quantity               any    `json:"quantity"`
	Style                  string `json:"style"`
	Country                string `json:"country"`
	Region                 string `json:"region"`
	Grapes                 string `json:"grapes"`
	Location               string `json:"location"`
	Status                 string `json:"status"`
	ConsumedDate           string `json:"consumedDate"`
	Rating                 any    `json:"rating"`
	Notes                  string `json:"notes"`
	PeakYear               any    `json:"peakYear"`
	DrinkingWindow         string `json:"drinkingWindow"`
	FoodPairingNotes       string `json:"foodPairingNotes"`
	MealToHaveWithThisWine string `json:"mealToHaveWithThisWine"`
	BottleImage            string `json:"bottle_image"`
	TechnicalSheet         string `json:"technical_sheet"`
}

func optionalInt(v any) *int {
	if v == nil {
		return nil
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return nil
	}
	return &n
}

func (r *rawWine) toEntry() *models.WineEntry {
	qty := 1
	if q := optionalInt(r.Quantity); q != nil {
		qty = *q
	}
	return &models.WineEntry{
		ID:                     cast.ToString(r.ID),
		Bottle:                 r.Bottle,
		Vintage:                optionalInt(r.Vintage),
		Quantity:               qty,
		Style:                  r.Style,
		Country:                r.Country,
		Region:                 r.Region,
		Grapes:                 r.Grapes,
		Location:               r.Location,
		Status:                 r.Status,
		ConsumedDate:           r.ConsumedDate,
		Rating:                 optionalInt(r.Rating),
		Notes:                  r.Notes,
		PeakYear:               optionalInt(r.PeakYear),
		DrinkingWindow:         r.DrinkingWindow,
		FoodPairingNotes:       r.FoodPairingNotes,
		MealToHaveWithThisWine: r.MealToHaveWithThisWine,
		BottleImage:            r.BottleImage,
		TechnicalSheet:         r.TechnicalSheet,
	}
}

// Decode parses a JSON array of wines. Entries without an id are skipped.
func Decode(data []byte) ([]*models.WineEntry, error) {
	var raw []*rawWine
	if err := json.Unmarshal(bytes.TrimSpace(data), &raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	wines := make([]*models.WineEntry, 0, len(raw))
	for _, r := range raw {
		if r == nil {
			continue
		}
		w := r.toEntry()
		if w.ID == "" {
			continue
		}
		wines = append(wines, w)
	}
	return wines, nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Fetch reads the raw catalog from a local path or an http(s) URL.
func Fetch(ctx context.Context, client *http.Client, source string) ([]byte, error) {
	if source == "" {
		return nil, ErrEmptySource
	}
	if !isRemote(source) {
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", source, err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog %s: %w", source, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch catalog %s: unexpected status %d", source, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogSize))
	if err != nil {
		return nil, fmt.Errorf("read catalog body: %w", err)
	}
	return data, nil
}

// Load fetches and indexes the catalog.
func Load(ctx context.Context, client *http.Client, source string, logger providers.Logger) (*models.Catalog, error) {
	data, err := Fetch(ctx, client, source)
	if err != nil {
		return nil, err
	}
	wines, err := Decode(data)
	if err != nil {
		return nil, err
	}
	cat, duplicates := models.NewCatalog(wines)
	for _, id := range duplicates {
		logger.Warnf(providers.TypeApp, "Duplicate catalog id %q ignored", id)
	}
	return cat, nil
}

// NewCatalogProvider loads the catalog once at startup. A failure here is
// fatal for the application.
func NewCatalogProvider(conf *structures.Config, logger providers.Logger) (*models.Catalog, error) {
	ctx, cancel := context.WithTimeout(context.Background(), conf.Catalog.Timeout)
	defer cancel()

	cat, err := Load(ctx, &http.Client{Timeout: conf.Catalog.Timeout}, conf.Catalog.Source, logger)
	if err != nil {
		logger.Errorf(providers.TypeApp, "Failed to load wines: %s", err)
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	logger.Infof(providers.TypeApp, "Loaded %d wines from %s", cat.Len(), conf.Catalog.Source)
	return cat, nil
}
