package models

// StatusConsumed marks a catalog entry that was already drunk when the
// catalog was exported.
const StatusConsumed = "consumed"

// WineEntry is an immutable catalog record.
type WineEntry struct {
	ID                     string `json:"id"`
	Bottle                 string `json:"bottle"`
	Vintage                *int   `json:"vintage,omitempty"`
	Quantity               int    `json:"quantity"`
	Style                  string `json:"style,omitempty"`
	Country                string `json:"country,omitempty"`
	Region                 string `json:"region,omitempty"`
	Grapes                 string `json:"grapes,omitempty"`
	Location               string `json:"location,omitempty"`
	Status                 string `json:"status,omitempty"`
	ConsumedDate           string `json:"consumedDate,omitempty"`
	Rating                 *int   `json:"rating,omitempty"`
	Notes                  string `json:"notes,omitempty"`
	PeakYear               *int   `json:"peakYear,omitempty"`
	DrinkingWindow         string `json:"drinkingWindow,omitempty"`
	FoodPairingNotes       string `json:"foodPairingNotes,omitempty"`
	MealToHaveWithThisWine string `json:"mealToHaveWithThisWine,omitempty"`
	BottleImage            string `json:"bottle_image,omitempty"`
	TechnicalSheet         string `json:"technical_sheet,omitempty"`
}

func (w *WineEntry) IsPreConsumed() bool {
	return w.Status == StatusConsumed
}

// Catalog is the read-only set of wines, kept in source order.
type Catalog struct {
	wines []*WineEntry
	index map[string]*WineEntry
}

// NewCatalog indexes wines by id. Later duplicates of an id are dropped and
// returned so the caller can report them.
func NewCatalog(wines []*WineEntry) (*Catalog, []string) {
	c := &Catalog{
		wines: make([]*WineEntry, 0, len(wines)),
		index: make(map[string]*WineEntry, len(wines)),
	}
	var duplicates []string
	for _, w := range wines {
		if w == nil {
			continue
		}
		if _, ok := c.index[w.ID]; ok {
			duplicates = append(duplicates, w.ID)
			continue
		}
		c.index[w.ID] = w
		c.wines = append(c.wines, w)
	}
	return c, duplicates
}

func (c *Catalog) Get(id string) (*WineEntry, bool) {
	w, ok := c.index[id]
	return w, ok
}

func (c *Catalog) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// All returns a copy of the wine list; the entries themselves are shared.
func (c *Catalog) All() []*WineEntry {
	out := make([]*WineEntry, len(c.wines))
	copy(out, c.wines)
	return out
}

func (c *Catalog) Len() int {
	return len(c.wines)
}
