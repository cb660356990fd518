package models

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortKey string

const (
	SortByName     SortKey = "name"
	SortByVintage  SortKey = "vintage"
	SortByPeakYear SortKey = "peakYear"
	SortByCountry  SortKey = "country"
	SortByStyle    SortKey = "style"
	SortByLocation SortKey = "location"
)

// FilterSet is the predicate set of the cellar view. Empty sets match
// everything. OnlyInCellar and OnlyHaveQty currently test the same thing
// and are kept as separate toggles.
type FilterSet struct {
	Styles       []string
	Countries    []string
	Locations    []string
	OnlyInCellar bool
	OnlyHaveQty  bool
	Query        string
}

func matchesSet(set []string, v string) bool {
	return len(set) == 0 || slices.Contains(set, v)
}

func searchText(w *WineEntry) string {
	return strings.ToLower(strings.Join([]string{w.Bottle, w.Grapes, w.Country, w.Region, w.Style, w.Location}, " "))
}

// Matches reports whether w passes every predicate of the set.
func (f FilterSet) Matches(w *WineEntry, remaining int) bool {
	if f.OnlyHaveQty && remaining <= 0 {
		return false
	}
	if f.OnlyInCellar && remaining <= 0 {
		return false
	}
	if !matchesSet(f.Styles, w.Style) || !matchesSet(f.Countries, w.Country) || !matchesSet(f.Locations, w.Location) {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q != "" && !strings.Contains(searchText(w), q) {
		return false
	}
	return true
}

// Filter keeps catalog order.
func Filter(c *Catalog, remaining map[string]int, f FilterSet) []*WineEntry {
	out := make([]*WineEntry, 0, c.Len())
	for _, w := range c.wines {
		if f.Matches(w, remaining[w.ID]) {
			out = append(out, w)
		}
	}
	return out
}

// NewCollator compares strings case- and accent-insensitively, with digit
// runs compared by value so "Lot 9" sorts before "Lot 10". A Collator is not
// safe for concurrent use.
func NewCollator() *collate.Collator {
	return collate.New(language.Und, collate.IgnoreCase, collate.IgnoreDiacritics, collate.Numeric)
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func stringField(key SortKey) func(*WineEntry) string {
	switch key {
	case SortByName:
		return func(w *WineEntry) string { return w.Bottle }
	case SortByCountry:
		return func(w *WineEntry) string { return w.Country }
	case SortByStyle:
		return func(w *WineEntry) string { return w.Style }
	default:
		return func(w *WineEntry) string { return w.Location }
	}
}

// Sort orders list in place by key and returns it. Unknown keys sort by
// location. Numeric keys treat an absent value as 0.
func Sort(list []*WineEntry, key SortKey) []*WineEntry {
	switch key {
	case SortByVintage:
		slices.SortStableFunc(list, func(a, b *WineEntry) int {
			return intOrZero(a.Vintage) - intOrZero(b.Vintage)
		})
	case SortByPeakYear:
		slices.SortStableFunc(list, func(a, b *WineEntry) int {
			return intOrZero(a.PeakYear) - intOrZero(b.PeakYear)
		})
	default:
		field := stringField(key)
		col := NewCollator()
		slices.SortStableFunc(list, func(a, b *WineEntry) int {
			return col.CompareString(field(a), field(b))
		})
	}
	return list
}
