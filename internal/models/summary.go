package models

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Facets struct {
	Styles    []string `json:"styles"`
	Countries []string `json:"countries"`
	Locations []string `json:"locations"`
}

// Stats summarises remaining bottles for the whole cellar and for a view.
type Stats struct {
	TotalInCellar int            `json:"totalInCellar"`
	InView        int            `json:"inView"`
	ByStyle       map[string]int `json:"byStyle"`
}

func uniqueValues(c *Catalog, field func(*WineEntry) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, w := range c.wines {
		v := strings.TrimSpace(field(w))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	col := collate.New(language.Und)
	slices.SortFunc(out, col.CompareString)
	return out
}

// BuildFacets lists the distinct non-empty filter values of the catalog.
func BuildFacets(c *Catalog) Facets {
	return Facets{
		Styles:    uniqueValues(c, func(w *WineEntry) string { return w.Style }),
		Countries: uniqueValues(c, func(w *WineEntry) string { return w.Country }),
		Locations: uniqueValues(c, func(w *WineEntry) string { return w.Location }),
	}
}

// BuildStats counts remaining bottles; styles with nothing left are omitted.
func BuildStats(c *Catalog, view []*WineEntry, remaining map[string]int) Stats {
	s := Stats{ByStyle: make(map[string]int)}
	for _, w := range c.wines {
		s.TotalInCellar += remaining[w.ID]
	}
	for _, w := range view {
		r := remaining[w.ID]
		s.InView += r
		if r > 0 {
			s.ByStyle[w.Style] += r
		}
	}
	return s
}
