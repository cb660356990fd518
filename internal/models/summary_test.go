package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildFacets(t *testing.T) {
	c := testCatalog(t,
		&WineEntry{ID: "1", Style: "Red", Country: "Spain", Location: "Rack 2"},
		&WineEntry{ID: "2", Style: " Red ", Country: "", Location: "Rack 1"},
		&WineEntry{ID: "3", Style: "Rosé", Country: "France", Location: "Rack 2"},
	)

	f := BuildFacets(c)

	assert.Equal(t, []string{"Red", "Rosé"}, f.Styles)
	assert.Equal(t, []string{"France", "Spain"}, f.Countries)
	assert.Equal(t, []string{"Rack 1", "Rack 2"}, f.Locations)
}

func TestBuildFacets_EmptyCatalog(t *testing.T) {
	f := BuildFacets(testCatalog(t))
	assert.NotNil(t, f.Styles)
	assert.Empty(t, f.Styles)
}

func TestBuildStats(t *testing.T) {
	c := testCatalog(t,
		&WineEntry{ID: "1", Style: "Red", Quantity: 3},
		&WineEntry{ID: "2", Style: "White", Quantity: 2},
		&WineEntry{ID: "3", Style: "Red", Quantity: 1},
	)
	d := NewDocument()
	d.Adjustments["2"] = 2
	rem := d.Remaining(c)

	view := Filter(c, rem, FilterSet{Styles: []string{"Red", "White"}})
	s := BuildStats(c, view, rem)

	assert.Equal(t, 4, s.TotalInCellar)
	assert.Equal(t, 4, s.InView)
	assert.Equal(t, map[string]int{"Red": 4}, s.ByStyle)

	view = Filter(c, rem, FilterSet{Styles: []string{"White"}})
	s = BuildStats(c, view, rem)
	assert.Equal(t, 4, s.TotalInCellar)
	assert.Equal(t, 0, s.InView)
	assert.Empty(t, s.ByStyle)
}
