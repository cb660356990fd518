package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wineIDs(list []*WineEntry) []string {
	out := make([]string, 0, len(list))
	for _, w := range list {
		out = append(out, w.ID)
	}
	return out
}

func queryCatalog(t *testing.T) *Catalog {
	return testCatalog(t,
		&WineEntry{ID: "a", Bottle: "Château Margaux", Style: "Red", Country: "France", Region: "Bordeaux", Grapes: "Cabernet Sauvignon", Location: "Rack 1", Quantity: 2},
		&WineEntry{ID: "b", Bottle: "Cloudy Bay", Style: "White", Country: "New Zealand", Grapes: "Sauvignon Blanc", Location: "Rack 2", Quantity: 1},
		&WineEntry{ID: "c", Bottle: "Penfolds Bin 407", Style: "Red", Country: "Australia", Grapes: "Cabernet", Location: "Rack 1", Quantity: 1},
		&WineEntry{ID: "d", Bottle: "Rioja Reserva", Style: "Red", Country: "Spain", Grapes: "Tempranillo", Location: "Fridge", Quantity: 3},
	)
}

func TestFilter_EmptySetMatchesAll(t *testing.T) {
	c := queryCatalog(t)
	got := Filter(c, NewDocument().Remaining(c), FilterSet{})
	assert.Equal(t, []string{"a", "b", "c", "d"}, wineIDs(got))
}

func TestFilter_StyleAndQuery(t *testing.T) {
	c := queryCatalog(t)
	got := Filter(c, NewDocument().Remaining(c), FilterSet{Styles: []string{"Red"}, Query: "cab"})
	assert.Equal(t, []string{"a", "c"}, wineIDs(got))
}

func TestFilter_QueryIsCaseInsensitiveAndTrimmed(t *testing.T) {
	c := queryCatalog(t)
	got := Filter(c, NewDocument().Remaining(c), FilterSet{Query: "  BORDEAUX "})
	assert.Equal(t, []string{"a"}, wineIDs(got))
}

func TestFilter_QuerySearchesLocation(t *testing.T) {
	c := queryCatalog(t)
	got := Filter(c, NewDocument().Remaining(c), FilterSet{Query: "fridge"})
	assert.Equal(t, []string{"d"}, wineIDs(got))
}

func TestFilter_SetsAreOrWithinAndAcross(t *testing.T) {
	c := queryCatalog(t)
	got := Filter(c, NewDocument().Remaining(c), FilterSet{
		Countries: []string{"France", "Spain", "New Zealand"},
		Locations: []string{"Rack 1", "Fridge"},
	})
	assert.Equal(t, []string{"a", "d"}, wineIDs(got))
}

func TestFilter_RemainingFlags(t *testing.T) {
	c := queryCatalog(t)
	d := NewDocument()
	d.Adjustments["b"] = 1
	rem := d.Remaining(c)

	inCellar := Filter(c, rem, FilterSet{OnlyInCellar: true})
	haveQty := Filter(c, rem, FilterSet{OnlyHaveQty: true})

	assert.Equal(t, []string{"a", "c", "d"}, wineIDs(inCellar))
	assert.Equal(t, wineIDs(inCellar), wineIDs(haveQty))
}

func TestSort_VintageAbsentFirst(t *testing.T) {
	list := []*WineEntry{
		{ID: "x", Vintage: intPtr(2015)},
		{ID: "y"},
		{ID: "z", Vintage: intPtr(2010)},
	}
	Sort(list, SortByVintage)
	assert.Equal(t, []string{"y", "z", "x"}, wineIDs(list))
}

func TestSort_PeakYear(t *testing.T) {
	list := []*WineEntry{
		{ID: "x", PeakYear: intPtr(2030)},
		{ID: "y", PeakYear: intPtr(2025)},
	}
	Sort(list, SortByPeakYear)
	assert.Equal(t, []string{"y", "x"}, wineIDs(list))
}

func TestSort_LocationIsNumericAware(t *testing.T) {
	list := []*WineEntry{
		{ID: "ten", Location: "Lot 10"},
		{ID: "nine", Location: "Lot 9"},
	}
	Sort(list, SortByLocation)
	assert.Equal(t, []string{"nine", "ten"}, wineIDs(list))
}

func TestSort_NameIgnoresCaseAndAccents(t *testing.T) {
	list := []*WineEntry{
		{ID: "b", Bottle: "clos du Val"},
		{ID: "c", Bottle: "Étoile"},
		{ID: "a", Bottle: "Château Latour"},
	}
	Sort(list, SortByName)
	assert.Equal(t, []string{"a", "b", "c"}, wineIDs(list))
}

func TestSort_IsStable(t *testing.T) {
	list := []*WineEntry{
		{ID: "1", Country: "France"},
		{ID: "2", Country: "Chile"},
		{ID: "3", Country: "France"},
		{ID: "4", Country: "Chile"},
	}
	Sort(list, SortByCountry)
	assert.Equal(t, []string{"2", "4", "1", "3"}, wineIDs(list))
}

func TestSort_UnknownKeyFallsBackToLocation(t *testing.T) {
	list := []*WineEntry{
		{ID: "b", Location: "B", Style: "A"},
		{ID: "a", Location: "A", Style: "B"},
	}
	Sort(list, SortKey("price"))
	require.Len(t, list, 2)
	assert.Equal(t, []string{"a", "b"}, wineIDs(list))
}

func TestSort_Style(t *testing.T) {
	list := []*WineEntry{
		{ID: "w", Style: "White"},
		{ID: "r", Style: "Red"},
		{ID: "s", Style: "Sparkling"},
	}
	Sort(list, SortByStyle)
	assert.Equal(t, []string{"r", "s", "w"}, wineIDs(list))
}
