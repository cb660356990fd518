package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int {
	return &v
}

func testCatalog(t *testing.T, wines ...*WineEntry) *Catalog {
	t.Helper()
	c, dups := NewCatalog(wines)
	require.Empty(t, dups)
	return c
}

func TestNewCatalog_KeepsSourceOrder(t *testing.T) {
	c := testCatalog(t,
		&WineEntry{ID: "b", Quantity: 1},
		&WineEntry{ID: "a", Quantity: 2},
	)

	all := c.All()
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].ID)
	assert.Equal(t, "a", all[1].ID)
	assert.Equal(t, 2, c.Len())
}

func TestNewCatalog_DropsDuplicates(t *testing.T) {
	c, dups := NewCatalog([]*WineEntry{
		{ID: "w1", Bottle: "first"},
		{ID: "w1", Bottle: "second"},
		nil,
		{ID: "w2"},
	})

	assert.Equal(t, []string{"w1"}, dups)
	assert.Equal(t, 2, c.Len())
	w, ok := c.Get("w1")
	require.True(t, ok)
	assert.Equal(t, "first", w.Bottle)
}

func TestCatalog_GetAndHas(t *testing.T) {
	c := testCatalog(t, &WineEntry{ID: "w1"})

	assert.True(t, c.Has("w1"))
	assert.False(t, c.Has("w2"))
	_, ok := c.Get("w2")
	assert.False(t, ok)
}

func TestCatalog_AllReturnsCopy(t *testing.T) {
	c := testCatalog(t, &WineEntry{ID: "w1"}, &WineEntry{ID: "w2"})

	all := c.All()
	all[0] = nil

	again := c.All()
	assert.NotNil(t, again[0])
}

func TestWineEntry_IsPreConsumed(t *testing.T) {
	assert.True(t, (&WineEntry{Status: StatusConsumed}).IsPreConsumed())
	assert.False(t, (&WineEntry{}).IsPreConsumed())
}
