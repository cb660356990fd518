package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildJournal_NewestFirst(t *testing.T) {
	c := testCatalog(t, &WineEntry{ID: "w1", Bottle: "Barolo", Quantity: 3})
	d := NewDocument()
	d.Logs = []*ConsumptionLog{
		{Key: "old", ID: "w1", Date: "2024-01-01", Quantity: 1},
		{Key: "new", ID: "w1", Date: "2024-06-01", Quantity: 1},
		{Key: "orphan", ID: "gone", Date: "2024-03-01", Quantity: 1},
	}
	d.FreeNotes = []*FreeNote{{ID: "note-1", Date: "2024-06-01", Title: "same day"}}

	items := BuildJournal(d, c)

	require.Len(t, items, 4)
	assert.Equal(t, JournalKindLog, items[0].Kind)
	assert.Equal(t, "new", items[0].Log.Key)
	require.NotNil(t, items[0].Wine)
	assert.Equal(t, "Barolo", items[0].Wine.Bottle)

	assert.Equal(t, JournalKindNote, items[1].Kind)
	assert.Equal(t, "note-1", items[1].Note.ID)

	assert.Equal(t, "orphan", items[2].Log.Key)
	assert.Nil(t, items[2].Wine)

	assert.Equal(t, "old", items[3].Log.Key)
}

func TestBuildJournal_Empty(t *testing.T) {
	items := BuildJournal(NewDocument(), testCatalog(t))
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
