package models

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_MarshalEmptyCollections(t *testing.T) {
	d := &Document{Version: DocumentVersion}

	data, err := json.Marshal(d)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.JSONEq(t, `{}`, string(raw["adjustments"]))
	assert.JSONEq(t, `[]`, string(raw["logs"]))
	assert.JSONEq(t, `[]`, string(raw["freeNotes"]))
	assert.JSONEq(t, `false`, string(raw["migrated"]))
}

func TestDocument_RoundTrip(t *testing.T) {
	d := NewDocument()
	d.Migrated = true
	d.Adjustments["w1"] = 2
	d.Logs = append(d.Logs, &ConsumptionLog{Key: "k1", ID: "w1", Bottle: "Barolo", Date: "2024-03-01", Rating: intPtr(4), Quantity: 2})
	d.FreeNotes = append(d.FreeNotes, &FreeNote{ID: "note-1", Title: "t", Date: "2024-03-02"})

	data, err := json.Marshal(d)
	require.NoError(t, err)

	var got Document
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, DocumentVersion, got.Version)
	assert.True(t, got.Migrated)
	assert.Equal(t, 2, got.Adjustments["w1"])
	require.Len(t, got.Logs, 1)
	assert.Equal(t, *d.Logs[0], *got.Logs[0])
	require.Len(t, got.FreeNotes, 1)
	assert.Equal(t, "note-1", got.FreeNotes[0].ID)
	assert.Nil(t, got.Extra)
}

func TestDocument_PreservesUnknownKeys(t *testing.T) {
	input := `{"version":2,"migrated":true,"adjustments":{},"logs":[],"freeNotes":[],"theme":"dark","pinned":["w1","w2"]}`

	var d Document
	require.NoError(t, json.Unmarshal([]byte(input), &d))
	require.Len(t, d.Extra, 2)

	out, err := json.Marshal(&d)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(out))
}

func TestDocument_KnownFieldsWinOverExtra(t *testing.T) {
	d := NewDocument()
	d.Migrated = true
	d.Extra = map[string]json.RawMessage{"migrated": json.RawMessage(`false`), "x": json.RawMessage(`1`)}

	out, err := json.Marshal(d)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &raw))
	assert.Equal(t, "true", string(raw["migrated"]))
	assert.Equal(t, "1", string(raw["x"]))
}

func TestDocument_UnmarshalInvalid(t *testing.T) {
	var d Document
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &d))
	assert.Error(t, json.Unmarshal([]byte(`{"logs":"nope"}`), &d))
}

func TestDocument_CloneIsDeep(t *testing.T) {
	d := NewDocument()
	d.Adjustments["w1"] = 1
	d.Logs = append(d.Logs, &ConsumptionLog{Key: "k", ID: "w1", Rating: intPtr(3), Quantity: 1})
	d.FreeNotes = append(d.FreeNotes, &FreeNote{ID: "note-1", Title: "a"})
	d.Extra = map[string]json.RawMessage{"x": json.RawMessage(`1`)}

	cp := d.Clone()
	cp.Adjustments["w1"] = 9
	cp.Logs[0].Notes = "changed"
	*cp.Logs[0].Rating = 1
	cp.FreeNotes[0].Title = "b"
	cp.Extra["x"][0] = '2'

	assert.Equal(t, 1, d.Adjustments["w1"])
	assert.Empty(t, d.Logs[0].Notes)
	assert.Equal(t, 3, *d.Logs[0].Rating)
	assert.Equal(t, "a", d.FreeNotes[0].Title)
	assert.Equal(t, "1", string(d.Extra["x"]))
}
